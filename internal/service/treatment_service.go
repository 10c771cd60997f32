package service

import (
	"context"
	"errors"
	"time"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/repository/specification"
	"medicab-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var (
	ErrTreatmentNotFound  = errors.New("treatment not found")
	ErrTreatmentCompleted = errors.New("treatment is already completed")
)

type ITreatmentService interface {
	Create(ctx context.Context, cabinetId uuid.UUID, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error)
	Show(ctx context.Context, cabinetId, id uuid.UUID) (*dto.TreatmentResponse, error)
	ListByPatient(ctx context.Context, cabinetId, patientId uuid.UUID) ([]*dto.TreatmentResponse, error)
	RecordSession(ctx context.Context, cabinetId, id uuid.UUID) (*dto.TreatmentResponse, error)
	Abort(ctx context.Context, cabinetId, id uuid.UUID) (*dto.TreatmentResponse, error)
}

type treatmentService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTreatmentService(uowFactory unitofwork.RepositoryFactory) ITreatmentService {
	return &treatmentService{
		uowFactory: uowFactory,
	}
}

func (s *treatmentService) Create(ctx context.Context, cabinetId uuid.UUID, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	patient, err := uow.PatientRepository().FindOne(ctx,
		specification.ByID{ID: req.PatientId},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.TariffId != nil {
		tariff, err := uow.TariffRepository().FindOne(ctx,
			specification.ByID{ID: *req.TariffId},
			specification.CabinetOwnedBy{CabinetID: cabinetId},
		)
		if err != nil {
			return nil, err
		}
		if tariff == nil {
			return nil, ErrTariffNotFound
		}
	}

	treatment := &entity.Treatment{
		Id:              uuid.New(),
		CabinetId:       cabinetId,
		PatientId:       req.PatientId,
		TariffId:        req.TariffId,
		Label:           req.Label,
		Diagnosis:       req.Diagnosis,
		SessionsPlanned: req.SessionsPlanned,
		SessionsDone:    0,
		Status:          entity.TreatmentStatusOngoing,
		StartedAt:       now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uow.TreatmentRepository().Create(ctx, treatment); err != nil {
		return nil, err
	}
	return toTreatmentResponse(treatment), nil
}

func (s *treatmentService) Show(ctx context.Context, cabinetId, id uuid.UUID) (*dto.TreatmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	treatment, err := uow.TreatmentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}
	return toTreatmentResponse(treatment), nil
}

func (s *treatmentService) ListByPatient(ctx context.Context, cabinetId, patientId uuid.UUID) ([]*dto.TreatmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	treatments, err := uow.TreatmentRepository().FindAll(ctx,
		specification.CabinetOwnedBy{CabinetID: cabinetId},
		specification.PatientOwnedBy{PatientID: patientId},
		specification.OrderBy{Field: "started_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TreatmentResponse, 0, len(treatments))
	for _, t := range treatments {
		res = append(res, toTreatmentResponse(t))
	}
	return res, nil
}

// RecordSession increments the session counter and completes the treatment
// once the planned count is reached.
func (s *treatmentService) RecordSession(ctx context.Context, cabinetId, id uuid.UUID) (*dto.TreatmentResponse, error) {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	treatment, err := uow.TreatmentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}
	if treatment.Status != entity.TreatmentStatusOngoing {
		return nil, ErrTreatmentCompleted
	}

	treatment.SessionsDone++
	if treatment.SessionsDone >= treatment.SessionsPlanned {
		treatment.Status = entity.TreatmentStatusCompleted
		treatment.EndedAt = &now
	}
	treatment.UpdatedAt = now

	if err := uow.TreatmentRepository().Update(ctx, treatment); err != nil {
		return nil, err
	}
	return toTreatmentResponse(treatment), nil
}

func (s *treatmentService) Abort(ctx context.Context, cabinetId, id uuid.UUID) (*dto.TreatmentResponse, error) {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	treatment, err := uow.TreatmentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}
	if treatment.Status != entity.TreatmentStatusOngoing {
		return nil, ErrTreatmentCompleted
	}

	treatment.Status = entity.TreatmentStatusAborted
	treatment.EndedAt = &now
	treatment.UpdatedAt = now

	if err := uow.TreatmentRepository().Update(ctx, treatment); err != nil {
		return nil, err
	}
	return toTreatmentResponse(treatment), nil
}

func toTreatmentResponse(t *entity.Treatment) *dto.TreatmentResponse {
	return &dto.TreatmentResponse{
		Id:              t.Id,
		PatientId:       t.PatientId,
		TariffId:        t.TariffId,
		Label:           t.Label,
		Diagnosis:       t.Diagnosis,
		SessionsPlanned: t.SessionsPlanned,
		SessionsDone:    t.SessionsDone,
		Status:          string(t.Status),
		StartedAt:       t.StartedAt,
		EndedAt:         t.EndedAt,
	}
}
