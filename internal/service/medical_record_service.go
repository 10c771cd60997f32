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

var ErrMedicalRecordNotFound = errors.New("medical record not found")

type IMedicalRecordService interface {
	Create(ctx context.Context, cabinetId, practitionerId uuid.UUID, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	Show(ctx context.Context, cabinetId, id uuid.UUID) (*dto.MedicalRecordResponse, error)
	ListByPatient(ctx context.Context, cabinetId, patientId uuid.UUID) ([]*dto.MedicalRecordResponse, error)
	AppendNote(ctx context.Context, cabinetId, id uuid.UUID, note string) (*dto.MedicalRecordResponse, error)
}

type medicalRecordService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewMedicalRecordService(uowFactory unitofwork.RepositoryFactory) IMedicalRecordService {
	return &medicalRecordService{
		uowFactory: uowFactory,
	}
}

func (s *medicalRecordService) Create(ctx context.Context, cabinetId, practitionerId uuid.UUID, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
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

	recordedAt := now
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	record := &entity.MedicalRecord{
		Id:             uuid.New(),
		CabinetId:      cabinetId,
		PatientId:      req.PatientId,
		PractitionerId: practitionerId,
		Type:           entity.MedicalRecordType(req.Type),
		Title:          req.Title,
		Payload:        req.Payload,
		Note:           req.Note,
		RecordedAt:     recordedAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uow.MedicalRecordRepository().Create(ctx, record); err != nil {
		return nil, err
	}
	return toMedicalRecordResponse(record), nil
}

func (s *medicalRecordService) Show(ctx context.Context, cabinetId, id uuid.UUID) (*dto.MedicalRecordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.MedicalRecordRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}
	return toMedicalRecordResponse(record), nil
}

func (s *medicalRecordService) ListByPatient(ctx context.Context, cabinetId, patientId uuid.UUID) ([]*dto.MedicalRecordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	records, err := uow.MedicalRecordRepository().FindAll(ctx,
		specification.CabinetOwnedBy{CabinetID: cabinetId},
		specification.PatientOwnedBy{PatientID: patientId},
		specification.OrderBy{Field: "recorded_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MedicalRecordResponse, 0, len(records))
	for _, r := range records {
		res = append(res, toMedicalRecordResponse(r))
	}
	return res, nil
}

// AppendNote adds to the free-text note without touching the structured
// payload. Records are append-mostly; nothing here ever deletes one.
func (s *medicalRecordService) AppendNote(ctx context.Context, cabinetId, id uuid.UUID, note string) (*dto.MedicalRecordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.MedicalRecordRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}

	if record.Note == "" {
		record.Note = note
	} else {
		record.Note = record.Note + "\n" + note
	}
	record.UpdatedAt = time.Now()

	if err := uow.MedicalRecordRepository().Update(ctx, record); err != nil {
		return nil, err
	}
	return toMedicalRecordResponse(record), nil
}

func toMedicalRecordResponse(r *entity.MedicalRecord) *dto.MedicalRecordResponse {
	return &dto.MedicalRecordResponse{
		Id:             r.Id,
		PatientId:      r.PatientId,
		PractitionerId: r.PractitionerId,
		Type:           string(r.Type),
		Title:          r.Title,
		Payload:        r.Payload,
		Note:           r.Note,
		RecordedAt:     r.RecordedAt,
	}
}
