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
	ErrPatientNotFound      = errors.New("patient not found")
	ErrSubscriptionInactive = errors.New("subscription is not active")
	ErrPatientLimitReached  = errors.New("patient limit reached for the current plan")
)

type IPatientService interface {
	Create(ctx context.Context, cabinetId uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Show(ctx context.Context, cabinetId, id uuid.UUID) (*dto.PatientResponse, error)
	List(ctx context.Context, cabinetId uuid.UUID, search string, limit, offset int) (*dto.PatientListResponse, error)
	Update(ctx context.Context, cabinetId, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, cabinetId, id uuid.UUID) error
}

type patientService struct {
	uowFactory          unitofwork.RepositoryFactory
	subscriptionService ISubscriptionService
}

func NewPatientService(uowFactory unitofwork.RepositoryFactory, subscriptionService ISubscriptionService) IPatientService {
	return &patientService{
		uowFactory:          uowFactory,
		subscriptionService: subscriptionService,
	}
}

// Create enforces the plan entitlement: the subscription must be active and
// the cabinet must be below its patient ceiling. MaxPatients of -1 means
// unlimited.
func (s *patientService) Create(ctx context.Context, cabinetId uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	status, err := s.subscriptionService.CheckStatus(ctx, cabinetId)
	if err != nil {
		return nil, err
	}
	if !status.IsActive {
		return nil, ErrSubscriptionInactive
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if status.MaxPatients >= 0 {
		count, err := uow.PatientRepository().Count(ctx, specification.CabinetOwnedBy{CabinetID: cabinetId})
		if err != nil {
			return nil, err
		}
		if count >= int64(status.MaxPatients) {
			return nil, ErrPatientLimitReached
		}
	}

	now := time.Now()
	patient := &entity.Patient{
		Id:             uuid.New(),
		CabinetId:      cabinetId,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		BirthDate:      req.BirthDate,
		SocialSecurity: req.SocialSecurity,
		Address:        req.Address,
		City:           req.City,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uow.PatientRepository().Create(ctx, patient); err != nil {
		return nil, err
	}

	return toPatientResponse(patient), nil
}

func (s *patientService) Show(ctx context.Context, cabinetId, id uuid.UUID) (*dto.PatientResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	patient, err := uow.PatientRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return toPatientResponse(patient), nil
}

func (s *patientService) List(ctx context.Context, cabinetId uuid.UUID, search string, limit, offset int) (*dto.PatientListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 || limit > 100 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}

	specs := []specification.Specification{
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	}
	if search != "" {
		specs = append(specs, specification.NameContains{Query: search})
	}

	total, err := uow.PatientRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "last_name"},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	patients, err := uow.PatientRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PatientResponse, 0, len(patients))
	for _, p := range patients {
		res = append(res, toPatientResponse(p))
	}

	return &dto.PatientListResponse{
		Patients: res,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

func (s *patientService) Update(ctx context.Context, cabinetId, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	patient, err := uow.PatientRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		patient.BirthDate = req.BirthDate
	}
	if req.SocialSecurity != nil {
		patient.SocialSecurity = *req.SocialSecurity
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.City != nil {
		patient.City = *req.City
	}
	if req.Notes != nil {
		patient.Notes = *req.Notes
	}
	patient.UpdatedAt = time.Now()

	if err := uow.PatientRepository().Update(ctx, patient); err != nil {
		return nil, err
	}
	return toPatientResponse(patient), nil
}

func (s *patientService) Delete(ctx context.Context, cabinetId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	patient, err := uow.PatientRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	return uow.PatientRepository().Delete(ctx, id)
}

func toPatientResponse(p *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		Id:             p.Id,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		BirthDate:      p.BirthDate,
		SocialSecurity: p.SocialSecurity,
		Address:        p.Address,
		City:           p.City,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
	}
}
