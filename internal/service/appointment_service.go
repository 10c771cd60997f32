package service

import (
	"context"
	"errors"
	"time"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/pkg/logger"
	"medicab-be/internal/repository/specification"
	"medicab-be/internal/repository/unitofwork"
	"medicab-be/pkg/events"

	"github.com/google/uuid"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

type IAppointmentService interface {
	Create(ctx context.Context, cabinetId uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Show(ctx context.Context, cabinetId, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListByPractitioner(ctx context.Context, cabinetId, practitionerId uuid.UUID, from, to time.Time) ([]*dto.AppointmentResponse, error)
	ListByPatient(ctx context.Context, cabinetId, patientId uuid.UUID) ([]*dto.AppointmentResponse, error)
	Update(ctx context.Context, cabinetId, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, cabinetId, id uuid.UUID) error
}

type appointmentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewAppointmentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
) IAppointmentService {
	return &appointmentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           sysLogger,
	}
}

// Create books a slot. Overlapping appointments for the same practitioner are
// allowed; double-booking is the front desk's call, not ours.
func (s *appointmentService) Create(ctx context.Context, cabinetId uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
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

	appointment := &entity.Appointment{
		Id:             uuid.New(),
		CabinetId:      cabinetId,
		PatientId:      req.PatientId,
		PractitionerId: req.PractitionerId,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		Status:         entity.AppointmentStatusScheduled,
		Reason:         req.Reason,
		Room:           req.Room,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uow.AppointmentRepository().Create(ctx, appointment); err != nil {
		return nil, err
	}

	if s.publisherService != nil {
		evt := events.BaseEvent{
			Type: "APPOINTMENT_BOOKED",
			Data: map[string]interface{}{
				"cabinet_id":      cabinetId,
				"appointment_id":  appointment.Id,
				"patient_id":      req.PatientId,
				"practitioner_id": req.PractitionerId,
				"starts_at":       req.StartsAt,
			},
			OccurredAt: now,
		}
		if err := s.publisherService.Publish(ctx, evt); err != nil && s.logger != nil {
			s.logger.Warn("appointment", "failed to publish APPOINTMENT_BOOKED", map[string]interface{}{
				"appointment_id": appointment.Id,
				"error":          err.Error(),
			})
		}
	}

	return toAppointmentResponse(appointment), nil
}

func (s *appointmentService) Show(ctx context.Context, cabinetId, id uuid.UUID) (*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	appointment, err := uow.AppointmentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return toAppointmentResponse(appointment), nil
}

func (s *appointmentService) ListByPractitioner(ctx context.Context, cabinetId, practitionerId uuid.UUID, from, to time.Time) ([]*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	appointments, err := uow.AppointmentRepository().FindAll(ctx,
		specification.CabinetOwnedBy{CabinetID: cabinetId},
		specification.PractitionerOwnedBy{PractitionerID: practitionerId},
		specification.StartsBetween{From: from, To: to},
		specification.OrderBy{Field: "starts_at"},
	)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(appointments), nil
}

func (s *appointmentService) ListByPatient(ctx context.Context, cabinetId, patientId uuid.UUID) ([]*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	appointments, err := uow.AppointmentRepository().FindAll(ctx,
		specification.CabinetOwnedBy{CabinetID: cabinetId},
		specification.PatientOwnedBy{PatientID: patientId},
		specification.OrderBy{Field: "starts_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponses(appointments), nil
}

func (s *appointmentService) Update(ctx context.Context, cabinetId, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	appointment, err := uow.AppointmentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if req.StartsAt != nil {
		appointment.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		appointment.EndsAt = *req.EndsAt
	}
	if req.Status != nil {
		appointment.Status = entity.AppointmentStatus(*req.Status)
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.Room != nil {
		appointment.Room = *req.Room
	}
	appointment.UpdatedAt = time.Now()

	if err := uow.AppointmentRepository().Update(ctx, appointment); err != nil {
		return nil, err
	}
	return toAppointmentResponse(appointment), nil
}

func (s *appointmentService) Delete(ctx context.Context, cabinetId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	appointment, err := uow.AppointmentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.CabinetOwnedBy{CabinetID: cabinetId},
	)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	return uow.AppointmentRepository().Delete(ctx, id)
}

func toAppointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		Id:             a.Id,
		PatientId:      a.PatientId,
		PractitionerId: a.PractitionerId,
		StartsAt:       a.StartsAt,
		EndsAt:         a.EndsAt,
		Status:         string(a.Status),
		Reason:         a.Reason,
		Room:           a.Room,
	}
}

func toAppointmentResponses(appointments []*entity.Appointment) []*dto.AppointmentResponse {
	res := make([]*dto.AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		res = append(res, toAppointmentResponse(a))
	}
	return res
}
