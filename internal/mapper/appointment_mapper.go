package mapper

import (
	"medicab-be/internal/entity"
	"medicab-be/internal/model"
)

type AppointmentMapper struct{}

func NewAppointmentMapper() *AppointmentMapper {
	return &AppointmentMapper{}
}

func (m *AppointmentMapper) ToEntity(a *model.Appointment) *entity.Appointment {
	if a == nil {
		return nil
	}
	return &entity.Appointment{
		Id:             a.Id,
		CabinetId:      a.CabinetId,
		PatientId:      a.PatientId,
		PractitionerId: a.PractitionerId,
		StartsAt:       a.StartsAt,
		EndsAt:         a.EndsAt,
		Status:         entity.AppointmentStatus(a.Status),
		Reason:         a.Reason,
		Room:           a.Room,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (m *AppointmentMapper) ToModel(a *entity.Appointment) *model.Appointment {
	if a == nil {
		return nil
	}
	return &model.Appointment{
		Id:             a.Id,
		CabinetId:      a.CabinetId,
		PatientId:      a.PatientId,
		PractitionerId: a.PractitionerId,
		StartsAt:       a.StartsAt,
		EndsAt:         a.EndsAt,
		Status:         string(a.Status),
		Reason:         a.Reason,
		Room:           a.Room,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
