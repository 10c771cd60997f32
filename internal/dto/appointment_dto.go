package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	PatientId      uuid.UUID `json:"patient_id" validate:"required"`
	PractitionerId uuid.UUID `json:"practitioner_id" validate:"required"`
	StartsAt       time.Time `json:"starts_at" validate:"required"`
	EndsAt         time.Time `json:"ends_at" validate:"required"`
	Reason         string    `json:"reason,omitempty"`
	Room           string    `json:"room,omitempty"`
}

type UpdateAppointmentRequest struct {
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Status   *string    `json:"status,omitempty" validate:"omitempty,oneof=SCHEDULED COMPLETED CANCELED NO_SHOW"`
	Reason   *string    `json:"reason,omitempty"`
	Room     *string    `json:"room,omitempty"`
}

type AppointmentResponse struct {
	Id             uuid.UUID `json:"id"`
	PatientId      uuid.UUID `json:"patient_id"`
	PractitionerId uuid.UUID `json:"practitioner_id"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	Status         string    `json:"status"`
	Reason         string    `json:"reason,omitempty"`
	Room           string    `json:"room,omitempty"`
}
