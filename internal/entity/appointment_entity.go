package entity

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCanceled  AppointmentStatus = "CANCELED"
	AppointmentStatusNoShow    AppointmentStatus = "NO_SHOW"
)

type Appointment struct {
	Id             uuid.UUID
	CabinetId      uuid.UUID
	PatientId      uuid.UUID
	PractitionerId uuid.UUID
	StartsAt       time.Time
	EndsAt         time.Time
	Status         AppointmentStatus
	Reason         string
	Room           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
