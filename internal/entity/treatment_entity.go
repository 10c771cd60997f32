package entity

import (
	"time"

	"github.com/google/uuid"
)

type TreatmentStatus string

const (
	TreatmentStatusOngoing   TreatmentStatus = "ONGOING"
	TreatmentStatusCompleted TreatmentStatus = "COMPLETED"
	TreatmentStatusAborted   TreatmentStatus = "ABORTED"
)

// Treatment is a course of care for one patient, tracked session by session.
type Treatment struct {
	Id              uuid.UUID
	CabinetId       uuid.UUID
	PatientId       uuid.UUID
	TariffId        *uuid.UUID
	Label           string
	Diagnosis       string
	SessionsPlanned int
	SessionsDone    int
	Status          TreatmentStatus
	StartedAt       time.Time
	EndedAt         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
