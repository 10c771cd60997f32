package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTreatmentRequest struct {
	PatientId       uuid.UUID  `json:"patient_id" validate:"required"`
	TariffId        *uuid.UUID `json:"tariff_id,omitempty"`
	Label           string     `json:"label" validate:"required"`
	Diagnosis       string     `json:"diagnosis,omitempty"`
	SessionsPlanned int        `json:"sessions_planned" validate:"required,min=1"`
}

type TreatmentResponse struct {
	Id              uuid.UUID  `json:"id"`
	PatientId       uuid.UUID  `json:"patient_id"`
	TariffId        *uuid.UUID `json:"tariff_id,omitempty"`
	Label           string     `json:"label"`
	Diagnosis       string     `json:"diagnosis,omitempty"`
	SessionsPlanned int        `json:"sessions_planned"`
	SessionsDone    int        `json:"sessions_done"`
	Status          string     `json:"status"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
}
