package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMedicalRecordRequest struct {
	PatientId  uuid.UUID              `json:"patient_id" validate:"required"`
	Type       string                 `json:"type" validate:"required,oneof=CONSULTATION DIAGNOSIS PRESCRIPTION"`
	Title      string                 `json:"title" validate:"required"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	Note       string                 `json:"note,omitempty"`
	RecordedAt *time.Time             `json:"recorded_at,omitempty"`
}

type AppendNoteRequest struct {
	Note string `json:"note" validate:"required"`
}

type MedicalRecordResponse struct {
	Id             uuid.UUID              `json:"id"`
	PatientId      uuid.UUID              `json:"patient_id"`
	PractitionerId uuid.UUID              `json:"practitioner_id"`
	Type           string                 `json:"type"`
	Title          string                 `json:"title"`
	Payload        map[string]interface{} `json:"payload,omitempty"`
	Note           string                 `json:"note,omitempty"`
	RecordedAt     time.Time              `json:"recorded_at"`
}
