package entity

import (
	"time"

	"github.com/google/uuid"
)

type MedicalRecordType string

const (
	MedicalRecordTypeConsultation MedicalRecordType = "CONSULTATION"
	MedicalRecordTypeDiagnosis    MedicalRecordType = "DIAGNOSIS"
	MedicalRecordTypePrescription MedicalRecordType = "PRESCRIPTION"
)

// MedicalRecord is an append-mostly entry in a patient's file. Payload holds
// type-specific structured data (vitals, prescription lines, attachments meta).
type MedicalRecord struct {
	Id             uuid.UUID
	CabinetId      uuid.UUID
	PatientId      uuid.UUID
	PractitionerId uuid.UUID
	Type           MedicalRecordType
	Title          string
	Payload        map[string]interface{}
	Note           string
	RecordedAt     time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
