package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MedicalRecord struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CabinetId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	PatientId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	PractitionerId uuid.UUID      `gorm:"type:uuid;not null"`
	Type           string         `gorm:"type:varchar(50);not null"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Payload        datatypes.JSON `gorm:"type:jsonb"`
	Note           string         `gorm:"type:text"`
	RecordedAt     time.Time      `gorm:"not null;index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
