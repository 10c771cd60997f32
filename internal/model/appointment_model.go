package model

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CabinetId      uuid.UUID `gorm:"type:uuid;not null;index"`
	PatientId      uuid.UUID `gorm:"type:uuid;not null;index"`
	PractitionerId uuid.UUID `gorm:"type:uuid;not null;index"`
	StartsAt       time.Time `gorm:"not null;index"`
	EndsAt         time.Time `gorm:"not null"`
	Status         string    `gorm:"type:varchar(50);not null"`
	Reason         string    `gorm:"type:text"`
	Room           string    `gorm:"type:varchar(100)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Appointment) TableName() string {
	return "appointments"
}
