package model

import (
	"time"

	"github.com/google/uuid"
)

type Treatment struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CabinetId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	PatientId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	TariffId        *uuid.UUID `gorm:"type:uuid;index"`
	Label           string     `gorm:"type:varchar(255);not null"`
	Diagnosis       string     `gorm:"type:text"`
	SessionsPlanned int        `gorm:"default:1"`
	SessionsDone    int        `gorm:"default:0"`
	Status          string     `gorm:"type:varchar(50);not null"`
	StartedAt       time.Time  `gorm:"not null"`
	EndedAt         *time.Time `gorm:""`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (Treatment) TableName() string {
	return "treatments"
}
