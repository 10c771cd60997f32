package model

import (
	"time"

	"github.com/google/uuid"
)

type Tariff struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CabinetId   uuid.UUID `gorm:"type:uuid;not null;index"`
	Code        string    `gorm:"type:varchar(50);not null"`
	Label       string    `gorm:"type:varchar(255);not null"`
	AmountCents int64     `gorm:"not null"`
	Currency    string    `gorm:"type:varchar(10);default:'EUR'"`
	IsActive    bool      `gorm:"default:true"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Tariff) TableName() string {
	return "tariffs"
}
