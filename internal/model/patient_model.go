package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Patient struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CabinetId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	FirstName      string     `gorm:"type:varchar(255);not null"`
	LastName       string     `gorm:"type:varchar(255);not null"`
	Email          string     `gorm:"type:varchar(255)"`
	Phone          string     `gorm:"type:varchar(50)"`
	BirthDate      *time.Time `gorm:"type:date"`
	SocialSecurity string     `gorm:"type:varchar(50)"`
	Address        string     `gorm:"type:text"`
	City           string     `gorm:"type:varchar(255)"`
	Notes          string     `gorm:"type:text"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (Patient) TableName() string {
	return "patients"
}
