package entity

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	Id             uuid.UUID
	CabinetId      uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	BirthDate      *time.Time
	SocialSecurity string
	Address        string
	City           string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
