package entity

import (
	"time"

	"github.com/google/uuid"
)

type Speciality string
type UserRole string

const (
	SpecialityPhysiotherapy Speciality = "physiotherapy"
	SpecialityDental        Speciality = "dental"
	SpecialityGeneral       Speciality = "general"
	SpecialityCardiology    Speciality = "cardiology"

	UserRoleAdmin        UserRole = "ADMIN"
	UserRolePractitioner UserRole = "PRACTITIONER"
	UserRoleAssistant    UserRole = "ASSISTANT"
)

// Cabinet is a clinic account, the unit of subscription ownership.
// StripeCustomerId is set once the payment provider knows the cabinet; webhook
// reconciliation falls back to it when the subscription id alone resolves nothing.
type Cabinet struct {
	Id               uuid.UUID
	Name             string
	Speciality       Speciality
	Phone            string
	Address          string
	City             string
	StripeCustomerId *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type User struct {
	Id           uuid.UUID
	CabinetId    uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         UserRole
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
