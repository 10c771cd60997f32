package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CabinetOwnedBy scopes a query to one cabinet's records.
type CabinetOwnedBy struct {
	CabinetID uuid.UUID
}

func (s CabinetOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("cabinet_id = ?", s.CabinetID)
}

// PatientOwnedBy scopes a query to one patient's records.
type PatientOwnedBy struct {
	PatientID uuid.UUID
}

func (s PatientOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("patient_id = ?", s.PatientID)
}

// PractitionerOwnedBy scopes appointments to one practitioner.
type PractitionerOwnedBy struct {
	PractitionerID uuid.UUID
}

func (s PractitionerOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("practitioner_id = ?", s.PractitionerID)
}

// StartsBetween selects appointments whose start falls in [From, To).
type StartsBetween struct {
	From time.Time
	To   time.Time
}

func (s StartsBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("starts_at >= ? AND starts_at < ?", s.From, s.To)
}

// NameContains does a case-insensitive match on patient first/last name.
type NameContains struct {
	Query string
}

func (s NameContains) Apply(db *gorm.DB) *gorm.DB {
	like := "%" + s.Query + "%"
	return db.Where("first_name ILIKE ? OR last_name ILIKE ?", like, like)
}
