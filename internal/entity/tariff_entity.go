package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tariff is a billable act in a cabinet's own price list.
type Tariff struct {
	Id          uuid.UUID
	CabinetId   uuid.UUID
	Code        string
	Label       string
	AmountCents int64
	Currency    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
