package dto

import (
	"github.com/google/uuid"
)

type PlanResponse struct {
	Id           uuid.UUID `json:"id"`
	DisplayName  string    `json:"display_name"`
	Slug         string    `json:"slug"`
	DurationDays int       `json:"duration_days"`
	MaxPatients  int       `json:"max_patients"`
	PriceCents   int64     `json:"price_cents"`
	IsTrial      bool      `json:"is_trial"`
}
