package dto

import (
	"github.com/google/uuid"
)

type CreateTariffRequest struct {
	Code        string `json:"code" validate:"required"`
	Label       string `json:"label" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"required,min=0"`
	Currency    string `json:"currency,omitempty"`
}

type UpdateTariffRequest struct {
	Label       *string `json:"label,omitempty"`
	AmountCents *int64  `json:"amount_cents,omitempty" validate:"omitempty,min=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type TariffResponse struct {
	Id          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Label       string    `json:"label"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	IsActive    bool      `json:"is_active"`
}
