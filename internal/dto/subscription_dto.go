package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatusResponse is the snapshot returned by the status check.
// Status here is the derived display status, which may have just corrected the
// stored one.
type SubscriptionStatusResponse struct {
	HasSubscription bool      `json:"has_subscription"`
	Status          string    `json:"status,omitempty"`
	DaysLeft        int       `json:"days_left"`
	IsActive        bool      `json:"is_active"`
	IsExpired       bool      `json:"is_expired"`
	IsTrial         bool      `json:"is_trial"`
	MaxPatients     int       `json:"max_patients"`
	PlanId          uuid.UUID `json:"plan_id,omitempty"`
	PlanName        string    `json:"plan_name,omitempty"`
}

type UpgradeRequest struct {
	PlanId uuid.UUID `json:"plan_id" validate:"required"`
}

// UpgradeResponse carries the computed billing window so the caller can build
// messaging like "votre abonnement payant commence dans N jours".
type UpgradeResponse struct {
	Subscription     *SubscriptionResponse `json:"subscription"`
	LeftoverDays     int                   `json:"leftover_days"`
	PaidPeriodStart  time.Time             `json:"paid_period_start"`
	PaidPeriodEnd    time.Time             `json:"paid_period_end"`
	PlanDurationDays int                   `json:"plan_duration_days"`
}

type SubscriptionResponse struct {
	Id                 uuid.UUID  `json:"id"`
	CabinetId          uuid.UUID  `json:"cabinet_id"`
	PlanId             uuid.UUID  `json:"plan_id"`
	Status             string     `json:"status"`
	TrialStart         *time.Time `json:"trial_start,omitempty"`
	TrialEnd           *time.Time `json:"trial_end,omitempty"`
	CurrentPeriodStart *time.Time `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool       `json:"cancel_at_period_end"`
	CanceledAt         *time.Time `json:"canceled_at,omitempty"`
}

// SubscriptionDisplayResponse is the UI-facing composite. The period booleans
// are computed fresh from the timestamps so the "essai avec plan payant déjà
// choisi" nuance can be shown even though Status alone cannot express it.
type SubscriptionDisplayResponse struct {
	SubscriptionStatusResponse
	HasPaidPlanSelected bool   `json:"has_paid_plan_selected"`
	IsInTrialPeriod     bool   `json:"is_in_trial_period"`
	IsInPaidPeriod      bool   `json:"is_in_paid_period"`
	DaysLeftLabel       string `json:"days_left_label"`
}

// StripeWebhookRequest is the normalized payload posted by the payment
// provider. Period and trial bounds are epoch seconds; conversion to time.Time
// is the adapter's responsibility, not the service's.
type StripeWebhookRequest struct {
	SubscriptionId     string `json:"subscription_id" validate:"required"`
	CustomerId         string `json:"customer_id"`
	Status             string `json:"status" validate:"required"`
	PriceId            string `json:"price_id"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	TrialStart         int64  `json:"trial_start"`
	TrialEnd           int64  `json:"trial_end"`
}

// ProviderSubscriptionUpdate is the webhook payload after normalization,
// ready for the service layer.
type ProviderSubscriptionUpdate struct {
	SubscriptionId     string
	CustomerId         string
	Status             string
	CurrentPeriodStart *time.Time
	CurrentPeriodEnd   *time.Time
	TrialStart         *time.Time
	TrialEnd           *time.Time
}
