package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusTrialing SubscriptionStatus = "TRIALING"
	SubscriptionStatusActive   SubscriptionStatus = "ACTIVE"
	SubscriptionStatusCanceled SubscriptionStatus = "CANCELED"
)

const (
	// TrialDays is the length of the free trial window opened at cabinet registration.
	TrialDays = 7

	// DefaultPlanDurationDays is used when a plan record carries no duration.
	DefaultPlanDurationDays = 30

	// DefaultMaxPatients is the entitlement ceiling when no plan can be resolved.
	DefaultMaxPatients = 3
)

// ParseProviderStatus maps a payment-provider status string onto our enum.
// Unknown statuses are rejected instead of being stored verbatim, so the
// derivation logic only ever sees the three states it understands.
func ParseProviderStatus(raw string) (SubscriptionStatus, error) {
	switch SubscriptionStatus(strings.ToUpper(raw)) {
	case SubscriptionStatusTrialing:
		return SubscriptionStatusTrialing, nil
	case SubscriptionStatusActive:
		return SubscriptionStatusActive, nil
	case SubscriptionStatusCanceled:
		return SubscriptionStatusCanceled, nil
	default:
		return "", fmt.Errorf("unknown provider subscription status %q", raw)
	}
}

// Plan is an immutable catalog entry, seeded by cmd/seed and read-only at runtime.
type Plan struct {
	Id            uuid.UUID
	DisplayName   string
	Slug          string
	DurationDays  int // billing period length, 0 means DefaultPlanDurationDays
	MaxPatients   int // -1 = unlimited
	PriceCents    int64
	IsTrial       bool
	StripePriceId *string
	IsActive      bool
	SortOrder     int
}

// Duration returns the billing period length with the default applied.
func (p *Plan) Duration() int {
	if p == nil || p.DurationDays <= 0 {
		return DefaultPlanDurationDays
	}
	return p.DurationDays
}

// Subscription is the single billing record of a cabinet. The stored Status is a
// hint; the authoritative state is always re-derived from the timestamps.
type Subscription struct {
	Id                   uuid.UUID
	CabinetId            uuid.UUID
	PlanId               uuid.UUID
	Status               SubscriptionStatus
	TrialStart           *time.Time
	TrialEnd             *time.Time
	CurrentPeriodStart   *time.Time
	CurrentPeriodEnd     *time.Time
	CancelAtPeriodEnd    bool
	CanceledAt           *time.Time
	StripeSubscriptionId *string
	StripeCustomerId     *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsInTrialPeriodAt reports whether now falls inside the trial window,
// independent of the stored status.
func (s *Subscription) IsInTrialPeriodAt(now time.Time) bool {
	if s.TrialStart == nil || s.TrialEnd == nil {
		return false
	}
	return !now.Before(*s.TrialStart) && now.Before(*s.TrialEnd)
}

// IsInPaidPeriodAt reports whether now falls inside the paid billing window.
func (s *Subscription) IsInPaidPeriodAt(now time.Time) bool {
	if s.CurrentPeriodStart == nil || s.CurrentPeriodEnd == nil {
		return false
	}
	return !now.Before(*s.CurrentPeriodStart) && now.Before(*s.CurrentPeriodEnd)
}

// HasPaidPeriod reports whether a paid window has been recorded at all. A
// trialing subscription may already carry one ("trial with a paid plan
// selected"), which is a valid state.
func (s *Subscription) HasPaidPeriod() bool {
	return s.CurrentPeriodStart != nil || s.CurrentPeriodEnd != nil
}
