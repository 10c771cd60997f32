package service

import (
	"fmt"
	"math"
	"time"

	"medicab-be/internal/entity"
)

// derivedStatus is the authoritative display state recomputed from the
// subscription timestamps. It carries no persistence concern: the caller
// decides whether the stored status needs correcting.
type derivedStatus struct {
	Status    entity.SubscriptionStatus
	DaysLeft  int
	IsExpired bool
}

// deriveStatus recomputes the subscription state at a single point in time.
// Pure: same record, same plan, same now always yield the same answer, which
// keeps the read path idempotent even when two requests race the corrective
// write.
//
// Missing timestamps never error. A TRIALING record without a trial end, or an
// ACTIVE record without any period bound, degrades to CANCELED/expired instead
// of crashing on malformed historical data.
func deriveStatus(sub *entity.Subscription, plan *entity.Plan, now time.Time) derivedStatus {
	expired := derivedStatus{
		Status:    entity.SubscriptionStatusCanceled,
		DaysLeft:  0,
		IsExpired: true,
	}

	if sub == nil {
		return expired
	}

	switch sub.Status {
	case entity.SubscriptionStatusTrialing:
		if sub.TrialEnd == nil {
			// Inconsistent record, fall back to expired rather than guess.
			return expired
		}
		if sub.TrialEnd.After(now) {
			return derivedStatus{
				Status:   entity.SubscriptionStatusTrialing,
				DaysLeft: ceilDays(sub.TrialEnd.Sub(now)),
			}
		}
		// Trial lapsed. A paid period that has not ended yet promotes the
		// record to ACTIVE, even when its start is still in the future
		// ("trial honored in full before billing begins").
		if sub.CurrentPeriodEnd != nil && sub.CurrentPeriodEnd.After(now) {
			return derivedStatus{
				Status:   entity.SubscriptionStatusActive,
				DaysLeft: ceilDays(sub.CurrentPeriodEnd.Sub(now)),
			}
		}
		return expired

	case entity.SubscriptionStatusActive:
		end := sub.CurrentPeriodEnd
		if end == nil && sub.CurrentPeriodStart != nil {
			// Out-of-order webhook delivery can leave the end date empty.
			// Derive it from the plan's billing period instead of expiring
			// a paying cabinet.
			derived := sub.CurrentPeriodStart.AddDate(0, 0, plan.Duration())
			end = &derived
		}
		if end != nil && end.After(now) {
			return derivedStatus{
				Status:   entity.SubscriptionStatusActive,
				DaysLeft: ceilDays(end.Sub(now)),
			}
		}
		return expired

	default:
		return expired
	}
}

// ceilDays converts a remaining duration to whole entitlement days, rounding
// up so that a trial ending tomorrow morning still counts as one day left.
func ceilDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// FormatDaysLeft renders the remaining-days counter shown in the app header.
func FormatDaysLeft(days int) string {
	switch {
	case days <= 0:
		return "Expiré"
	case days == 1:
		return "1 jour restant"
	default:
		return fmt.Sprintf("%d jours restants", days)
	}
}
