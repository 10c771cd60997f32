package contract

import (
	"context"

	"medicab-be/internal/entity"
	"medicab-be/internal/repository/specification"

	"github.com/google/uuid"
)

// SubscriptionRepository is the persistence adapter for the subscription
// lifecycle. All cabinet-scoped lookups return at most one record; not-found
// is (nil, nil), never an error.
type SubscriptionRepository interface {
	// Plans (read-mostly catalog, seeded externally)
	CreatePlan(ctx context.Context, plan *entity.Plan) error
	FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.Plan, error)
	FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.Plan, error)
	FindPlanByStripePriceId(ctx context.Context, priceId string) (*entity.Plan, error)

	// Subscriptions (one per cabinet)
	CreateSubscription(ctx context.Context, sub *entity.Subscription) error
	UpdateSubscription(ctx context.Context, sub *entity.Subscription) error
	FindByCabinet(ctx context.Context, cabinetId uuid.UUID) (*entity.Subscription, error)
	FindByStripeSubscriptionId(ctx context.Context, stripeSubId string) (*entity.Subscription, error)

	// Admin / dashboard
	CountByStatus(ctx context.Context, status entity.SubscriptionStatus) (int, error)
}
