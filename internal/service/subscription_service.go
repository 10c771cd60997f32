package service

import (
	"context"
	"errors"
	"time"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/pkg/logger"
	"medicab-be/internal/repository/memory"
	"medicab-be/internal/repository/specification"
	"medicab-be/internal/repository/unitofwork"
	"medicab-be/pkg/events"

	"github.com/google/uuid"
)

var (
	ErrSubscriptionNotFound = errors.New("no subscription found for this cabinet")
	ErrPlanNotFound         = errors.New("plan not found")
)

// providerFallbackPeriodDays is the synthesized billing window applied when a
// provider update says ACTIVE but carries no period bounds at all. Deliberately
// a fixed 30 days rather than plan-driven: the provider event may reference a
// price we cannot resolve to a plan yet.
const providerFallbackPeriodDays = 30

type ISubscriptionService interface {
	RegisterTrial(ctx context.Context, cabinetId, planId uuid.UUID) (*dto.SubscriptionResponse, error)
	CheckStatus(ctx context.Context, cabinetId uuid.UUID) (*dto.SubscriptionStatusResponse, error)
	Upgrade(ctx context.Context, cabinetId uuid.UUID, req *dto.UpgradeRequest) (*dto.UpgradeResponse, error)
	Cancel(ctx context.Context, cabinetId uuid.UUID) error
	ApplyProviderUpdate(ctx context.Context, update *dto.ProviderSubscriptionUpdate, planId *uuid.UUID) (*dto.SubscriptionResponse, error)
	ResolvePlanByStripePriceId(ctx context.Context, priceId string) (*uuid.UUID, error)
	GetDisplayInfo(ctx context.Context, cabinetId uuid.UUID) (*dto.SubscriptionDisplayResponse, error)
}

type subscriptionService struct {
	uowFactory       unitofwork.RepositoryFactory
	planCache        *memory.PlanCache
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	planCache *memory.PlanCache,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
) ISubscriptionService {
	return &subscriptionService{
		uowFactory:       uowFactory,
		planCache:        planCache,
		publisherService: publisherService,
		logger:           sysLogger,
	}
}

// findPlan resolves a plan through the cache. The catalog is seeded externally
// and immutable at runtime, so a cache hit is always as good as a fresh read.
func (s *subscriptionService) findPlan(ctx context.Context, uow unitofwork.UnitOfWork, planId uuid.UUID) (*entity.Plan, error) {
	if s.planCache != nil {
		if plan, found := s.planCache.GetPlan(planId); found {
			return plan, nil
		}
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if err != nil {
		return nil, err
	}
	if plan != nil && s.planCache != nil {
		s.planCache.SetPlan(plan)
	}
	return plan, nil
}

func (s *subscriptionService) RegisterTrial(ctx context.Context, cabinetId, planId uuid.UUID) (*dto.SubscriptionResponse, error) {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := s.findPlan(ctx, uow, planId)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	trialEnd := now.AddDate(0, 0, entity.TrialDays)
	sub := &entity.Subscription{
		Id:         uuid.New(),
		CabinetId:  cabinetId,
		PlanId:     plan.Id,
		Status:     entity.SubscriptionStatusTrialing,
		TrialStart: &now,
		TrialEnd:   &trialEnd,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	s.emit(ctx, "SUBSCRIPTION_TRIAL_STARTED", map[string]interface{}{
		"cabinet_id": cabinetId,
		"plan_id":    plan.Id,
		"plan_name":  plan.DisplayName,
		"trial_end":  trialEnd,
	}, now)

	return toSubscriptionResponse(sub), nil
}

func (s *subscriptionService) CheckStatus(ctx context.Context, cabinetId uuid.UUID) (*dto.SubscriptionStatusResponse, error) {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	_, _, snapshot, err := s.snapshot(ctx, uow, cabinetId, now)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// snapshot runs one derivation pass: fetch, derive, self-heal the stored
// status when it lags behind the derived one. All callers thread a single
// captured now through, so repeated calls in the same instant are idempotent.
func (s *subscriptionService) snapshot(ctx context.Context, uow unitofwork.UnitOfWork, cabinetId uuid.UUID, now time.Time) (*entity.Subscription, *entity.Plan, *dto.SubscriptionStatusResponse, error) {
	sub, err := uow.SubscriptionRepository().FindByCabinet(ctx, cabinetId)
	if err != nil {
		return nil, nil, nil, err
	}
	if sub == nil {
		// Not an error: cabinets that never registered a trial simply have
		// no subscription.
		return nil, nil, &dto.SubscriptionStatusResponse{
			HasSubscription: false,
			MaxPatients:     entity.DefaultMaxPatients,
		}, nil
	}

	// A dangling plan reference must not break the read path.
	plan, err := s.findPlan(ctx, uow, sub.PlanId)
	if err != nil {
		return nil, nil, nil, err
	}

	derived := deriveStatus(sub, plan, now)

	if derived.Status != sub.Status {
		sub.Status = derived.Status
		sub.UpdatedAt = now
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			return nil, nil, nil, err
		}
	}

	maxPatients := entity.DefaultMaxPatients
	planName := ""
	if plan != nil {
		maxPatients = plan.MaxPatients
		planName = plan.DisplayName
	}

	res := &dto.SubscriptionStatusResponse{
		HasSubscription: true,
		Status:          string(derived.Status),
		DaysLeft:        derived.DaysLeft,
		IsActive:        derived.Status == entity.SubscriptionStatusActive || derived.Status == entity.SubscriptionStatusTrialing,
		IsExpired:       derived.IsExpired,
		IsTrial:         derived.Status == entity.SubscriptionStatusTrialing,
		MaxPatients:     maxPatients,
		PlanId:          sub.PlanId,
		PlanName:        planName,
	}
	return sub, plan, res, nil
}

func (s *subscriptionService) Upgrade(ctx context.Context, cabinetId uuid.UUID, req *dto.UpgradeRequest) (*dto.UpgradeResponse, error) {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindByCabinet(ctx, cabinetId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}

	plan, err := s.findPlan(ctx, uow, req.PlanId)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	// Unused trial days are honored in full: billing starts where the trial
	// ends, and the record stays TRIALING until then.
	leftoverDays := 0
	if sub.TrialEnd != nil && sub.TrialEnd.After(now) {
		leftoverDays = ceilDays(sub.TrialEnd.Sub(now))
	}

	paidStart := now
	status := entity.SubscriptionStatusActive
	if leftoverDays > 0 {
		paidStart = *sub.TrialEnd
		status = entity.SubscriptionStatusTrialing
	}
	paidEnd := paidStart.AddDate(0, 0, plan.Duration())

	sub.PlanId = plan.Id
	sub.Status = status
	sub.CurrentPeriodStart = &paidStart
	sub.CurrentPeriodEnd = &paidEnd
	sub.UpdatedAt = now

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	// The confirmation mail goes to the cabinet admin.
	adminEmail := ""
	admin, err := uow.UserRepository().FindOne(ctx,
		specification.CabinetOwnedBy{CabinetID: cabinetId},
		specification.Filter("role", string(entity.UserRoleAdmin)),
	)
	if err == nil && admin != nil {
		adminEmail = admin.Email
	}

	s.emit(ctx, "SUBSCRIPTION_UPGRADED", map[string]interface{}{
		"cabinet_id":    cabinetId,
		"plan_id":       plan.Id,
		"plan_name":     plan.DisplayName,
		"email":         adminEmail,
		"leftover_days": leftoverDays,
		"period_start":  paidStart,
		"period_end":    paidEnd,
	}, now)

	return &dto.UpgradeResponse{
		Subscription:     toSubscriptionResponse(sub),
		LeftoverDays:     leftoverDays,
		PaidPeriodStart:  paidStart,
		PaidPeriodEnd:    paidEnd,
		PlanDurationDays: plan.Duration(),
	}, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, cabinetId uuid.UUID) error {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindByCabinet(ctx, cabinetId)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	// Access continues until the current period runs out; the read path
	// expires the record naturally. Only the cancellation markers change.
	sub.CancelAtPeriodEnd = true
	sub.CanceledAt = &now
	sub.UpdatedAt = now

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}

	s.emit(ctx, "SUBSCRIPTION_CANCELED", map[string]interface{}{
		"cabinet_id":  cabinetId,
		"canceled_at": now,
	}, now)

	return nil
}

func (s *subscriptionService) ApplyProviderUpdate(ctx context.Context, update *dto.ProviderSubscriptionUpdate, planId *uuid.UUID) (*dto.SubscriptionResponse, error) {
	now := time.Now()

	status, err := entity.ParseProviderStatus(update.Status)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindByStripeSubscriptionId(ctx, update.SubscriptionId)
	if err != nil {
		return nil, err
	}
	if sub == nil && update.CustomerId != "" {
		// The provider id is unknown on the first event for a checkout
		// started from our side; fall back to the customer reference.
		cabinet, err := uow.CabinetRepository().FindByStripeCustomerId(ctx, update.CustomerId)
		if err != nil {
			return nil, err
		}
		if cabinet != nil {
			sub, err = uow.SubscriptionRepository().FindByCabinet(ctx, cabinet.Id)
			if err != nil {
				return nil, err
			}
		}
	}
	if sub == nil {
		return nil, ErrSubscriptionNotFound
	}

	sub.Status = status
	if sub.StripeSubscriptionId == nil || *sub.StripeSubscriptionId != update.SubscriptionId {
		subId := update.SubscriptionId
		sub.StripeSubscriptionId = &subId
	}
	if update.CustomerId != "" {
		custId := update.CustomerId
		sub.StripeCustomerId = &custId
	}
	if planId != nil {
		sub.PlanId = *planId
	}

	// Trial bounds are only trusted while the provider itself says the
	// subscription is trialing; otherwise local trial history is preserved.
	if status == entity.SubscriptionStatusTrialing {
		if update.TrialStart != nil {
			sub.TrialStart = update.TrialStart
		}
		if update.TrialEnd != nil {
			sub.TrialEnd = update.TrialEnd
		}
	}

	if update.CurrentPeriodStart != nil {
		sub.CurrentPeriodStart = update.CurrentPeriodStart
	}
	if update.CurrentPeriodEnd != nil {
		sub.CurrentPeriodEnd = update.CurrentPeriodEnd
	}

	if status == entity.SubscriptionStatusActive && sub.CurrentPeriodStart == nil && sub.CurrentPeriodEnd == nil {
		start := now
		end := now.AddDate(0, 0, providerFallbackPeriodDays)
		sub.CurrentPeriodStart = &start
		sub.CurrentPeriodEnd = &end
	}

	sub.UpdatedAt = now

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	s.emit(ctx, "SUBSCRIPTION_PROVIDER_SYNCED", map[string]interface{}{
		"cabinet_id":             sub.CabinetId,
		"stripe_subscription_id": update.SubscriptionId,
		"status":                 string(status),
	}, now)

	return toSubscriptionResponse(sub), nil
}

// ResolvePlanByStripePriceId maps a provider price reference onto a catalog
// plan. An unknown price is not an error: the provider update is still applied
// without switching the plan.
func (s *subscriptionService) ResolvePlanByStripePriceId(ctx context.Context, priceId string) (*uuid.UUID, error) {
	if priceId == "" {
		return nil, nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.SubscriptionRepository().FindPlanByStripePriceId(ctx, priceId)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, nil
	}
	if s.planCache != nil {
		s.planCache.SetPlan(plan)
	}
	return &plan.Id, nil
}

func (s *subscriptionService) GetDisplayInfo(ctx context.Context, cabinetId uuid.UUID) (*dto.SubscriptionDisplayResponse, error) {
	now := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, plan, snapshot, err := s.snapshot(ctx, uow, cabinetId, now)
	if err != nil {
		return nil, err
	}

	res := &dto.SubscriptionDisplayResponse{
		SubscriptionStatusResponse: *snapshot,
		DaysLeftLabel:              FormatDaysLeft(snapshot.DaysLeft),
	}
	if sub == nil {
		return res, nil
	}

	// Computed straight from the timestamps, independent of the corrected
	// status field: a cabinet can be inside its trial with a paid plan
	// already selected, and the UI wants to say so.
	res.HasPaidPlanSelected = sub.HasPaidPeriod() && plan != nil && !plan.IsTrial
	res.IsInTrialPeriod = sub.IsInTrialPeriodAt(now)
	res.IsInPaidPeriod = sub.IsInPaidPeriodAt(now)
	return res, nil
}

// emit publishes a lifecycle event. Failures are logged and swallowed: the
// request that triggered the event has already succeeded.
func (s *subscriptionService) emit(ctx context.Context, eventType string, data map[string]interface{}, now time.Time) {
	if s.publisherService == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: now,
	}
	if err := s.publisherService.Publish(ctx, evt); err != nil && s.logger != nil {
		s.logger.Warn("subscription", "failed to publish event", map[string]interface{}{
			"event_type": eventType,
			"error":      err.Error(),
		})
	}
}

func toSubscriptionResponse(sub *entity.Subscription) *dto.SubscriptionResponse {
	if sub == nil {
		return nil
	}
	return &dto.SubscriptionResponse{
		Id:                 sub.Id,
		CabinetId:          sub.CabinetId,
		PlanId:             sub.PlanId,
		Status:             string(sub.Status),
		TrialStart:         sub.TrialStart,
		TrialEnd:           sub.TrialEnd,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
		CanceledAt:         sub.CanceledAt,
	}
}
