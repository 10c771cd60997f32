package service

import (
	"context"
	"testing"
	"time"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubscriptionService() (ISubscriptionService, *fakeUnitOfWork, *fakePublisher) {
	factory, uow := newFakeUowFactory()
	publisher := &fakePublisher{}
	svc := NewSubscriptionService(factory, memory.NewPlanCache(), publisher, nil)
	return svc, uow, publisher
}

func seedTrialPlan(uow *fakeUnitOfWork) *entity.Plan {
	plan := &entity.Plan{
		Id:           uuid.New(),
		DisplayName:  "Découverte",
		Slug:         "decouverte",
		DurationDays: entity.TrialDays,
		MaxPatients:  entity.DefaultMaxPatients,
		IsTrial:      true,
		IsActive:     true,
	}
	uow.subscriptions.plans = append(uow.subscriptions.plans, plan)
	return plan
}

func seedPaidPlan(uow *fakeUnitOfWork) *entity.Plan {
	priceId := "price_essentiel_monthly"
	plan := &entity.Plan{
		Id:            uuid.New(),
		DisplayName:   "Essentiel",
		Slug:          "essentiel",
		DurationDays:  30,
		MaxPatients:   100,
		PriceCents:    2900,
		StripePriceId: &priceId,
		IsActive:      true,
	}
	uow.subscriptions.plans = append(uow.subscriptions.plans, plan)
	return plan
}

func TestRegisterTrial(t *testing.T) {
	svc, uow, publisher := newTestSubscriptionService()
	plan := seedTrialPlan(uow)
	cabinetId := uuid.New()

	res, err := svc.RegisterTrial(context.Background(), cabinetId, plan.Id)
	require.NoError(t, err)

	assert.Equal(t, string(entity.SubscriptionStatusTrialing), res.Status)
	assert.Equal(t, cabinetId, res.CabinetId)
	require.NotNil(t, res.TrialStart)
	require.NotNil(t, res.TrialEnd)
	assert.Equal(t, entity.TrialDays, ceilDays(res.TrialEnd.Sub(*res.TrialStart)))
	assert.Nil(t, res.CurrentPeriodStart)
	assert.Nil(t, res.CurrentPeriodEnd)

	require.NotNil(t, uow.subscriptions.sub)
	assert.Equal(t, []string{"SUBSCRIPTION_TRIAL_STARTED"}, publisher.eventTypes())
}

func TestRegisterTrialUnknownPlan(t *testing.T) {
	svc, _, publisher := newTestSubscriptionService()

	_, err := svc.RegisterTrial(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.Empty(t, publisher.published)
}

func TestCheckStatusWithoutSubscription(t *testing.T) {
	svc, _, _ := newTestSubscriptionService()

	status, err := svc.CheckStatus(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.False(t, status.HasSubscription)
	assert.False(t, status.IsActive)
	assert.Equal(t, entity.DefaultMaxPatients, status.MaxPatients)
}

func TestCheckStatusDuringTrial(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	plan := seedTrialPlan(uow)
	cabinetId := uuid.New()

	_, err := svc.RegisterTrial(context.Background(), cabinetId, plan.Id)
	require.NoError(t, err)

	status, err := svc.CheckStatus(context.Background(), cabinetId)
	require.NoError(t, err)

	assert.True(t, status.HasSubscription)
	assert.Equal(t, string(entity.SubscriptionStatusTrialing), status.Status)
	assert.Equal(t, entity.TrialDays, status.DaysLeft)
	assert.True(t, status.IsActive)
	assert.True(t, status.IsTrial)
	assert.False(t, status.IsExpired)
	assert.Equal(t, plan.MaxPatients, status.MaxPatients)

	// Stored and derived status agree, so no corrective write happened.
	assert.Equal(t, 0, uow.subscriptions.updateCalls)
}

func TestCheckStatusHealsLapsedTrial(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	plan := seedPaidPlan(uow)
	cabinetId := uuid.New()

	trialEnd := time.Now().AddDate(0, 0, -2)
	trialStart := trialEnd.AddDate(0, 0, -entity.TrialDays)
	periodEnd := time.Now().AddDate(0, 0, 28)
	uow.subscriptions.sub = &entity.Subscription{
		Id:                 uuid.New(),
		CabinetId:          cabinetId,
		PlanId:             plan.Id,
		Status:             entity.SubscriptionStatusTrialing,
		TrialStart:         &trialStart,
		TrialEnd:           &trialEnd,
		CurrentPeriodStart: &trialEnd,
		CurrentPeriodEnd:   &periodEnd,
	}

	status, err := svc.CheckStatus(context.Background(), cabinetId)
	require.NoError(t, err)

	assert.Equal(t, string(entity.SubscriptionStatusActive), status.Status)
	assert.Equal(t, 28, status.DaysLeft)
	assert.True(t, status.IsActive)
	assert.False(t, status.IsTrial)

	// The stale stored status was corrected exactly once.
	assert.Equal(t, entity.SubscriptionStatusActive, uow.subscriptions.sub.Status)
	assert.Equal(t, 1, uow.subscriptions.updateCalls)

	// A second check finds stored and derived in agreement.
	again, err := svc.CheckStatus(context.Background(), cabinetId)
	require.NoError(t, err)
	assert.Equal(t, status.Status, again.Status)
	assert.Equal(t, 1, uow.subscriptions.updateCalls)
}

func TestCheckStatusExpiresLapsedTrialWithoutPaidPeriod(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	plan := seedTrialPlan(uow)
	cabinetId := uuid.New()

	trialEnd := time.Now().AddDate(0, 0, -1)
	uow.subscriptions.sub = &entity.Subscription{
		Id:        uuid.New(),
		CabinetId: cabinetId,
		PlanId:    plan.Id,
		Status:    entity.SubscriptionStatusTrialing,
		TrialEnd:  &trialEnd,
	}

	status, err := svc.CheckStatus(context.Background(), cabinetId)
	require.NoError(t, err)

	assert.Equal(t, string(entity.SubscriptionStatusCanceled), status.Status)
	assert.True(t, status.IsExpired)
	assert.False(t, status.IsActive)
	assert.Equal(t, 0, status.DaysLeft)
	assert.Equal(t, entity.SubscriptionStatusCanceled, uow.subscriptions.sub.Status)
}

func TestUpgradeCarriesLeftoverTrialDays(t *testing.T) {
	svc, uow, publisher := newTestSubscriptionService()
	paid := seedPaidPlan(uow)
	cabinetId := uuid.New()

	trialStart := time.Now().AddDate(0, 0, -4)
	trialEnd := time.Now().Add(72 * time.Hour)
	uow.subscriptions.sub = &entity.Subscription{
		Id:         uuid.New(),
		CabinetId:  cabinetId,
		PlanId:     uuid.New(),
		Status:     entity.SubscriptionStatusTrialing,
		TrialStart: &trialStart,
		TrialEnd:   &trialEnd,
	}

	res, err := svc.Upgrade(context.Background(), cabinetId, &dto.UpgradeRequest{PlanId: paid.Id})
	require.NoError(t, err)

	// Three unused trial days: billing starts at the trial end, not today.
	assert.Equal(t, 3, res.LeftoverDays)
	assert.Equal(t, trialEnd, res.PaidPeriodStart)
	assert.Equal(t, trialEnd.AddDate(0, 0, 30), res.PaidPeriodEnd)
	assert.Equal(t, string(entity.SubscriptionStatusTrialing), res.Subscription.Status)

	sub := uow.subscriptions.sub
	assert.Equal(t, paid.Id, sub.PlanId)
	assert.Equal(t, entity.SubscriptionStatusTrialing, sub.Status)
	require.NotNil(t, sub.TrialEnd)
	assert.Equal(t, trialEnd, *sub.TrialEnd)

	assert.Equal(t, []string{"SUBSCRIPTION_UPGRADED"}, publisher.eventTypes())
}

func TestUpgradeAfterTrialLapsed(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	paid := seedPaidPlan(uow)
	cabinetId := uuid.New()

	before := time.Now()
	trialEnd := before.AddDate(0, 0, -1)
	uow.subscriptions.sub = &entity.Subscription{
		Id:        uuid.New(),
		CabinetId: cabinetId,
		PlanId:    uuid.New(),
		Status:    entity.SubscriptionStatusCanceled,
		TrialEnd:  &trialEnd,
	}

	res, err := svc.Upgrade(context.Background(), cabinetId, &dto.UpgradeRequest{PlanId: paid.Id})
	require.NoError(t, err)

	assert.Equal(t, 0, res.LeftoverDays)
	assert.Equal(t, string(entity.SubscriptionStatusActive), res.Subscription.Status)
	assert.False(t, res.PaidPeriodStart.Before(before))
	assert.Equal(t, res.PaidPeriodStart.AddDate(0, 0, 30), res.PaidPeriodEnd)
}

func TestUpgradeEventCarriesAdminEmail(t *testing.T) {
	svc, uow, publisher := newTestSubscriptionService()
	paid := seedPaidPlan(uow)
	cabinetId := uuid.New()

	uow.users.users = append(uow.users.users, &entity.User{
		Id:        uuid.New(),
		CabinetId: cabinetId,
		Email:     "admin@cabinet.fr",
		Role:      entity.UserRoleAdmin,
	})
	trialEnd := time.Now().AddDate(0, 0, -1)
	uow.subscriptions.sub = &entity.Subscription{
		Id:        uuid.New(),
		CabinetId: cabinetId,
		PlanId:    uuid.New(),
		Status:    entity.SubscriptionStatusCanceled,
		TrialEnd:  &trialEnd,
	}

	_, err := svc.Upgrade(context.Background(), cabinetId, &dto.UpgradeRequest{PlanId: paid.Id})
	require.NoError(t, err)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, "admin@cabinet.fr", publisher.published[0].Payload()["email"])
}

func TestUpgradeWithoutSubscription(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	paid := seedPaidPlan(uow)

	_, err := svc.Upgrade(context.Background(), uuid.New(), &dto.UpgradeRequest{PlanId: paid.Id})
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestCancelKeepsAccessUntilPeriodEnd(t *testing.T) {
	svc, uow, publisher := newTestSubscriptionService()
	paid := seedPaidPlan(uow)
	cabinetId := uuid.New()

	periodStart := time.Now().AddDate(0, 0, -5)
	periodEnd := time.Now().AddDate(0, 0, 25)
	uow.subscriptions.sub = &entity.Subscription{
		Id:                 uuid.New(),
		CabinetId:          cabinetId,
		PlanId:             paid.Id,
		Status:             entity.SubscriptionStatusActive,
		CurrentPeriodStart: &periodStart,
		CurrentPeriodEnd:   &periodEnd,
	}

	require.NoError(t, svc.Cancel(context.Background(), cabinetId))

	sub := uow.subscriptions.sub
	assert.True(t, sub.CancelAtPeriodEnd)
	require.NotNil(t, sub.CanceledAt)
	// The period bounds and the stored status are untouched.
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	require.NotNil(t, sub.CurrentPeriodEnd)
	assert.Equal(t, periodEnd, *sub.CurrentPeriodEnd)

	// Access continues: the derived status is still active.
	status, err := svc.CheckStatus(context.Background(), cabinetId)
	require.NoError(t, err)
	assert.True(t, status.IsActive)
	assert.Equal(t, 25, status.DaysLeft)

	assert.Equal(t, []string{"SUBSCRIPTION_CANCELED"}, publisher.eventTypes())
}

func TestCancelWithoutSubscription(t *testing.T) {
	svc, _, _ := newTestSubscriptionService()
	assert.ErrorIs(t, svc.Cancel(context.Background(), uuid.New()), ErrSubscriptionNotFound)
}

func TestApplyProviderUpdateRejectsUnknownStatus(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()

	_, err := svc.ApplyProviderUpdate(context.Background(), &dto.ProviderSubscriptionUpdate{
		SubscriptionId: "sub_123",
		Status:         "past_due",
	}, nil)

	assert.Error(t, err)
	assert.Equal(t, 0, uow.subscriptions.updateCalls)
}

func TestApplyProviderUpdateBySubscriptionId(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	paid := seedPaidPlan(uow)
	cabinetId := uuid.New()

	stripeSubId := "sub_123"
	periodStart := time.Now()
	periodEnd := periodStart.AddDate(0, 0, 30)
	uow.subscriptions.sub = &entity.Subscription{
		Id:                   uuid.New(),
		CabinetId:            cabinetId,
		PlanId:               paid.Id,
		Status:               entity.SubscriptionStatusTrialing,
		StripeSubscriptionId: &stripeSubId,
	}

	res, err := svc.ApplyProviderUpdate(context.Background(), &dto.ProviderSubscriptionUpdate{
		SubscriptionId:     stripeSubId,
		Status:             "active",
		CurrentPeriodStart: &periodStart,
		CurrentPeriodEnd:   &periodEnd,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, string(entity.SubscriptionStatusActive), res.Status)
	require.NotNil(t, res.CurrentPeriodStart)
	assert.Equal(t, periodStart, *res.CurrentPeriodStart)
	require.NotNil(t, res.CurrentPeriodEnd)
	assert.Equal(t, periodEnd, *res.CurrentPeriodEnd)
}

func TestApplyProviderUpdateFallsBackToCustomerId(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	paid := seedPaidPlan(uow)
	cabinetId := uuid.New()

	customerId := "cus_456"
	uow.cabinets.cabinets = append(uow.cabinets.cabinets, &entity.Cabinet{
		Id:               cabinetId,
		Name:             "Cabinet Dupont",
		StripeCustomerId: &customerId,
	})
	trialEnd := time.Now().AddDate(0, 0, 3)
	uow.subscriptions.sub = &entity.Subscription{
		Id:        uuid.New(),
		CabinetId: cabinetId,
		PlanId:    paid.Id,
		Status:    entity.SubscriptionStatusTrialing,
		TrialEnd:  &trialEnd,
	}

	periodStart := time.Now()
	periodEnd := periodStart.AddDate(0, 0, 30)
	res, err := svc.ApplyProviderUpdate(context.Background(), &dto.ProviderSubscriptionUpdate{
		SubscriptionId:     "sub_new",
		CustomerId:         customerId,
		Status:             "active",
		CurrentPeriodStart: &periodStart,
		CurrentPeriodEnd:   &periodEnd,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, cabinetId, res.CabinetId)
	// The provider subscription id is captured for the next event.
	require.NotNil(t, uow.subscriptions.sub.StripeSubscriptionId)
	assert.Equal(t, "sub_new", *uow.subscriptions.sub.StripeSubscriptionId)
	require.NotNil(t, uow.subscriptions.sub.StripeCustomerId)
	assert.Equal(t, customerId, *uow.subscriptions.sub.StripeCustomerId)
}

func TestApplyProviderUpdateUnknownSubscription(t *testing.T) {
	svc, _, _ := newTestSubscriptionService()

	_, err := svc.ApplyProviderUpdate(context.Background(), &dto.ProviderSubscriptionUpdate{
		SubscriptionId: "sub_unknown",
		CustomerId:     "cus_unknown",
		Status:         "active",
	}, nil)

	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestApplyProviderUpdateSynthesizesMissingPeriod(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	paid := seedPaidPlan(uow)
	cabinetId := uuid.New()

	stripeSubId := "sub_123"
	uow.subscriptions.sub = &entity.Subscription{
		Id:                   uuid.New(),
		CabinetId:            cabinetId,
		PlanId:               paid.Id,
		Status:               entity.SubscriptionStatusTrialing,
		StripeSubscriptionId: &stripeSubId,
	}

	before := time.Now()
	res, err := svc.ApplyProviderUpdate(context.Background(), &dto.ProviderSubscriptionUpdate{
		SubscriptionId: stripeSubId,
		Status:         "active",
	}, nil)
	require.NoError(t, err)

	// ACTIVE with no period bounds at all gets a synthesized 30 day window.
	require.NotNil(t, res.CurrentPeriodStart)
	require.NotNil(t, res.CurrentPeriodEnd)
	assert.False(t, res.CurrentPeriodStart.Before(before))
	assert.Equal(t, res.CurrentPeriodStart.AddDate(0, 0, providerFallbackPeriodDays), *res.CurrentPeriodEnd)

	// The window is persisted, so the next derivation reads it back.
	status, err := svc.CheckStatus(context.Background(), cabinetId)
	require.NoError(t, err)
	assert.True(t, status.IsActive)
	assert.Equal(t, providerFallbackPeriodDays, status.DaysLeft)
}

func TestApplyProviderUpdatePreservesTrialHistoryWhenActive(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	paid := seedPaidPlan(uow)
	cabinetId := uuid.New()

	stripeSubId := "sub_123"
	trialStart := time.Now().AddDate(0, 0, -10)
	trialEnd := time.Now().AddDate(0, 0, -3)
	uow.subscriptions.sub = &entity.Subscription{
		Id:                   uuid.New(),
		CabinetId:            cabinetId,
		PlanId:               paid.Id,
		Status:               entity.SubscriptionStatusTrialing,
		TrialStart:           &trialStart,
		TrialEnd:             &trialEnd,
		StripeSubscriptionId: &stripeSubId,
	}

	bogusTrialEnd := time.Now().AddDate(0, 0, 14)
	periodStart := time.Now()
	periodEnd := periodStart.AddDate(0, 0, 30)
	_, err := svc.ApplyProviderUpdate(context.Background(), &dto.ProviderSubscriptionUpdate{
		SubscriptionId:     stripeSubId,
		Status:             "active",
		TrialEnd:           &bogusTrialEnd,
		CurrentPeriodStart: &periodStart,
		CurrentPeriodEnd:   &periodEnd,
	}, nil)
	require.NoError(t, err)

	// Trial bounds are only overwritten while the provider says TRIALING.
	require.NotNil(t, uow.subscriptions.sub.TrialEnd)
	assert.Equal(t, trialEnd, *uow.subscriptions.sub.TrialEnd)
}

func TestApplyProviderUpdateSwitchesPlan(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	paid := seedPaidPlan(uow)
	cabinetId := uuid.New()

	stripeSubId := "sub_123"
	uow.subscriptions.sub = &entity.Subscription{
		Id:                   uuid.New(),
		CabinetId:            cabinetId,
		PlanId:               uuid.New(),
		Status:               entity.SubscriptionStatusTrialing,
		StripeSubscriptionId: &stripeSubId,
	}

	_, err := svc.ApplyProviderUpdate(context.Background(), &dto.ProviderSubscriptionUpdate{
		SubscriptionId: stripeSubId,
		Status:         "active",
	}, &paid.Id)
	require.NoError(t, err)

	assert.Equal(t, paid.Id, uow.subscriptions.sub.PlanId)
}

func TestResolvePlanByStripePriceId(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	paid := seedPaidPlan(uow)

	planId, err := svc.ResolvePlanByStripePriceId(context.Background(), *paid.StripePriceId)
	require.NoError(t, err)
	require.NotNil(t, planId)
	assert.Equal(t, paid.Id, *planId)

	// Unknown and empty price ids resolve to nothing without erroring.
	planId, err = svc.ResolvePlanByStripePriceId(context.Background(), "price_unknown")
	require.NoError(t, err)
	assert.Nil(t, planId)

	planId, err = svc.ResolvePlanByStripePriceId(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, planId)
}

func TestGetDisplayInfo(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	paid := seedPaidPlan(uow)
	cabinetId := uuid.New()

	// Mid-trial with a paid plan already selected: the upgrade happened but
	// billing has not started yet.
	trialStart := time.Now().AddDate(0, 0, -2)
	trialEnd := time.Now().AddDate(0, 0, 5)
	periodEnd := trialEnd.AddDate(0, 0, 30)
	uow.subscriptions.sub = &entity.Subscription{
		Id:                 uuid.New(),
		CabinetId:          cabinetId,
		PlanId:             paid.Id,
		Status:             entity.SubscriptionStatusTrialing,
		TrialStart:         &trialStart,
		TrialEnd:           &trialEnd,
		CurrentPeriodStart: &trialEnd,
		CurrentPeriodEnd:   &periodEnd,
	}

	info, err := svc.GetDisplayInfo(context.Background(), cabinetId)
	require.NoError(t, err)

	assert.True(t, info.HasSubscription)
	assert.True(t, info.IsTrial)
	assert.True(t, info.IsInTrialPeriod)
	assert.False(t, info.IsInPaidPeriod)
	assert.True(t, info.HasPaidPlanSelected)
	assert.Equal(t, 5, info.DaysLeft)
	assert.Equal(t, "5 jours restants", info.DaysLeftLabel)
}

func TestGetDisplayInfoExpired(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	plan := seedTrialPlan(uow)
	cabinetId := uuid.New()

	trialEnd := time.Now().AddDate(0, 0, -1)
	uow.subscriptions.sub = &entity.Subscription{
		Id:        uuid.New(),
		CabinetId: cabinetId,
		PlanId:    plan.Id,
		Status:    entity.SubscriptionStatusTrialing,
		TrialEnd:  &trialEnd,
	}

	info, err := svc.GetDisplayInfo(context.Background(), cabinetId)
	require.NoError(t, err)

	assert.True(t, info.IsExpired)
	assert.Equal(t, "Expiré", info.DaysLeftLabel)
}

func TestPlanCacheServesRepeatedReads(t *testing.T) {
	svc, uow, _ := newTestSubscriptionService()
	plan := seedTrialPlan(uow)
	cabinetId := uuid.New()

	_, err := svc.RegisterTrial(context.Background(), cabinetId, plan.Id)
	require.NoError(t, err)
	reads := uow.subscriptions.planReads

	// The registration primed the cache; subsequent status checks resolve the
	// plan without touching the repository again.
	_, err = svc.CheckStatus(context.Background(), cabinetId)
	require.NoError(t, err)
	_, err = svc.CheckStatus(context.Background(), cabinetId)
	require.NoError(t, err)

	assert.Equal(t, reads, uow.subscriptions.planReads)
}
