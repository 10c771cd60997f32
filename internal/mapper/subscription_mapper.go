package mapper

import (
	"medicab-be/internal/entity"
	"medicab-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	return &entity.Plan{
		Id:            p.Id,
		DisplayName:   p.DisplayName,
		Slug:          p.Slug,
		DurationDays:  p.DurationDays,
		MaxPatients:   p.MaxPatients,
		PriceCents:    p.PriceCents,
		IsTrial:       p.IsTrial,
		StripePriceId: p.StripePriceId,
		IsActive:      p.IsActive,
		SortOrder:     p.SortOrder,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.Plan) *model.Plan {
	if p == nil {
		return nil
	}
	return &model.Plan{
		Id:            p.Id,
		DisplayName:   p.DisplayName,
		Slug:          p.Slug,
		DurationDays:  p.DurationDays,
		MaxPatients:   p.MaxPatients,
		PriceCents:    p.PriceCents,
		IsTrial:       p.IsTrial,
		StripePriceId: p.StripePriceId,
		IsActive:      p.IsActive,
		SortOrder:     p.SortOrder,
	}
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:                   s.Id,
		CabinetId:            s.CabinetId,
		PlanId:               s.PlanId,
		Status:               entity.SubscriptionStatus(s.Status),
		TrialStart:           s.TrialStart,
		TrialEnd:             s.TrialEnd,
		CurrentPeriodStart:   s.CurrentPeriodStart,
		CurrentPeriodEnd:     s.CurrentPeriodEnd,
		CancelAtPeriodEnd:    s.CancelAtPeriodEnd,
		CanceledAt:           s.CanceledAt,
		StripeSubscriptionId: s.StripeSubscriptionId,
		StripeCustomerId:     s.StripeCustomerId,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:                   s.Id,
		CabinetId:            s.CabinetId,
		PlanId:               s.PlanId,
		Status:               string(s.Status),
		TrialStart:           s.TrialStart,
		TrialEnd:             s.TrialEnd,
		CurrentPeriodStart:   s.CurrentPeriodStart,
		CurrentPeriodEnd:     s.CurrentPeriodEnd,
		CancelAtPeriodEnd:    s.CancelAtPeriodEnd,
		CanceledAt:           s.CanceledAt,
		StripeSubscriptionId: s.StripeSubscriptionId,
		StripeCustomerId:     s.StripeCustomerId,
		CreatedAt:            s.CreatedAt,
		UpdatedAt:            s.UpdatedAt,
	}
}
