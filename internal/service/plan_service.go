package service

import (
	"context"

	"medicab-be/internal/dto"
	"medicab-be/internal/entity"
	"medicab-be/internal/repository/memory"
	"medicab-be/internal/repository/specification"
	"medicab-be/internal/repository/unitofwork"
)

type IPlanService interface {
	GetCatalog(ctx context.Context) ([]*dto.PlanResponse, error)
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	planCache  *memory.PlanCache
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, planCache *memory.PlanCache) IPlanService {
	return &planService{
		uowFactory: uowFactory,
		planCache:  planCache,
	}
}

// GetCatalog returns the active plans for the pricing page, cached because
// the catalog only changes on reseed.
func (s *planService) GetCatalog(ctx context.Context) ([]*dto.PlanResponse, error) {
	var plans []*entity.Plan

	if s.planCache != nil {
		if cached, found := s.planCache.GetCatalog(); found {
			plans = cached
		}
	}

	if plans == nil {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		fetched, err := uow.SubscriptionRepository().FindAllPlans(ctx,
			specification.Filter("is_active", true),
			specification.OrderBy{Field: "sort_order"},
		)
		if err != nil {
			return nil, err
		}
		plans = fetched
		if s.planCache != nil {
			s.planCache.SetCatalog(plans)
		}
	}

	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, &dto.PlanResponse{
			Id:           p.Id,
			DisplayName:  p.DisplayName,
			Slug:         p.Slug,
			DurationDays: p.Duration(),
			MaxPatients:  p.MaxPatients,
			PriceCents:   p.PriceCents,
			IsTrial:      p.IsTrial,
		})
	}
	return res, nil
}
