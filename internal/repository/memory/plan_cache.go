package memory

import (
	"time"

	"medicab-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const catalogKey = "plans:catalog"

// PlanCache caches the plan catalog in memory. Plans are seeded externally and
// immutable at runtime, so a generous TTL is safe.
type PlanCache struct {
	cache *cache.Cache
}

func NewPlanCache() *PlanCache {
	// Default expiration 10 minutes, purge sweep every 15 minutes
	c := cache.New(10*time.Minute, 15*time.Minute)
	return &PlanCache{
		cache: c,
	}
}

func (p *PlanCache) GetPlan(id uuid.UUID) (*entity.Plan, bool) {
	if x, found := p.cache.Get(id.String()); found {
		return x.(*entity.Plan), true
	}
	return nil, false
}

func (p *PlanCache) SetPlan(plan *entity.Plan) {
	if plan == nil {
		return
	}
	p.cache.Set(plan.Id.String(), plan, cache.DefaultExpiration)
}

func (p *PlanCache) GetCatalog() ([]*entity.Plan, bool) {
	if x, found := p.cache.Get(catalogKey); found {
		return x.([]*entity.Plan), true
	}
	return nil, false
}

func (p *PlanCache) SetCatalog(plans []*entity.Plan) {
	p.cache.Set(catalogKey, plans, cache.DefaultExpiration)
	for _, plan := range plans {
		p.SetPlan(plan)
	}
}

func (p *PlanCache) Invalidate() {
	p.cache.Flush()
}
