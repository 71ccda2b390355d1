package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/laundrycare/lce/internal/domain/plan"
	ierr "github.com/laundrycare/lce/internal/errors"
)

var _ plan.Repository = (*InMemoryPlanStore)(nil)

// InMemoryPlanStore is an in-memory implementation of plan.Repository
type InMemoryPlanStore struct {
	mu    sync.RWMutex
	plans map[string]*plan.Plan
}

func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		plans: make(map[string]*plan.Plan),
	}
}

func (s *InMemoryPlanStore) Create(ctx context.Context, p *plan.Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[p.ID] = p
	return nil
}

func (s *InMemoryPlanStore) Update(ctx context.Context, p *plan.Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[p.ID]; !ok {
		return ierr.NewError("plan not found").
			Mark(ierr.ErrNotFound)
	}
	s.plans[p.ID] = p
	return nil
}

func (s *InMemoryPlanStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, ierr.NewError("plan not found").
			WithHint("Plan not found").
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (s *InMemoryPlanStore) ListActive(ctx context.Context) ([]*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var plans []*plan.Plan
	for _, p := range s.plans {
		if p.IsActive {
			plans = append(plans, p)
		}
	}
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].Price.LessThan(plans[j].Price)
	})
	return plans, nil
}

func (s *InMemoryPlanStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = make(map[string]*plan.Plan)
}
