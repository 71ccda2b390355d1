package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/laundrycare/lce/internal/domain/pickup"
	ierr "github.com/laundrycare/lce/internal/errors"
)

var _ pickup.Repository = (*InMemoryPickupStore)(nil)

// InMemoryPickupStore is an in-memory implementation of pickup.Repository
type InMemoryPickupStore struct {
	mu      sync.RWMutex
	pickups map[string]*pickup.Pickup
}

func NewInMemoryPickupStore() *InMemoryPickupStore {
	return &InMemoryPickupStore{
		pickups: make(map[string]*pickup.Pickup),
	}
}

func (s *InMemoryPickupStore) Create(ctx context.Context, p *pickup.Pickup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pickups[p.ID] = p
	return nil
}

func (s *InMemoryPickupStore) Get(ctx context.Context, id string) (*pickup.Pickup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pickups[id]
	if !ok {
		return nil, ierr.NewError("pickup not found").
			WithHint("Pickup not found").
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (s *InMemoryPickupStore) Update(ctx context.Context, p *pickup.Pickup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pickups[p.ID]; !ok {
		return ierr.NewError("pickup not found").
			Mark(ierr.ErrNotFound)
	}
	s.pickups[p.ID] = p
	return nil
}

func (s *InMemoryPickupStore) ListByUser(ctx context.Context, userID string) ([]*pickup.Pickup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var pickups []*pickup.Pickup
	for _, p := range s.pickups {
		if p.UserID == userID {
			pickups = append(pickups, p)
		}
	}
	sort.Slice(pickups, func(i, j int) bool {
		return pickups[i].PickupDate.After(pickups[j].PickupDate)
	})
	return pickups, nil
}

func (s *InMemoryPickupStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pickups = make(map[string]*pickup.Pickup)
}
