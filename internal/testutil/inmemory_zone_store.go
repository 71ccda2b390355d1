package testutil

import (
	"context"
	"sync"

	"github.com/laundrycare/lce/internal/domain/zone"
)

var _ zone.Repository = (*InMemoryZoneStore)(nil)

// InMemoryZoneStore is an in-memory implementation of zone.Repository
type InMemoryZoneStore struct {
	mu    sync.RWMutex
	zones map[string]*zone.PickupZone
}

func NewInMemoryZoneStore() *InMemoryZoneStore {
	return &InMemoryZoneStore{
		zones: make(map[string]*zone.PickupZone),
	}
}

func (s *InMemoryZoneStore) Create(ctx context.Context, z *zone.PickupZone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones[z.ID] = z
	return nil
}

func (s *InMemoryZoneStore) IsServiceable(ctx context.Context, zoneCode string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, z := range s.zones {
		if z.ZoneCode == zoneCode && z.IsActive {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryZoneStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones = make(map[string]*zone.PickupZone)
}
