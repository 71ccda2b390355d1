package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/laundrycare/lce/internal/domain/subscription"
	ierr "github.com/laundrycare/lce/internal/errors"
)

var _ subscription.Repository = (*InMemorySubscriptionStore)(nil)

// InMemorySubscriptionStore is an in-memory implementation of
// subscription.Repository
type InMemorySubscriptionStore struct {
	mu   sync.RWMutex
	subs map[string]*subscription.Subscription
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		subs: make(map[string]*subscription.Subscription),
	}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.ID] = sub
	return nil
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[id]
	if !ok {
		return nil, ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			Mark(ierr.ErrNotFound)
	}
	return sub, nil
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[sub.ID]; !ok {
		return ierr.NewError("subscription not found").
			Mark(ierr.ErrNotFound)
	}
	s.subs[sub.ID] = sub
	return nil
}

func (s *InMemorySubscriptionStore) ListByUser(ctx context.Context, userID string) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var subs []*subscription.Subscription
	for _, sub := range s.subs {
		if sub.UserID == userID {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	return subs, nil
}

func (s *InMemorySubscriptionStore) ListDueForRenewal(ctx context.Context, asOf time.Time) ([]*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var subs []*subscription.Subscription
	for _, sub := range s.subs {
		if sub.IsActive() && !sub.NextBillingDate.After(asOf) {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].NextBillingDate.Before(subs[j].NextBillingDate)
	})
	return subs, nil
}

func (s *InMemorySubscriptionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = make(map[string]*subscription.Subscription)
}

var _ subscription.BagUsageRepository = (*InMemoryBagUsageStore)(nil)

// InMemoryBagUsageStore is an in-memory implementation of
// subscription.BagUsageRepository
type InMemoryBagUsageStore struct {
	mu     sync.RWMutex
	usages map[string]*subscription.BagUsage
}

func NewInMemoryBagUsageStore() *InMemoryBagUsageStore {
	return &InMemoryBagUsageStore{
		usages: make(map[string]*subscription.BagUsage),
	}
}

func (s *InMemoryBagUsageStore) Create(ctx context.Context, usage *subscription.BagUsage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usages[usage.ID] = usage
	return nil
}

func (s *InMemoryBagUsageStore) ListBySubscription(ctx context.Context, subscriptionID string) ([]*subscription.BagUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var usages []*subscription.BagUsage
	for _, usage := range s.usages {
		if usage.SubscriptionID == subscriptionID {
			usages = append(usages, usage)
		}
	}
	sort.Slice(usages, func(i, j int) bool {
		return usages[i].CreatedAt.After(usages[j].CreatedAt)
	})
	return usages, nil
}

func (s *InMemoryBagUsageStore) GetByPickup(ctx context.Context, pickupID string) (*subscription.BagUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, usage := range s.usages {
		if usage.PickupID == pickupID {
			return usage, nil
		}
	}
	return nil, nil
}

func (s *InMemoryBagUsageStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usages = make(map[string]*subscription.BagUsage)
}
