package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/laundrycare/lce/internal/domain/credit"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/shopspring/decimal"
)

var _ credit.Repository = (*InMemoryCreditStore)(nil)

// InMemoryCreditStore is an in-memory implementation of credit.Repository
type InMemoryCreditStore struct {
	mu      sync.RWMutex
	credits map[string]*credit.Credit
}

func NewInMemoryCreditStore() *InMemoryCreditStore {
	return &InMemoryCreditStore{
		credits: make(map[string]*credit.Credit),
	}
}

func (s *InMemoryCreditStore) Create(ctx context.Context, c *credit.Credit) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credits[c.ID] = c
	return nil
}

func (s *InMemoryCreditStore) Get(ctx context.Context, id string) (*credit.Credit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.credits[id]
	if !ok {
		return nil, ierr.NewError("credit not found").
			WithHint("Credit not found").
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryCreditStore) Update(ctx context.Context, c *credit.Credit) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.credits[c.ID]; !ok {
		return ierr.NewError("credit not found").
			Mark(ierr.ErrNotFound)
	}
	s.credits[c.ID] = c
	return nil
}

func (s *InMemoryCreditStore) ListAvailable(ctx context.Context, userID string, now time.Time) ([]*credit.Credit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var credits []*credit.Credit
	for _, c := range s.credits {
		if c.UserID == userID && c.IsAvailable(now) {
			credits = append(credits, c)
		}
	}
	sort.Slice(credits, func(i, j int) bool {
		return credits[i].CreatedAt.Before(credits[j].CreatedAt)
	})
	return credits, nil
}

func (s *InMemoryCreditStore) ListAvailableForUpdate(ctx context.Context, userID string, now time.Time) ([]*credit.Credit, error) {
	// No row locking in memory; callers already hold the logical
	// transaction boundary.
	return s.ListAvailable(ctx, userID, now)
}

func (s *InMemoryCreditStore) SumAvailable(ctx context.Context, userID string, now time.Time) (decimal.Decimal, error) {
	credits, err := s.ListAvailable(ctx, userID, now)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, c := range credits {
		sum = sum.Add(c.RemainingAmount)
	}
	return sum, nil
}

func (s *InMemoryCreditStore) ListByUser(ctx context.Context, userID string) ([]*credit.Credit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var credits []*credit.Credit
	for _, c := range s.credits {
		if c.UserID == userID {
			credits = append(credits, c)
		}
	}
	sort.Slice(credits, func(i, j int) bool {
		return credits[i].CreatedAt.After(credits[j].CreatedAt)
	})
	return credits, nil
}

func (s *InMemoryCreditStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credits = make(map[string]*credit.Credit)
}
