package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/laundrycare/lce/internal/domain/holiday"
	"github.com/laundrycare/lce/internal/types"
)

var _ holiday.Repository = (*InMemoryHolidayStore)(nil)

// InMemoryHolidayStore is an in-memory implementation of holiday.Repository
type InMemoryHolidayStore struct {
	mu       sync.RWMutex
	holidays map[string]*holiday.Holiday
}

func NewInMemoryHolidayStore() *InMemoryHolidayStore {
	return &InMemoryHolidayStore{
		holidays: make(map[string]*holiday.Holiday),
	}
}

func (s *InMemoryHolidayStore) Create(ctx context.Context, h *holiday.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays[h.ID] = h
	return nil
}

func (s *InMemoryHolidayStore) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.holidays {
		if h.IsActive && types.SameDay(h.Date, date) {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryHolidayStore) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*holiday.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day := types.BeginningOfDay(from)
	var holidays []*holiday.Holiday
	for _, h := range s.holidays {
		if h.IsActive && !types.BeginningOfDay(h.Date).Before(day) {
			holidays = append(holidays, h)
		}
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	if len(holidays) > limit {
		holidays = holidays[:limit]
	}
	return holidays, nil
}

func (s *InMemoryHolidayStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays = make(map[string]*holiday.Holiday)
}
