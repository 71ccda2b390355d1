package service

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/laundrycare/lce/internal/domain/holiday"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/types"
)

const (
	holidayCacheTTL     = 15 * time.Minute
	holidayCacheCleanup = 30 * time.Minute
)

// CalendarService resolves pickup and delivery dates against business-day,
// holiday and cutoff-time rules.
type CalendarService interface {
	// IsValidPickupDate reports whether the date can carry a pickup: a
	// weekday, not an active holiday, not in the past, and not today once
	// the cutoff time has passed.
	IsValidPickupDate(ctx context.Context, date time.Time) (bool, error)

	// NextAvailablePickupDate finds the earliest valid pickup date starting
	// from today (or tomorrow if past cutoff), bounded by the configured
	// attempt limit.
	NextAvailablePickupDate(ctx context.Context) (time.Time, error)

	// DeliveryDate is pickupDate + 2 calendar days, pushed forward past
	// weekends and holidays.
	DeliveryDate(ctx context.Context, pickupDate time.Time) (time.Time, error)

	// UpcomingHolidays returns the next active holidays, soonest first.
	UpcomingHolidays(ctx context.Context, limit int) ([]*holiday.Holiday, error)
}

type calendarService struct {
	ServiceParams
	holidayCache *gocache.Cache
}

func NewCalendarService(params ServiceParams) CalendarService {
	return &calendarService{
		ServiceParams: params,
		holidayCache:  gocache.New(holidayCacheTTL, holidayCacheCleanup),
	}
}

func (s *calendarService) IsValidPickupDate(ctx context.Context, date time.Time) (bool, error) {
	now := s.Clock.Now()
	day := types.BeginningOfDay(date)
	today := types.BeginningOfDay(now)

	if day.Before(today) {
		return false, nil
	}
	if isWeekend(day) {
		return false, nil
	}
	isHol, err := s.isHoliday(ctx, day)
	if err != nil {
		return false, err
	}
	if isHol {
		return false, nil
	}
	if day.Equal(today) {
		cutoff, err := s.cutoffFor(today)
		if err != nil {
			return false, err
		}
		if !now.Before(cutoff) {
			return false, nil
		}
	}
	return true, nil
}

func (s *calendarService) NextAvailablePickupDate(ctx context.Context) (time.Time, error) {
	now := s.Clock.Now()
	candidate := types.BeginningOfDay(now)

	cutoff, err := s.cutoffFor(candidate)
	if err != nil {
		return time.Time{}, err
	}
	if !now.Before(cutoff) {
		candidate = candidate.AddDate(0, 0, 1)
	}

	maxAttempts := s.Config.Scheduling.MaxAttempts
	for attempt := 0; attempt < maxAttempts; attempt++ {
		valid, err := s.IsValidPickupDate(ctx, candidate)
		if err != nil {
			return time.Time{}, err
		}
		if valid {
			return candidate, nil
		}
		candidate = candidate.AddDate(0, 0, 1)
	}

	return time.Time{}, ierr.NewError("no available pickup date").
		WithHintf("No pickup date is available in the next %d days", maxAttempts).
		Mark(ierr.ErrScheduling)
}

func (s *calendarService) DeliveryDate(ctx context.Context, pickupDate time.Time) (time.Time, error) {
	candidate := types.BeginningOfDay(pickupDate).AddDate(0, 0, 2)

	maxAttempts := s.Config.Scheduling.MaxAttempts
	for attempt := 0; attempt < maxAttempts; attempt++ {
		// Delivery dates are always beyond today, so only the weekday and
		// holiday rules apply.
		if !isWeekend(candidate) {
			isHol, err := s.isHoliday(ctx, candidate)
			if err != nil {
				return time.Time{}, err
			}
			if !isHol {
				return candidate, nil
			}
		}
		candidate = candidate.AddDate(0, 0, 1)
	}

	return time.Time{}, ierr.NewError("no available delivery date").
		WithHintf("No delivery date is available in the next %d days", maxAttempts).
		Mark(ierr.ErrScheduling)
}

func (s *calendarService) UpcomingHolidays(ctx context.Context, limit int) ([]*holiday.Holiday, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.HolidayRepo.ListUpcoming(ctx, s.Clock.Now(), limit)
}

func (s *calendarService) isHoliday(ctx context.Context, day time.Time) (bool, error) {
	key := day.Format("2006-01-02")
	if cached, found := s.holidayCache.Get(key); found {
		return cached.(bool), nil
	}

	isHol, err := s.HolidayRepo.IsHoliday(ctx, day)
	if err != nil {
		return false, err
	}
	s.holidayCache.Set(key, isHol, gocache.DefaultExpiration)
	return isHol, nil
}

// cutoffFor resolves the configured HH:MM cutoff on the given calendar day.
func (s *calendarService) cutoffFor(day time.Time) (time.Time, error) {
	parsed, err := time.Parse("15:04", s.Config.Scheduling.CutoffTime)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHint(fmt.Sprintf("Invalid scheduling cutoff time %q", s.Config.Scheduling.CutoffTime)).
			Mark(ierr.ErrValidation)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
