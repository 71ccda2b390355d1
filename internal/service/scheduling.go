package service

import (
	"context"
	"time"

	"github.com/laundrycare/lce/internal/domain/pickup"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/types"
)

// DefaultRecurringOccurrences is how many pickups a recurring schedule
// creates when the caller does not say otherwise.
const DefaultRecurringOccurrences = 4

// ScheduleRequest carries the caller-supplied fields shared by every
// scheduling variant.
type ScheduleRequest struct {
	UserID    string
	Zone      string
	OrderType types.OrderType
	Notes     string
}

func (r ScheduleRequest) Validate() error {
	if r.UserID == "" {
		return ierr.NewError("user_id is required").
			WithHint("A pickup must belong to a user").
			Mark(ierr.ErrValidation)
	}
	if err := r.OrderType.Validate(); err != nil {
		return err
	}
	return nil
}

// SchedulingService turns scheduling requests into pickup records using the
// calendar resolver.
type SchedulingService interface {
	// ScheduleASAP books the earliest available pickup date.
	ScheduleASAP(ctx context.Context, req ScheduleRequest) (*pickup.Pickup, error)

	// ScheduleFuture books the requested date, rejecting dates the
	// calendar rules out.
	ScheduleFuture(ctx context.Context, requestedDate time.Time, req ScheduleRequest) (*pickup.Pickup, error)

	// ScheduleRecurring books a series of pickups spaced by the frequency,
	// each pushed forward to the next valid day. Returned in chronological
	// order.
	ScheduleRecurring(ctx context.Context, frequency types.RecurringFrequency, occurrences int, req ScheduleRequest) ([]*pickup.Pickup, error)
}

type schedulingService struct {
	ServiceParams
	calendar CalendarService
}

func NewSchedulingService(params ServiceParams, calendar CalendarService) SchedulingService {
	return &schedulingService{
		ServiceParams: params,
		calendar:      calendar,
	}
}

func (s *schedulingService) ScheduleASAP(ctx context.Context, req ScheduleRequest) (*pickup.Pickup, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}

	pickupDate, err := s.calendar.NextAvailablePickupDate(ctx)
	if err != nil {
		return nil, err
	}
	return s.createPickup(ctx, req, pickupDate, false, "")
}

func (s *schedulingService) ScheduleFuture(ctx context.Context, requestedDate time.Time, req ScheduleRequest) (*pickup.Pickup, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}

	valid, err := s.calendar.IsValidPickupDate(ctx, requestedDate)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ierr.NewError("requested pickup date is not available").
			WithHint("Pickups run on business days only, and same-day pickups close at the cutoff time").
			WithReportableDetails(map[string]any{
				"requested_date": requestedDate.Format("2006-01-02"),
			}).
			Mark(ierr.ErrInvalidDate)
	}
	return s.createPickup(ctx, req, types.BeginningOfDay(requestedDate), false, "")
}

func (s *schedulingService) ScheduleRecurring(ctx context.Context, frequency types.RecurringFrequency, occurrences int, req ScheduleRequest) ([]*pickup.Pickup, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	if err := frequency.Validate(); err != nil {
		return nil, err
	}
	if occurrences <= 0 {
		occurrences = DefaultRecurringOccurrences
	}

	first, err := s.calendar.NextAvailablePickupDate(ctx)
	if err != nil {
		return nil, err
	}

	pickups := make([]*pickup.Pickup, 0, occurrences)
	date := first
	for i := 0; i < occurrences; i++ {
		if i > 0 {
			date, err = s.nextRecurringDate(ctx, date, frequency)
			if err != nil {
				return nil, err
			}
		}
		p, err := s.createPickup(ctx, req, date, true, frequency)
		if err != nil {
			return nil, err
		}
		pickups = append(pickups, p)
	}
	return pickups, nil
}

// nextRecurringDate jumps forward by the frequency interval, then walks
// day-by-day until a valid pickup day is found.
func (s *schedulingService) nextRecurringDate(ctx context.Context, prev time.Time, frequency types.RecurringFrequency) (time.Time, error) {
	candidate := prev.AddDate(0, 0, frequency.IntervalDays())

	maxAttempts := s.Config.Scheduling.MaxAttempts
	for attempt := 0; attempt < maxAttempts; attempt++ {
		valid, err := s.calendar.IsValidPickupDate(ctx, candidate)
		if err != nil {
			return time.Time{}, err
		}
		if valid {
			return candidate, nil
		}
		candidate = candidate.AddDate(0, 0, 1)
	}
	return time.Time{}, ierr.NewError("no available recurring pickup date").
		WithHintf("No pickup date is available in the next %d days", maxAttempts).
		Mark(ierr.ErrScheduling)
}

func (s *schedulingService) validateRequest(ctx context.Context, req ScheduleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.Zone == "" {
		return nil
	}
	serviceable, err := s.ZoneRepo.IsServiceable(ctx, req.Zone)
	if err != nil {
		return err
	}
	if !serviceable {
		return ierr.NewError("pickup zone is not serviceable").
			WithHintf("We do not currently serve zone %s", req.Zone).
			WithReportableDetails(map[string]any{
				"zone": req.Zone,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (s *schedulingService) createPickup(ctx context.Context, req ScheduleRequest, pickupDate time.Time, recurring bool, frequency types.RecurringFrequency) (*pickup.Pickup, error) {
	deliveryDate, err := s.calendar.DeliveryDate(ctx, pickupDate)
	if err != nil {
		return nil, err
	}

	p := &pickup.Pickup{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PICKUP),
		UserID:             req.UserID,
		OrderType:          req.OrderType,
		PickupDate:         pickupDate,
		DeliveryDate:       deliveryDate,
		PickupZone:         req.Zone,
		PickupStatus:       types.PickupStatusScheduled,
		IsRecurring:        recurring,
		RecurringFrequency: frequency,
		Notes:              req.Notes,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	if err := s.PickupRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("scheduled pickup",
		"pickup_id", p.ID,
		"user_id", p.UserID,
		"pickup_date", pickupDate.Format("2006-01-02"),
		"delivery_date", deliveryDate.Format("2006-01-02"),
		"recurring", recurring,
	)
	return p, nil
}
