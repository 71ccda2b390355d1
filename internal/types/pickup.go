package types

import (
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/samber/lo"
)

// PickupStatus is the fulfillment status of a pickup
type PickupStatus string

const (
	PickupStatusScheduled PickupStatus = "scheduled"
	PickupStatusPickedUp  PickupStatus = "picked_up"
	PickupStatusDelivered PickupStatus = "delivered"
	PickupStatusCancelled PickupStatus = "cancelled"
)

func (s PickupStatus) String() string {
	return string(s)
}

// RecurringFrequency is the cadence of a recurring pickup series
type RecurringFrequency string

const (
	RecurringFrequencyWeekly   RecurringFrequency = "weekly"
	RecurringFrequencyBiweekly RecurringFrequency = "biweekly"
)

func (f RecurringFrequency) String() string {
	return string(f)
}

func (f RecurringFrequency) Validate() error {
	allowed := []RecurringFrequency{
		RecurringFrequencyWeekly,
		RecurringFrequencyBiweekly,
	}
	if !lo.Contains(allowed, f) {
		return ierr.NewError("invalid recurring frequency").
			WithHint("Recurring frequency must be weekly or biweekly").
			WithReportableDetails(map[string]any{
				"frequency":      f,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IntervalDays returns the day spacing between recurring occurrences.
func (f RecurringFrequency) IntervalDays() int {
	if f == RecurringFrequencyBiweekly {
		return 14
	}
	return 7
}
