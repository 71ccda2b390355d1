package holiday

import (
	"context"
	"time"
)

// Repository defines the interface for holiday lookups
type Repository interface {
	Create(ctx context.Context, holiday *Holiday) error

	// IsHoliday reports whether the given calendar day is an active holiday.
	IsHoliday(ctx context.Context, date time.Time) (bool, error)

	// ListUpcoming returns the next active holidays on or after the given
	// day, soonest first, capped at limit.
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*Holiday, error)
}
