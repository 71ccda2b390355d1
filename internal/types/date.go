package types

import (
	"time"

	ierr "github.com/laundrycare/lce/internal/errors"
)

// NextBillingDate advances a billing date by one cycle of the given billing
// cycle. It leverages clamped date math so that month-boundary issues
// (Jan 31 + 1 month) land on the last valid day instead of overflowing.
func NextBillingDate(start time.Time, cycle BillingCycle) (time.Time, error) {
	switch cycle {
	case BillingCycleMonthly:
		return AddClampedDate(start, 0, 1, 0), nil
	case BillingCycleYearly:
		return AddClampedDate(start, 1, 0, 0), nil
	default:
		return start, ierr.NewErrorf("invalid billing cycle: %s", cycle).
			WithHint("Billing cycle must be monthly or yearly").
			Mark(ierr.ErrValidation)
	}
}

// AddClampedDate adds years, months and days to t, clamping the day of month
// to the last valid day of the target month.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y + years
	newM := time.Month(int(m) + months)

	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	// Find the last valid day of the new month
	firstOfNextMonth := time.Date(newY, newM+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNextMonth.Add(-24 * time.Hour).Day()

	newD := d
	if newD > lastDay {
		newD = lastDay
	}

	return time.Date(newY, newM, newD, h, min, sec, t.Nanosecond(), t.Location()).AddDate(0, 0, days)
}

// DaysBetween returns the absolute number of whole days between two times.
func DaysBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}

// BeginningOfDay truncates t to midnight in its location.
func BeginningOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
