package types

import (
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/samber/lo"
)

// SubscriptionStatus is the status of a subscription.
// Cancelled is terminal; active and paused alternate.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusActive,
		SubscriptionStatusPaused,
		SubscriptionStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Invalid subscription status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingCycle is the billing cycle of a subscription plan
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

func (c BillingCycle) String() string {
	return string(c)
}

func (c BillingCycle) Validate() error {
	allowed := []BillingCycle{BillingCycleMonthly, BillingCycleYearly}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid billing cycle").
			WithHint("Billing cycle must be monthly or yearly").
			WithReportableDetails(map[string]any{
				"billing_cycle":  c,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CycleDays returns the proration day count for a billing cycle.
// These are the fixed 30/365 divisors used for plan-switch proration, not
// calendar month lengths.
func (c BillingCycle) CycleDays() int {
	if c == BillingCycleYearly {
		return 365
	}
	return 30
}
