package subscription

import (
	"time"

	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/types"
)

// Subscription belongs to one user and one plan and owns the bag bank.
//
// Exactly one of PausedAt/CancelledAt is set at a time, and only when the
// status matches. BankedBags accumulates unused quota across renewals with
// no cap.
type Subscription struct {
	ID     string `gorm:"column:id" json:"id"`
	UserID string `gorm:"column:user_id" json:"user_id"`
	PlanID string `gorm:"column:plan_id" json:"plan_id"`

	SubscriptionStatus types.SubscriptionStatus `gorm:"column:subscription_status" json:"subscription_status"`

	// StartDate is the start date of the subscription
	StartDate time.Time `gorm:"column:start_date" json:"start_date"`

	// NextBillingDate is when the next renewal charge is due. Resume pushes
	// it forward by the number of days the subscription was paused.
	NextBillingDate time.Time `gorm:"column:next_billing_date" json:"next_billing_date"`

	// BankedBags is the accumulated unused bag quota. After a renewal it
	// already includes the current cycle's allocation.
	BankedBags int `gorm:"column:banked_bags" json:"banked_bags"`

	PausedAt    *time.Time `gorm:"column:paused_at" json:"paused_at,omitempty"`
	CancelledAt *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	types.BaseModel
}

func (s *Subscription) TableName() string {
	return "lce_user_subscriptions"
}

func (s *Subscription) IsActive() bool {
	return s.SubscriptionStatus == types.SubscriptionStatusActive
}

func (s *Subscription) IsPaused() bool {
	return s.SubscriptionStatus == types.SubscriptionStatusPaused
}

func (s *Subscription) IsCancelled() bool {
	return s.SubscriptionStatus == types.SubscriptionStatusCancelled
}

// DaysSinceStart returns whole days elapsed since the subscription started.
func (s *Subscription) DaysSinceStart(now time.Time) int {
	return types.DaysBetween(s.StartDate, now)
}

func (s *Subscription) Validate() error {
	if err := s.SubscriptionStatus.Validate(); err != nil {
		return err
	}
	if s.BankedBags < 0 {
		return ierr.NewError("banked_bags must be non negative").
			WithHint("Bag bank cannot go negative").
			WithReportableDetails(map[string]any{
				"subscription_id": s.ID,
				"banked_bags":     s.BankedBags,
			}).
			Mark(ierr.ErrValidation)
	}
	if s.PausedAt != nil && s.SubscriptionStatus != types.SubscriptionStatusPaused {
		return ierr.NewError("paused_at set on non-paused subscription").
			WithHint("Subscription pause marker does not match its status").
			WithReportableDetails(map[string]any{
				"subscription_id": s.ID,
				"status":          s.SubscriptionStatus,
			}).
			Mark(ierr.ErrValidation)
	}
	if s.CancelledAt != nil && s.SubscriptionStatus != types.SubscriptionStatusCancelled {
		return ierr.NewError("cancelled_at set on non-cancelled subscription").
			WithHint("Subscription cancel marker does not match its status").
			WithReportableDetails(map[string]any{
				"subscription_id": s.ID,
				"status":          s.SubscriptionStatus,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
