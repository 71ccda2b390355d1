package credit

import (
	"time"

	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
)

// Credit is a grant on a user's credit balance. Credits are never deleted:
// consumption decrements RemainingAmount monotonically toward zero, and an
// expired credit simply stops matching availability queries.
type Credit struct {
	ID     string `gorm:"column:id" json:"id"`
	UserID string `gorm:"column:user_id" json:"user_id"`

	Type types.CreditType `gorm:"column:type" json:"type"`

	// Amount is the granted amount; RemainingAmount is what is left to
	// spend, 0 <= RemainingAmount <= Amount at all times.
	Amount          decimal.Decimal `gorm:"column:amount" json:"amount"`
	RemainingAmount decimal.Decimal `gorm:"column:remaining_amount" json:"remaining_amount"`

	Description string     `gorm:"column:description" json:"description,omitempty"`
	ExpiresAt   *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`

	types.BaseModel
}

func (c *Credit) TableName() string {
	return "lce_user_credits"
}

// IsAvailable reports whether the credit can still be spent as of now.
func (c *Credit) IsAvailable(now time.Time) bool {
	if !c.RemainingAmount.IsPositive() {
		return false
	}
	if c.ExpiresAt != nil && !c.ExpiresAt.After(now) {
		return false
	}
	return true
}

// Use consumes up to amount from the credit and returns how much was
// actually drawn.
func (c *Credit) Use(amount decimal.Decimal) decimal.Decimal {
	drawn := decimal.Min(c.RemainingAmount, amount)
	c.RemainingAmount = c.RemainingAmount.Sub(drawn)
	return drawn
}

func (c *Credit) Validate() error {
	if err := c.Type.Validate(); err != nil {
		return err
	}
	if c.Amount.IsNegative() {
		return ierr.NewError("amount must be non negative").
			WithHint("Credit amount cannot be negative").
			WithReportableDetails(map[string]any{
				"credit_id": c.ID,
				"amount":    c.Amount,
			}).
			Mark(ierr.ErrValidation)
	}
	if c.RemainingAmount.IsNegative() || c.RemainingAmount.GreaterThan(c.Amount) {
		return ierr.NewError("remaining_amount out of range").
			WithHint("Remaining credit must stay between zero and the granted amount").
			WithReportableDetails(map[string]any{
				"credit_id":        c.ID,
				"amount":           c.Amount,
				"remaining_amount": c.RemainingAmount,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
