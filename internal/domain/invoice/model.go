package invoice

import (
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents the invoice domain model.
//
// Total always equals the sum of line totals; credits are tracked in
// CreditsApplied rather than subtracted from Total, so the payable amount
// is FinalAmount().
type Invoice struct {
	ID       string  `gorm:"column:id" json:"id"`
	UserID   string  `gorm:"column:user_id" json:"user_id"`
	PickupID *string `gorm:"column:pickup_id" json:"pickup_id,omitempty"`

	InvoiceNumber  string              `gorm:"column:invoice_number" json:"invoice_number"`
	OrderType      types.OrderType     `gorm:"column:order_type" json:"order_type"`
	Subtotal       decimal.Decimal     `gorm:"column:subtotal" json:"subtotal"`
	CreditsApplied decimal.Decimal     `gorm:"column:credits_applied" json:"credits_applied"`
	Total          decimal.Decimal     `gorm:"column:total" json:"total"`
	InvoiceStatus  types.InvoiceStatus `gorm:"column:invoice_status" json:"invoice_status"`

	Lines []*InvoiceLine `json:"lines,omitempty" gorm:"-"`

	types.BaseModel
}

func (i *Invoice) TableName() string {
	return "lce_user_invoice"
}

// FinalAmount is the residual payable after credits, floored at zero.
func (i *Invoice) FinalAmount() decimal.Decimal {
	final := i.Total.Sub(i.CreditsApplied)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

func (i *Invoice) Validate() error {
	if i.Subtotal.IsNegative() || i.Total.IsNegative() {
		return ierr.NewError("invoice amounts must be non negative").
			WithHint("Invoice totals cannot be negative").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"subtotal":   i.Subtotal,
				"total":      i.Total,
			}).
			Mark(ierr.ErrValidation)
	}
	if i.CreditsApplied.IsNegative() || i.CreditsApplied.GreaterThan(i.Total) {
		return ierr.NewError("credits_applied out of range").
			WithHint("Applied credits must stay between zero and the invoice total").
			WithReportableDetails(map[string]any{
				"invoice_id":      i.ID,
				"credits_applied": i.CreditsApplied,
				"total":           i.Total,
			}).
			Mark(ierr.ErrValidation)
	}

	lineSum := decimal.Zero
	for _, line := range i.Lines {
		if err := line.Validate(); err != nil {
			return err
		}
		lineSum = lineSum.Add(line.Total)
	}
	if len(i.Lines) > 0 && !lineSum.Equal(i.Total) {
		return ierr.NewError("invoice total does not match line totals").
			WithHint("Invoice total must equal the sum of its line totals").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"total":      i.Total,
				"line_sum":   lineSum,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}
