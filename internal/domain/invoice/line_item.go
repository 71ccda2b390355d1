package invoice

import (
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
)

// InvoiceLine is a single billed item on an invoice. Immutable once created.
type InvoiceLine struct {
	ID        string `gorm:"column:id" json:"id"`
	InvoiceID string `gorm:"column:invoice_id" json:"invoice_id"`

	LineType    types.InvoiceLineType `gorm:"column:line_type" json:"line_type"`
	Description string                `gorm:"column:description" json:"description"`
	Quantity    decimal.Decimal       `gorm:"column:quantity" json:"quantity"`
	UnitPrice   decimal.Decimal       `gorm:"column:unit_price" json:"unit_price"`
	Total       decimal.Decimal       `gorm:"column:total" json:"total"`

	types.BaseModel
}

func (l *InvoiceLine) TableName() string {
	return "lce_user_invoice_line"
}

func (l *InvoiceLine) Validate() error {
	if !l.Total.Equal(l.Quantity.Mul(l.UnitPrice)) {
		return ierr.NewError("line total does not match quantity * unit_price").
			WithHint("Invoice line totals must be quantity times unit price").
			WithReportableDetails(map[string]any{
				"line_id":    l.ID,
				"quantity":   l.Quantity,
				"unit_price": l.UnitPrice,
				"total":      l.Total,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
