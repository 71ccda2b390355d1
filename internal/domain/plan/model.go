package plan

import (
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
)

// Plan is an immutable subscription catalog entry. Business logic never
// mutates plans; catalog management owns their lifecycle.
type Plan struct {
	ID                string             `gorm:"column:id" json:"id"`
	Name              string             `gorm:"column:name" json:"name"`
	BillingCycle      types.BillingCycle `gorm:"column:billing_cycle" json:"billing_cycle"`
	BagsPerMonth      int                `gorm:"column:bags_per_month" json:"bags_per_month"`
	Price             decimal.Decimal    `gorm:"column:price" json:"price"`
	BagOverageRate    decimal.Decimal    `gorm:"column:bag_overage_rate" json:"bag_overage_rate"`
	PricePerLbOverage decimal.Decimal    `gorm:"column:price_per_lb_overage" json:"price_per_lb_overage"`
	IsActive          bool               `gorm:"column:is_active" json:"is_active"`

	types.BaseModel
}

func (p *Plan) TableName() string {
	return "lce_subscription_plans"
}

func (p *Plan) Validate() error {
	if err := p.BillingCycle.Validate(); err != nil {
		return err
	}
	if p.BagsPerMonth < 0 {
		return ierr.NewError("bags_per_month must be non negative").
			WithHint("Plan bag quota cannot be negative").
			WithReportableDetails(map[string]any{
				"plan_id":        p.ID,
				"bags_per_month": p.BagsPerMonth,
			}).
			Mark(ierr.ErrValidation)
	}
	if p.Price.IsNegative() {
		return ierr.NewError("price must be non negative").
			WithHint("Plan price cannot be negative").
			WithReportableDetails(map[string]any{
				"plan_id": p.ID,
				"price":   p.Price,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DailyRate returns the proration rate using the fixed 30/365 divisors.
func (p *Plan) DailyRate() decimal.Decimal {
	return p.Price.Div(decimal.NewFromInt(int64(p.BillingCycle.CycleDays())))
}
