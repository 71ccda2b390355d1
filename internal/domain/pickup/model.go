package pickup

import (
	"time"

	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
)

// Pickup is one scheduled collection. A pickup has at most one invoice and,
// for subscription orders, at most one bag usage settlement.
type Pickup struct {
	ID     string `gorm:"column:id" json:"id"`
	UserID string `gorm:"column:user_id" json:"user_id"`

	OrderType    types.OrderType    `gorm:"column:order_type" json:"order_type"`
	PickupDate   time.Time          `gorm:"column:pickup_date" json:"pickup_date"`
	DeliveryDate time.Time          `gorm:"column:delivery_date" json:"delivery_date"`
	PickupZone   string             `gorm:"column:pickup_zone" json:"pickup_zone"`
	WeightLbs    *decimal.Decimal   `gorm:"column:weight_lbs" json:"weight_lbs,omitempty"`
	PickupStatus types.PickupStatus `gorm:"column:pickup_status" json:"pickup_status"`

	IsRecurring        bool                     `gorm:"column:is_recurring" json:"is_recurring"`
	RecurringFrequency types.RecurringFrequency `gorm:"column:recurring_frequency" json:"recurring_frequency,omitempty"`

	Notes string `gorm:"column:notes" json:"notes,omitempty"`

	types.BaseModel
}

func (p *Pickup) TableName() string {
	return "lce_user_pickup"
}
