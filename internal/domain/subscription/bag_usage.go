package subscription

import (
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
)

// BagUsage records one pickup's settlement against a subscription's bag
// quota. Immutable after creation.
type BagUsage struct {
	ID             string          `gorm:"column:id" json:"id"`
	SubscriptionID string          `gorm:"column:subscription_id" json:"subscription_id"`
	PickupID       string          `gorm:"column:pickup_id" json:"pickup_id"`
	BagsUsed       int             `gorm:"column:bags_used" json:"bags_used"`
	ExtraBags      int             `gorm:"column:extra_bags" json:"extra_bags"`
	OverweightLbs  decimal.Decimal `gorm:"column:overweight_lbs" json:"overweight_lbs"`

	types.BaseModel
}

func (u *BagUsage) TableName() string {
	return "lce_subscription_bag_usage"
}
