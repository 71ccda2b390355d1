package pricecatalog

import (
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
)

// Price is a per-pound base rate for a weighed service (wash & fold).
type Price struct {
	ID            string           `gorm:"column:id" json:"id"`
	ServiceType   string           `gorm:"column:service_type" json:"service_type"`
	RatePerLb     decimal.Decimal  `gorm:"column:rate_per_lb" json:"rate_per_lb"`
	MinimumCharge *decimal.Decimal `gorm:"column:minimum_charge" json:"minimum_charge,omitempty"`
	IsActive      bool             `gorm:"column:is_active" json:"is_active"`

	types.BaseModel
}

func (p *Price) TableName() string {
	return "lce_prices"
}

// ServiceCategory groups itemized price list entries.
type ServiceCategory string

const (
	ServiceCategoryDryClean  ServiceCategory = "DC"
	ServiceCategoryHeavyDuty ServiceCategory = "HD"
)

// PriceListItem is a per-item price for dry cleaning and heavy duty work.
// An item type with no matching row prices as zero; the pricing calculator
// deliberately does not treat a miss as an error.
type PriceListItem struct {
	ID              string          `gorm:"column:id" json:"id"`
	ItemType        string          `gorm:"column:item_type" json:"item_type"`
	ItemName        string          `gorm:"column:item_name" json:"item_name"`
	ServiceCategory ServiceCategory `gorm:"column:service_category" json:"service_category"`
	Price           decimal.Decimal `gorm:"column:price" json:"price"`
	IsActive        bool            `gorm:"column:is_active" json:"is_active"`

	types.BaseModel
}

func (p *PriceListItem) TableName() string {
	return "lce_prices_lists"
}
