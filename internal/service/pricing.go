package service

import (
	"context"

	"github.com/laundrycare/lce/internal/domain/pricecatalog"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/shopspring/decimal"
)

// ServiceTypeWashFold is the catalog key for the weighed wash & fold rate.
const ServiceTypeWashFold = "wash_fold"

// OrderItem is one itemized dry-clean or heavy-duty entry on a quote.
type OrderItem struct {
	ItemType string `json:"item_type"`
	Quantity int    `json:"quantity"`
}

// PricedItem is an order item with its resolved catalog price.
type PricedItem struct {
	ItemType  string          `json:"item_type"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// PPOPriceBreakdown is the full pay-per-order quote. Total always equals
// WashFoldCharge + DCCharge + HDCharge + PickupFee + ServiceFee.
type PPOPriceBreakdown struct {
	WeightLbs        decimal.Decimal `json:"weight_lbs"`
	RatePerLb        decimal.Decimal `json:"rate_per_lb"`
	WashFoldSubtotal decimal.Decimal `json:"wash_fold_subtotal"`
	WashFoldCharge   decimal.Decimal `json:"wash_fold_charge"`
	MinimumApplied   bool            `json:"minimum_applied"`

	DCItems  []PricedItem    `json:"dc_items,omitempty"`
	HDItems  []PricedItem    `json:"hd_items,omitempty"`
	DCCharge decimal.Decimal `json:"dc_charge"`
	HDCharge decimal.Decimal `json:"hd_charge"`

	Subtotal   decimal.Decimal `json:"subtotal"`
	PickupFee  decimal.Decimal `json:"pickup_fee"`
	ServiceFee decimal.Decimal `json:"service_fee"`
	Total      decimal.Decimal `json:"total"`
}

// PricingService computes pay-per-order quotes from weight and itemized
// services.
type PricingService interface {
	CalculatePPOPrice(ctx context.Context, weightLbs decimal.Decimal, dcItems, hdItems []OrderItem) (*PPOPriceBreakdown, error)
}

type pricingService struct {
	ServiceParams
}

func NewPricingService(params ServiceParams) PricingService {
	return &pricingService{ServiceParams: params}
}

func (s *pricingService) CalculatePPOPrice(ctx context.Context, weightLbs decimal.Decimal, dcItems, hdItems []OrderItem) (*PPOPriceBreakdown, error) {
	if weightLbs.IsNegative() {
		return nil, ierr.NewError("weight must be non negative").
			WithHint("Order weight cannot be negative").
			WithReportableDetails(map[string]any{
				"weight_lbs": weightLbs,
			}).
			Mark(ierr.ErrValidation)
	}

	rate, minimum, err := s.resolveWashFoldRate(ctx)
	if err != nil {
		return nil, err
	}

	washFoldSubtotal := weightLbs.Mul(rate)
	washFoldCharge := washFoldSubtotal
	minimumApplied := false
	if washFoldCharge.LessThan(minimum) {
		washFoldCharge = minimum
		minimumApplied = true
	}

	dcPriced, dcCharge, err := s.priceItems(ctx, dcItems, pricecatalog.ServiceCategoryDryClean)
	if err != nil {
		return nil, err
	}
	hdPriced, hdCharge, err := s.priceItems(ctx, hdItems, pricecatalog.ServiceCategoryHeavyDuty)
	if err != nil {
		return nil, err
	}

	pickupFee := decimal.NewFromFloat(s.Config.Billing.PickupFee)
	serviceFee := decimal.NewFromFloat(s.Config.Billing.ServiceFee)

	subtotal := washFoldCharge.Add(dcCharge).Add(hdCharge)
	return &PPOPriceBreakdown{
		WeightLbs:        weightLbs,
		RatePerLb:        rate,
		WashFoldSubtotal: washFoldSubtotal,
		WashFoldCharge:   washFoldCharge,
		MinimumApplied:   minimumApplied,
		DCItems:          dcPriced,
		HDItems:          hdPriced,
		DCCharge:         dcCharge,
		HDCharge:         hdCharge,
		Subtotal:         subtotal,
		PickupFee:        pickupFee,
		ServiceFee:       serviceFee,
		Total:            subtotal.Add(pickupFee).Add(serviceFee),
	}, nil
}

// resolveWashFoldRate prefers the active catalog row and falls back to the
// configured defaults when the catalog has none.
func (s *pricingService) resolveWashFoldRate(ctx context.Context) (rate, minimum decimal.Decimal, err error) {
	rate = decimal.NewFromFloat(s.Config.Billing.PPORatePerLb)
	minimum = decimal.NewFromFloat(s.Config.Billing.PPOMinimum)

	price, err := s.PriceCatalogRepo.GetActivePrice(ctx, ServiceTypeWashFold)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if price != nil {
		rate = price.RatePerLb
		if price.MinimumCharge != nil {
			minimum = *price.MinimumCharge
		}
	}
	return rate, minimum, nil
}

// priceItems resolves per-item prices from the price list. An item type
// with no catalog row prices as zero rather than failing the quote.
func (s *pricingService) priceItems(ctx context.Context, items []OrderItem, category pricecatalog.ServiceCategory) ([]PricedItem, decimal.Decimal, error) {
	priced := make([]PricedItem, 0, len(items))
	charge := decimal.Zero

	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}

		unitPrice := decimal.Zero
		itemName := item.ItemType
		row, err := s.PriceCatalogRepo.GetPriceListItem(ctx, item.ItemType, category)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if row != nil {
			unitPrice = row.Price
			itemName = row.ItemName
		} else {
			s.Logger.Warnw("unknown price list item, pricing as zero",
				"item_type", item.ItemType,
				"service_category", category,
			)
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		total := unitPrice.Mul(qty)
		priced = append(priced, PricedItem{
			ItemType:  item.ItemType,
			ItemName:  itemName,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Total:     total,
		})
		charge = charge.Add(total)
	}
	return priced, charge, nil
}
