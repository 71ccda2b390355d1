package pricecatalog

import "context"

// Repository defines the interface for price catalog lookups
type Repository interface {
	CreatePrice(ctx context.Context, price *Price) error
	CreatePriceListItem(ctx context.Context, item *PriceListItem) error

	// GetActivePrice returns the active base price for a service type,
	// or nil when the catalog has none.
	GetActivePrice(ctx context.Context, serviceType string) (*Price, error)

	// GetPriceListItem returns the price list row for an item type within
	// a service category, or nil when no row matches.
	GetPriceListItem(ctx context.Context, itemType string, category ServiceCategory) (*PriceListItem, error)
}
