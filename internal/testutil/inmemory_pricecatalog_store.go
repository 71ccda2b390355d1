package testutil

import (
	"context"
	"sync"

	"github.com/laundrycare/lce/internal/domain/pricecatalog"
)

var _ pricecatalog.Repository = (*InMemoryPriceCatalogStore)(nil)

// InMemoryPriceCatalogStore is an in-memory implementation of
// pricecatalog.Repository
type InMemoryPriceCatalogStore struct {
	mu     sync.RWMutex
	prices map[string]*pricecatalog.Price
	items  map[string]*pricecatalog.PriceListItem
}

func NewInMemoryPriceCatalogStore() *InMemoryPriceCatalogStore {
	return &InMemoryPriceCatalogStore{
		prices: make(map[string]*pricecatalog.Price),
		items:  make(map[string]*pricecatalog.PriceListItem),
	}
}

func (s *InMemoryPriceCatalogStore) CreatePrice(ctx context.Context, p *pricecatalog.Price) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[p.ID] = p
	return nil
}

func (s *InMemoryPriceCatalogStore) CreatePriceListItem(ctx context.Context, item *pricecatalog.PriceListItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
	return nil
}

func (s *InMemoryPriceCatalogStore) GetActivePrice(ctx context.Context, serviceType string) (*pricecatalog.Price, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.prices {
		if p.ServiceType == serviceType && p.IsActive {
			return p, nil
		}
	}
	return nil, nil
}

func (s *InMemoryPriceCatalogStore) GetPriceListItem(ctx context.Context, itemType string, category pricecatalog.ServiceCategory) (*pricecatalog.PriceListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ItemType == itemType && item.ServiceCategory == category && item.IsActive {
			return item, nil
		}
	}
	return nil, nil
}

func (s *InMemoryPriceCatalogStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices = make(map[string]*pricecatalog.Price)
	s.items = make(map[string]*pricecatalog.PriceListItem)
}
