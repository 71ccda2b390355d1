package repository

import (
	"context"
	"errors"

	domainCatalog "github.com/laundrycare/lce/internal/domain/pricecatalog"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
	"gorm.io/gorm"
)

type priceCatalogRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewPriceCatalogRepository(client postgres.IClient, logger *logger.Logger) domainCatalog.Repository {
	return &priceCatalogRepository{
		client: client,
		logger: logger,
	}
}

func (r *priceCatalogRepository) CreatePrice(ctx context.Context, p *domainCatalog.Price) error {
	if err := r.client.Querier(ctx).Create(p).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create price").
			WithReportableDetails(map[string]any{
				"service_type": p.ServiceType,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *priceCatalogRepository) CreatePriceListItem(ctx context.Context, item *domainCatalog.PriceListItem) error {
	if err := r.client.Querier(ctx).Create(item).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create price list item").
			WithReportableDetails(map[string]any{
				"item_type":        item.ItemType,
				"service_category": item.ServiceCategory,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *priceCatalogRepository) GetActivePrice(ctx context.Context, serviceType string) (*domainCatalog.Price, error) {
	var p domainCatalog.Price
	err := r.client.Querier(ctx).
		Where("service_type = ? AND is_active = ? AND status = ?",
			serviceType, true, types.StatusPublished).
		Order("created_at DESC").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query price").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *priceCatalogRepository) GetPriceListItem(ctx context.Context, itemType string, category domainCatalog.ServiceCategory) (*domainCatalog.PriceListItem, error) {
	var item domainCatalog.PriceListItem
	err := r.client.Querier(ctx).
		Where("item_type = ? AND service_category = ? AND is_active = ? AND status = ?",
			itemType, category, true, types.StatusPublished).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query price list item").
			Mark(ierr.ErrDatabase)
	}
	return &item, nil
}
