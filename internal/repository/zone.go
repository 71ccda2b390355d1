package repository

import (
	"context"

	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"

	domainZone "github.com/laundrycare/lce/internal/domain/zone"
)

type zoneRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewZoneRepository(client postgres.IClient, logger *logger.Logger) domainZone.Repository {
	return &zoneRepository{
		client: client,
		logger: logger,
	}
}

func (r *zoneRepository) Create(ctx context.Context, z *domainZone.PickupZone) error {
	if err := r.client.Querier(ctx).Create(z).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create pickup zone").
			WithReportableDetails(map[string]any{
				"zone_code": z.ZoneCode,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *zoneRepository) IsServiceable(ctx context.Context, zoneCode string) (bool, error) {
	var count int64
	err := r.client.Querier(ctx).
		Model(&domainZone.PickupZone{}).
		Where("zone_code = ? AND is_active = ? AND status = ?",
			zoneCode, true, types.StatusPublished).
		Count(&count).Error
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check pickup zone").
			Mark(ierr.ErrDatabase)
	}
	return count > 0, nil
}
