package repository

import (
	"context"
	"errors"

	domainPickup "github.com/laundrycare/lce/internal/domain/pickup"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
	"gorm.io/gorm"
)

type pickupRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewPickupRepository(client postgres.IClient, logger *logger.Logger) domainPickup.Repository {
	return &pickupRepository{
		client: client,
		logger: logger,
	}
}

func (r *pickupRepository) Create(ctx context.Context, p *domainPickup.Pickup) error {
	if err := r.client.Querier(ctx).Create(p).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create pickup").
			WithReportableDetails(map[string]any{
				"pickup_id": p.ID,
				"user_id":   p.UserID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *pickupRepository) Get(ctx context.Context, id string) (*domainPickup.Pickup, error) {
	var p domainPickup.Pickup
	err := r.client.Querier(ctx).
		Where("id = ? AND status = ?", id, types.StatusPublished).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("pickup not found").
				WithHint("Pickup not found").
				WithReportableDetails(map[string]any{
					"pickup_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query pickup").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *pickupRepository) Update(ctx context.Context, p *domainPickup.Pickup) error {
	if err := r.client.Querier(ctx).Save(p).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update pickup").
			WithReportableDetails(map[string]any{
				"pickup_id": p.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *pickupRepository) ListByUser(ctx context.Context, userID string) ([]*domainPickup.Pickup, error) {
	var pickups []*domainPickup.Pickup
	err := r.client.Querier(ctx).
		Where("user_id = ? AND status = ?", userID, types.StatusPublished).
		Order("pickup_date DESC").
		Find(&pickups).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list pickups").
			Mark(ierr.ErrDatabase)
	}
	return pickups, nil
}
