package repository

import (
	"context"
	"errors"
	"time"

	domainCredit "github.com/laundrycare/lce/internal/domain/credit"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type creditRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewCreditRepository(client postgres.IClient, logger *logger.Logger) domainCredit.Repository {
	return &creditRepository{
		client: client,
		logger: logger,
	}
}

func (r *creditRepository) Create(ctx context.Context, c *domainCredit.Credit) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := r.client.Querier(ctx).Create(c).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create credit").
			WithReportableDetails(map[string]any{
				"credit_id": c.ID,
				"user_id":   c.UserID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *creditRepository) Get(ctx context.Context, id string) (*domainCredit.Credit, error) {
	var c domainCredit.Credit
	err := r.client.Querier(ctx).
		Where("id = ? AND status = ?", id, types.StatusPublished).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("credit not found").
				WithHint("Credit not found").
				WithReportableDetails(map[string]any{
					"credit_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query credit").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *creditRepository) Update(ctx context.Context, c *domainCredit.Credit) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := r.client.Querier(ctx).Save(c).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update credit").
			WithReportableDetails(map[string]any{
				"credit_id": c.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *creditRepository) ListAvailable(ctx context.Context, userID string, now time.Time) ([]*domainCredit.Credit, error) {
	return r.listAvailable(ctx, userID, now, false)
}

func (r *creditRepository) ListAvailableForUpdate(ctx context.Context, userID string, now time.Time) ([]*domainCredit.Credit, error) {
	return r.listAvailable(ctx, userID, now, true)
}

func (r *creditRepository) listAvailable(ctx context.Context, userID string, now time.Time, forUpdate bool) ([]*domainCredit.Credit, error) {
	q := r.client.Querier(ctx).
		Where("user_id = ? AND status = ?", userID, types.StatusPublished).
		Where("remaining_amount > 0").
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at ASC")
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var credits []*domainCredit.Credit
	if err := q.Find(&credits).Error; err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list credits").
			Mark(ierr.ErrDatabase)
	}
	return credits, nil
}

func (r *creditRepository) SumAvailable(ctx context.Context, userID string, now time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.client.Querier(ctx).
		Model(&domainCredit.Credit{}).
		Where("user_id = ? AND status = ?", userID, types.StatusPublished).
		Where("remaining_amount > 0").
		Where("expires_at IS NULL OR expires_at > ?", now).
		Select("COALESCE(SUM(remaining_amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Failed to sum credits").
			Mark(ierr.ErrDatabase)
	}
	return sum, nil
}

func (r *creditRepository) ListByUser(ctx context.Context, userID string) ([]*domainCredit.Credit, error) {
	var credits []*domainCredit.Credit
	err := r.client.Querier(ctx).
		Where("user_id = ? AND status = ?", userID, types.StatusPublished).
		Order("created_at DESC").
		Find(&credits).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list credit history").
			Mark(ierr.ErrDatabase)
	}
	return credits, nil
}
