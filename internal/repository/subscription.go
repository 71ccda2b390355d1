package repository

import (
	"context"
	"errors"
	"time"

	domainSub "github.com/laundrycare/lce/internal/domain/subscription"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
	"gorm.io/gorm"
)

type subscriptionRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewSubscriptionRepository(client postgres.IClient, logger *logger.Logger) domainSub.Repository {
	return &subscriptionRepository{
		client: client,
		logger: logger,
	}
}

func (r *subscriptionRepository) Create(ctx context.Context, s *domainSub.Subscription) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := r.client.Querier(ctx).Create(s).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create subscription").
			WithReportableDetails(map[string]any{
				"subscription_id": s.ID,
				"user_id":         s.UserID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*domainSub.Subscription, error) {
	var s domainSub.Subscription
	err := r.client.Querier(ctx).
		Where("id = ? AND status = ?", id, types.StatusPublished).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("subscription not found").
				WithHint("Subscription not found").
				WithReportableDetails(map[string]any{
					"subscription_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query subscription").
			Mark(ierr.ErrDatabase)
	}
	return &s, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, s *domainSub.Subscription) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := r.client.Querier(ctx).Save(s).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update subscription").
			WithReportableDetails(map[string]any{
				"subscription_id": s.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID string) ([]*domainSub.Subscription, error) {
	var subs []*domainSub.Subscription
	err := r.client.Querier(ctx).
		Where("user_id = ? AND status = ?", userID, types.StatusPublished).
		Order("created_at DESC").
		Find(&subs).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list subscriptions").
			Mark(ierr.ErrDatabase)
	}
	return subs, nil
}

func (r *subscriptionRepository) ListDueForRenewal(ctx context.Context, asOf time.Time) ([]*domainSub.Subscription, error) {
	var subs []*domainSub.Subscription
	err := r.client.Querier(ctx).
		Where("subscription_status = ? AND next_billing_date <= ? AND status = ?",
			types.SubscriptionStatusActive, asOf, types.StatusPublished).
		Order("next_billing_date ASC").
		Find(&subs).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list due subscriptions").
			Mark(ierr.ErrDatabase)
	}
	return subs, nil
}

type bagUsageRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewBagUsageRepository(client postgres.IClient, logger *logger.Logger) domainSub.BagUsageRepository {
	return &bagUsageRepository{
		client: client,
		logger: logger,
	}
}

func (r *bagUsageRepository) Create(ctx context.Context, usage *domainSub.BagUsage) error {
	if err := r.client.Querier(ctx).Create(usage).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record bag usage").
			WithReportableDetails(map[string]any{
				"subscription_id": usage.SubscriptionID,
				"pickup_id":       usage.PickupID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *bagUsageRepository) ListBySubscription(ctx context.Context, subscriptionID string) ([]*domainSub.BagUsage, error) {
	var usages []*domainSub.BagUsage
	err := r.client.Querier(ctx).
		Where("subscription_id = ? AND status = ?", subscriptionID, types.StatusPublished).
		Order("created_at DESC").
		Find(&usages).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list bag usage").
			Mark(ierr.ErrDatabase)
	}
	return usages, nil
}

func (r *bagUsageRepository) GetByPickup(ctx context.Context, pickupID string) (*domainSub.BagUsage, error) {
	var usage domainSub.BagUsage
	err := r.client.Querier(ctx).
		Where("pickup_id = ? AND status = ?", pickupID, types.StatusPublished).
		First(&usage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query bag usage").
			Mark(ierr.ErrDatabase)
	}
	return &usage, nil
}
