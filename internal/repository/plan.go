package repository

import (
	"context"
	"errors"

	domainPlan "github.com/laundrycare/lce/internal/domain/plan"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
	"gorm.io/gorm"
)

type planRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewPlanRepository(client postgres.IClient, logger *logger.Logger) domainPlan.Repository {
	return &planRepository{
		client: client,
		logger: logger,
	}
}

func (r *planRepository) Create(ctx context.Context, p *domainPlan.Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.client.Querier(ctx).Create(p).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create plan").
			WithReportableDetails(map[string]any{
				"plan_id": p.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *planRepository) Update(ctx context.Context, p *domainPlan.Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.client.Querier(ctx).Save(p).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update plan").
			WithReportableDetails(map[string]any{
				"plan_id": p.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *planRepository) Get(ctx context.Context, id string) (*domainPlan.Plan, error) {
	var p domainPlan.Plan
	err := r.client.Querier(ctx).
		Where("id = ? AND status = ?", id, types.StatusPublished).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("plan not found").
				WithHint("Plan not found").
				WithReportableDetails(map[string]any{
					"plan_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query plan").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *planRepository) ListActive(ctx context.Context) ([]*domainPlan.Plan, error) {
	var plans []*domainPlan.Plan
	err := r.client.Querier(ctx).
		Where("is_active = ? AND status = ?", true, types.StatusPublished).
		Order("price ASC").
		Find(&plans).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list plans").
			Mark(ierr.ErrDatabase)
	}
	return plans, nil
}
