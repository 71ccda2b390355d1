package repository

import (
	"context"
	"time"

	domainHoliday "github.com/laundrycare/lce/internal/domain/holiday"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
)

type holidayRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewHolidayRepository(client postgres.IClient, logger *logger.Logger) domainHoliday.Repository {
	return &holidayRepository{
		client: client,
		logger: logger,
	}
}

func (r *holidayRepository) Create(ctx context.Context, h *domainHoliday.Holiday) error {
	if err := r.client.Querier(ctx).Create(h).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create holiday").
			WithReportableDetails(map[string]any{
				"holiday_id": h.ID,
				"date":       h.Date,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *holidayRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	dayStart := types.BeginningOfDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	err := r.client.Querier(ctx).
		Model(&domainHoliday.Holiday{}).
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Where("is_active = ? AND status = ?", true, types.StatusPublished).
		Count(&count).Error
	if err != nil {
		return false, ierr.WithError(err).
			WithHint("Failed to check holiday").
			Mark(ierr.ErrDatabase)
	}
	return count > 0, nil
}

func (r *holidayRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*domainHoliday.Holiday, error) {
	var holidays []*domainHoliday.Holiday
	err := r.client.Querier(ctx).
		Where("date >= ? AND is_active = ? AND status = ?",
			types.BeginningOfDay(from), true, types.StatusPublished).
		Order("date ASC").
		Limit(limit).
		Find(&holidays).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list holidays").
			Mark(ierr.ErrDatabase)
	}
	return holidays, nil
}
