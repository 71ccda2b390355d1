package repository

import (
	"context"
	"errors"

	domainUser "github.com/laundrycare/lce/internal/domain/user"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
	"gorm.io/gorm"
)

type userRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewUserRepository(client postgres.IClient, logger *logger.Logger) domainUser.Repository {
	return &userRepository{
		client: client,
		logger: logger,
	}
}

func (r *userRepository) Create(ctx context.Context, u *domainUser.User) error {
	if err := r.client.Querier(ctx).Create(u).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create user").
			WithReportableDetails(map[string]any{
				"user_id": u.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*domainUser.User, error) {
	var u domainUser.User
	err := r.client.Querier(ctx).
		Where("id = ? AND status = ?", id, types.StatusPublished).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("user not found").
				WithHint("User not found").
				WithReportableDetails(map[string]any{
					"user_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	var u domainUser.User
	err := r.client.Querier(ctx).
		Where("email = ? AND status = ?", email, types.StatusPublished).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("user not found").
				WithHint("User not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query user").
			Mark(ierr.ErrDatabase)
	}
	return &u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domainUser.User) error {
	if err := r.client.Querier(ctx).Save(u).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update user").
			WithReportableDetails(map[string]any{
				"user_id": u.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}
