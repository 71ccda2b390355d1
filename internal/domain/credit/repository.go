package credit

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for credit persistence.
//
// ListAvailableForUpdate must lock the returned rows for the duration of
// the surrounding transaction so concurrent invoice creation for the same
// user cannot double-spend a remaining balance.
type Repository interface {
	Create(ctx context.Context, credit *Credit) error
	Get(ctx context.Context, id string) (*Credit, error)
	Update(ctx context.Context, credit *Credit) error

	// ListAvailable returns the user's spendable credits ordered oldest
	// created first.
	ListAvailable(ctx context.Context, userID string, now time.Time) ([]*Credit, error)

	// ListAvailableForUpdate is ListAvailable with row-level locking.
	ListAvailableForUpdate(ctx context.Context, userID string, now time.Time) ([]*Credit, error)

	// SumAvailable returns the user's total spendable balance.
	SumAvailable(ctx context.Context, userID string, now time.Time) (decimal.Decimal, error)

	// ListByUser returns the user's full credit history, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Credit, error)
}
