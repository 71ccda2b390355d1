package testutil

import (
	"context"

	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
	"gorm.io/gorm"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient is a mock implementation of postgres client for testing.
// Transactions are pass-through: the in-memory stores apply writes
// immediately, so tests exercise transaction boundaries only logically.
type MockPostgresClient struct {
	logger *logger.Logger
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) postgres.IClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes the given function within a transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	// If we're already in a transaction, reuse it
	if tx := c.TxFromContext(ctx); tx != nil {
		return fn(ctx)
	}
	return fn(ctx)
}

// TxFromContext returns the transaction from context if it exists
func (c *MockPostgresClient) TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(types.CtxDBTransaction).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// Querier returns nothing useful; in-memory repositories never touch it
func (c *MockPostgresClient) Querier(ctx context.Context) *gorm.DB {
	return c.TxFromContext(ctx)
}
