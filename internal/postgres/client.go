package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/laundrycare/lce/internal/config"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/types"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// IClient defines the interface for postgres client operations
type IClient interface {
	// WithTx wraps the given function in a transaction
	WithTx(ctx context.Context, fn func(context.Context) error) error

	// TxFromContext returns the transaction from context if it exists
	TxFromContext(ctx context.Context) *gorm.DB

	// Querier returns the current transaction handle if in a transaction, or the regular handle
	Querier(ctx context.Context) *gorm.DB
}

// Client wraps gorm.DB to provide transaction management
type Client struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewDB opens the postgres connection pool
func NewDB(config *config.Configuration, logger *logger.Logger) (*gorm.DB, error) {
	dsn := config.Postgres.GetDSN()

	logLevel := gormlogger.Warn
	if config.Deployment.Mode == types.ModeLocal {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.Postgres.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.Postgres.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(config.Postgres.ConnMaxLifetimeMinutes) * time.Minute)

	return db, nil
}

// NewClient creates a new client wrapper with transaction management
func NewClient(db *gorm.DB, logger *logger.Logger) IClient {
	return &Client{
		db:     db,
		logger: logger,
	}
}

// WithTx wraps the given function in a transaction
func (c *Client) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// If we're already in a transaction, reuse it and do not start a new one or commit it
	if tx := c.TxFromContext(ctx); tx != nil {
		return fn(ctx)
	}

	tx := c.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("starting transaction: %w", tx.Error)
	}

	defer func() {
		if v := recover(); v != nil {
			c.logger.Errorw("rolling back transaction due to panic",
				"panic", v,
			)
			_ = tx.Rollback()
			panic(v)
		}
	}()

	txCtx := context.WithValue(ctx, types.CtxDBTransaction, tx)

	if err := fn(txCtx); err != nil {
		if rerr := tx.Rollback().Error; rerr != nil {
			c.logger.Errorw("failed to rollback transaction",
				"error", rerr,
				"original_error", err,
			)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// TxFromContext returns the transaction from context if it exists
func (c *Client) TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(types.CtxDBTransaction).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// Querier returns the transaction handle when inside WithTx, otherwise
// the shared pool. Repositories always go through this so writes made
// inside a transaction see each other.
func (c *Client) Querier(ctx context.Context) *gorm.DB {
	if tx := c.TxFromContext(ctx); tx != nil {
		return tx
	}
	return c.db.WithContext(ctx)
}
