package repository

import (
	"context"
	"errors"

	domainTxn "github.com/laundrycare/lce/internal/domain/transaction"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
	"gorm.io/gorm"
)

type transactionRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewTransactionRepository(client postgres.IClient, logger *logger.Logger) domainTxn.Repository {
	return &transactionRepository{
		client: client,
		logger: logger,
	}
}

func (r *transactionRepository) Create(ctx context.Context, txn *domainTxn.Transaction) error {
	if err := r.client.Querier(ctx).Create(txn).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record transaction").
			WithReportableDetails(map[string]any{
				"transaction_id": txn.ID,
				"user_id":        txn.UserID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *transactionRepository) Get(ctx context.Context, id string) (*domainTxn.Transaction, error) {
	var txn domainTxn.Transaction
	err := r.client.Querier(ctx).
		Where("id = ? AND status = ?", id, types.StatusPublished).
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("transaction not found").
				WithHint("Transaction not found").
				WithReportableDetails(map[string]any{
					"transaction_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query transaction").
			Mark(ierr.ErrDatabase)
	}
	return &txn, nil
}

func (r *transactionRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]*domainTxn.Transaction, error) {
	var txns []*domainTxn.Transaction
	err := r.client.Querier(ctx).
		Where("invoice_id = ? AND status = ?", invoiceID, types.StatusPublished).
		Order("created_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list transactions").
			Mark(ierr.ErrDatabase)
	}
	return txns, nil
}

func (r *transactionRepository) GetLatestCompletedCharge(ctx context.Context, invoiceID string) (*domainTxn.Transaction, error) {
	var txn domainTxn.Transaction
	err := r.client.Querier(ctx).
		Where("invoice_id = ? AND type = ? AND tx_status = ? AND status = ?",
			invoiceID, types.TransactionTypeCharge, types.TransactionStatusCompleted, types.StatusPublished).
		Order("created_at DESC").
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query transactions").
			Mark(ierr.ErrDatabase)
	}
	return &txn, nil
}
