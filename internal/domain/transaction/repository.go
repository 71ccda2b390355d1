package transaction

import "context"

// Repository defines the interface for transaction persistence.
// Transactions are append-only; there is no update.
type Repository interface {
	Create(ctx context.Context, txn *Transaction) error
	Get(ctx context.Context, id string) (*Transaction, error)
	ListByInvoice(ctx context.Context, invoiceID string) ([]*Transaction, error)

	// GetLatestCompletedCharge returns the most recent completed charge
	// for an invoice, or nil when none exists.
	GetLatestCompletedCharge(ctx context.Context, invoiceID string) (*Transaction, error)
}
