package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/laundrycare/lce/internal/domain/transaction"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/types"
)

var _ transaction.Repository = (*InMemoryTransactionStore)(nil)

// InMemoryTransactionStore is an in-memory implementation of
// transaction.Repository
type InMemoryTransactionStore struct {
	mu   sync.RWMutex
	txns map[string]*transaction.Transaction
}

func NewInMemoryTransactionStore() *InMemoryTransactionStore {
	return &InMemoryTransactionStore{
		txns: make(map[string]*transaction.Transaction),
	}
}

func (s *InMemoryTransactionStore) Create(ctx context.Context, txn *transaction.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns[txn.ID] = txn
	return nil
}

func (s *InMemoryTransactionStore) Get(ctx context.Context, id string) (*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txn, ok := s.txns[id]
	if !ok {
		return nil, ierr.NewError("transaction not found").
			WithHint("Transaction not found").
			Mark(ierr.ErrNotFound)
	}
	return txn, nil
}

func (s *InMemoryTransactionStore) ListByInvoice(ctx context.Context, invoiceID string) ([]*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var txns []*transaction.Transaction
	for _, txn := range s.txns {
		if txn.InvoiceID != nil && *txn.InvoiceID == invoiceID {
			txns = append(txns, txn)
		}
	}
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})
	return txns, nil
}

func (s *InMemoryTransactionStore) GetLatestCompletedCharge(ctx context.Context, invoiceID string) (*transaction.Transaction, error) {
	txns, err := s.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	for _, txn := range txns {
		if txn.Type == types.TransactionTypeCharge && txn.TxStatus == types.TransactionStatusCompleted {
			return txn, nil
		}
	}
	return nil, nil
}

func (s *InMemoryTransactionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns = make(map[string]*transaction.Transaction)
}
