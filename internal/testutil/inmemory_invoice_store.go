package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/laundrycare/lce/internal/domain/invoice"
	ierr "github.com/laundrycare/lce/internal/errors"
)

var _ invoice.Repository = (*InMemoryInvoiceStore)(nil)

// InMemoryInvoiceStore is an in-memory implementation of invoice.Repository
type InMemoryInvoiceStore struct {
	mu       sync.RWMutex
	invoices map[string]*invoice.Invoice
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[string]*invoice.Invoice),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.invoices[inv.ID]; exists {
		return ierr.NewError("invoice already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	s.invoices[inv.ID] = inv
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invoices[id]
	if !ok {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}
	return inv, nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.invoices[inv.ID]; !ok {
		return ierr.NewError("invoice not found").
			Mark(ierr.ErrNotFound)
	}
	s.invoices[inv.ID] = inv
	return nil
}

func (s *InMemoryInvoiceStore) ListByUser(ctx context.Context, userID string) ([]*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var invoices []*invoice.Invoice
	for _, inv := range s.invoices {
		if inv.UserID == userID {
			invoices = append(invoices, inv)
		}
	}
	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
	return invoices, nil
}

func (s *InMemoryInvoiceStore) GetByPickup(ctx context.Context, pickupID string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.invoices {
		if inv.PickupID != nil && *inv.PickupID == pickupID {
			return inv, nil
		}
	}
	return nil, nil
}

func (s *InMemoryInvoiceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = make(map[string]*invoice.Invoice)
}

var _ invoice.LineRepository = (*InMemoryInvoiceLineStore)(nil)

// InMemoryInvoiceLineStore is an in-memory implementation of
// invoice.LineRepository
type InMemoryInvoiceLineStore struct {
	mu    sync.RWMutex
	lines map[string]*invoice.InvoiceLine
}

func NewInMemoryInvoiceLineStore() *InMemoryInvoiceLineStore {
	return &InMemoryInvoiceLineStore{
		lines: make(map[string]*invoice.InvoiceLine),
	}
}

func (s *InMemoryInvoiceLineStore) Create(ctx context.Context, line *invoice.InvoiceLine) error {
	if err := line.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[line.ID] = line
	return nil
}

func (s *InMemoryInvoiceLineStore) ListByInvoice(ctx context.Context, invoiceID string) ([]*invoice.InvoiceLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var lines []*invoice.InvoiceLine
	for _, line := range s.lines {
		if line.InvoiceID == invoiceID {
			lines = append(lines, line)
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].CreatedAt.Before(lines[j].CreatedAt)
	})
	return lines, nil
}

func (s *InMemoryInvoiceLineStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[string]*invoice.InvoiceLine)
}
