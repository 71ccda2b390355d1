package invoice

import "context"

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create creates a new invoice
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID, including its lines
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update updates an existing invoice
	Update(ctx context.Context, invoice *Invoice) error

	// ListByUser retrieves a user's invoices, newest first
	ListByUser(ctx context.Context, userID string) ([]*Invoice, error)

	// GetByPickup retrieves the invoice attached to a pickup, if any
	GetByPickup(ctx context.Context, pickupID string) (*Invoice, error)
}

// LineRepository defines the interface for invoice line persistence
type LineRepository interface {
	Create(ctx context.Context, line *InvoiceLine) error
	ListByInvoice(ctx context.Context, invoiceID string) ([]*InvoiceLine, error)
}
