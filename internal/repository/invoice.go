package repository

import (
	"context"
	"errors"

	domainInvoice "github.com/laundrycare/lce/internal/domain/invoice"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/postgres"
	"github.com/laundrycare/lce/internal/types"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewInvoiceRepository(client postgres.IClient, logger *logger.Logger) domainInvoice.Repository {
	return &invoiceRepository{
		client: client,
		logger: logger,
	}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *domainInvoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	if err := r.client.Querier(ctx).Create(inv).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			WithReportableDetails(map[string]any{
				"invoice_id":     inv.ID,
				"invoice_number": inv.InvoiceNumber,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*domainInvoice.Invoice, error) {
	var inv domainInvoice.Invoice
	err := r.client.Querier(ctx).
		Where("id = ? AND status = ?", id, types.StatusPublished).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("invoice not found").
				WithHint("Invoice not found").
				WithReportableDetails(map[string]any{
					"invoice_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query invoice").
			Mark(ierr.ErrDatabase)
	}

	lines, err := r.loadLines(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return &inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *domainInvoice.Invoice) error {
	if err := inv.Validate(); err != nil {
		return err
	}
	if err := r.client.Querier(ctx).Save(inv).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			WithReportableDetails(map[string]any{
				"invoice_id": inv.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) ListByUser(ctx context.Context, userID string) ([]*domainInvoice.Invoice, error) {
	var invoices []*domainInvoice.Invoice
	err := r.client.Querier(ctx).
		Where("user_id = ? AND status = ?", userID, types.StatusPublished).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	return invoices, nil
}

func (r *invoiceRepository) GetByPickup(ctx context.Context, pickupID string) (*domainInvoice.Invoice, error) {
	var inv domainInvoice.Invoice
	err := r.client.Querier(ctx).
		Where("pickup_id = ? AND status = ?", pickupID, types.StatusPublished).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to query invoice").
			Mark(ierr.ErrDatabase)
	}

	lines, err := r.loadLines(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return &inv, nil
}

func (r *invoiceRepository) loadLines(ctx context.Context, invoiceID string) ([]*domainInvoice.InvoiceLine, error) {
	var lines []*domainInvoice.InvoiceLine
	err := r.client.Querier(ctx).
		Where("invoice_id = ? AND status = ?", invoiceID, types.StatusPublished).
		Order("created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load invoice lines").
			Mark(ierr.ErrDatabase)
	}
	return lines, nil
}

type invoiceLineRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

func NewInvoiceLineRepository(client postgres.IClient, logger *logger.Logger) domainInvoice.LineRepository {
	return &invoiceLineRepository{
		client: client,
		logger: logger,
	}
}

func (r *invoiceLineRepository) Create(ctx context.Context, line *domainInvoice.InvoiceLine) error {
	if err := line.Validate(); err != nil {
		return err
	}
	if err := r.client.Querier(ctx).Create(line).Error; err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create invoice line").
			WithReportableDetails(map[string]any{
				"invoice_id": line.InvoiceID,
				"line_type":  line.LineType,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceLineRepository) ListByInvoice(ctx context.Context, invoiceID string) ([]*domainInvoice.InvoiceLine, error) {
	var lines []*domainInvoice.InvoiceLine
	err := r.client.Querier(ctx).
		Where("invoice_id = ? AND status = ?", invoiceID, types.StatusPublished).
		Order("created_at ASC").
		Find(&lines).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoice lines").
			Mark(ierr.ErrDatabase)
	}
	return lines, nil
}
