package dto

import (
	"time"

	"github.com/laundrycare/lce/internal/domain/invoice"
	"github.com/laundrycare/lce/internal/domain/transaction"
	"github.com/laundrycare/lce/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// PayInvoiceRequest represents the request payload for settling an invoice.
// The payment method may be empty when credits cover the full amount.
type PayInvoiceRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
}

// RefundInvoiceRequest represents the request payload for refunding an invoice
type RefundInvoiceRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason"`
}

func (r *RefundInvoiceRequest) Validate() error {
	return validator.New().Struct(r)
}

// InvoiceLineResponse represents one line of an invoice
type InvoiceLineResponse struct {
	ID          string                `json:"id"`
	LineType    types.InvoiceLineType `json:"line_type"`
	Description string                `json:"description"`
	Quantity    decimal.Decimal       `json:"quantity"`
	UnitPrice   decimal.Decimal       `json:"unit_price"`
	Total       decimal.Decimal       `json:"total"`
}

// InvoiceResponse represents the invoice response structure
type InvoiceResponse struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"user_id"`
	PickupID       *string                `json:"pickup_id,omitempty"`
	InvoiceNumber  string                 `json:"invoice_number"`
	OrderType      types.OrderType        `json:"order_type"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	CreditsApplied decimal.Decimal        `json:"credits_applied"`
	Total          decimal.Decimal        `json:"total"`
	FinalAmount    decimal.Decimal        `json:"final_amount"`
	Status         types.InvoiceStatus    `json:"status"`
	Lines          []*InvoiceLineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

func ToInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	resp := &InvoiceResponse{
		ID:             inv.ID,
		UserID:         inv.UserID,
		PickupID:       inv.PickupID,
		InvoiceNumber:  inv.InvoiceNumber,
		OrderType:      inv.OrderType,
		Subtotal:       inv.Subtotal,
		CreditsApplied: inv.CreditsApplied,
		Total:          inv.Total,
		FinalAmount:    inv.FinalAmount(),
		Status:         inv.InvoiceStatus,
		CreatedAt:      inv.CreatedAt,
	}
	for _, line := range inv.Lines {
		resp.Lines = append(resp.Lines, &InvoiceLineResponse{
			ID:          line.ID,
			LineType:    line.LineType,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Total:       line.Total,
		})
	}
	return resp
}

func ToInvoiceResponses(invoices []*invoice.Invoice) []*InvoiceResponse {
	responses := make([]*InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		responses = append(responses, ToInvoiceResponse(inv))
	}
	return responses
}

// TransactionResponse represents the transaction response structure
type TransactionResponse struct {
	ID            string                  `json:"id"`
	InvoiceID     *string                 `json:"invoice_id,omitempty"`
	Type          types.TransactionType   `json:"type"`
	Amount        decimal.Decimal         `json:"amount"`
	PaymentMethod types.PaymentMethod     `json:"payment_method"`
	Status        types.TransactionStatus `json:"status"`
	GatewayRef    *string                 `json:"gateway_ref,omitempty"`
	Notes         string                  `json:"notes,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

func ToTransactionResponse(txn *transaction.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:            txn.ID,
		InvoiceID:     txn.InvoiceID,
		Type:          txn.Type,
		Amount:        txn.Amount,
		PaymentMethod: txn.PaymentMethod,
		Status:        txn.TxStatus,
		GatewayRef:    txn.GatewayRef,
		Notes:         txn.Notes,
		CreatedAt:     txn.CreatedAt,
	}
}
