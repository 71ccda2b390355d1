package transaction

import (
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
)

// Transaction is an append-only ledger entry against an invoice: charge
// attempts, refunds and zero-amount credit settlements. Failed charge
// attempts are persisted too, preserving the audit trail.
type Transaction struct {
	ID        string  `gorm:"column:id" json:"id"`
	UserID    string  `gorm:"column:user_id" json:"user_id"`
	InvoiceID *string `gorm:"column:invoice_id" json:"invoice_id,omitempty"`

	Type          types.TransactionType   `gorm:"column:type" json:"transaction_type"`
	Amount        decimal.Decimal         `gorm:"column:amount" json:"amount"`
	PaymentMethod types.PaymentMethod     `gorm:"column:payment_method" json:"payment_method"`
	TxStatus      types.TransactionStatus `gorm:"column:tx_status" json:"tx_status"`

	// GatewayRef is the external payment processor reference
	// (payment intent or refund id), when the gateway was involved.
	GatewayRef *string `gorm:"column:gateway_ref" json:"gateway_ref,omitempty"`

	Notes string `gorm:"column:notes" json:"notes,omitempty"`

	types.BaseModel
}

func (t *Transaction) TableName() string {
	return "lce_user_transactions"
}
