package types

import (
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/samber/lo"
)

// TransactionType is the kind of ledger entry recorded against an invoice
type TransactionType string

const (
	TransactionTypeCharge TransactionType = "charge"
	TransactionTypeRefund TransactionType = "refund"
	TransactionTypeCredit TransactionType = "credit"
)

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) Validate() error {
	allowed := []TransactionType{
		TransactionTypeCharge,
		TransactionTypeRefund,
		TransactionTypeCredit,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid transaction type").
			WithHint("Invalid transaction type").
			WithReportableDetails(map[string]any{
				"transaction_type": t,
				"allowed_values":   allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TransactionStatus is the settlement status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func (s TransactionStatus) String() string {
	return string(s)
}

// PaymentMethod labels how a transaction was settled
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCredit PaymentMethod = "credit"
	PaymentMethodManual PaymentMethod = "manual"
	PaymentMethodRefund PaymentMethod = "refund"
)
