package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/laundrycare/lce/internal/domain/invoice"
	"github.com/laundrycare/lce/internal/domain/transaction"
	"github.com/laundrycare/lce/internal/domain/user"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/gateway"
	"github.com/laundrycare/lce/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// LineItemInput is one line of an invoice under construction.
type LineItemInput struct {
	LineType    types.InvoiceLineType
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// BillingService assembles invoices, applies credits and records payment
// and refund transactions against the gateway.
type BillingService interface {
	// CreateInvoice persists an invoice with its lines and immediately
	// applies the user's available credits. The whole sequence commits or
	// rolls back as one unit.
	CreateInvoice(ctx context.Context, userID string, pickupID *string, orderType types.OrderType, items []LineItemInput) (*invoice.Invoice, error)

	// CreatePPOInvoice builds the pay-per-order line items from a price
	// breakdown and creates the invoice.
	CreatePPOInvoice(ctx context.Context, userID, pickupID string, breakdown *PPOPriceBreakdown) (*invoice.Invoice, error)

	// CreateSubscriptionInvoice bills a subscription pickup's overage, or
	// a zero-total placeholder line when the quota covered everything.
	CreateSubscriptionInvoice(ctx context.Context, userID, pickupID string, usage *BagUsageResult) (*invoice.Invoice, error)

	// GetInvoice returns an invoice with its lines.
	GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error)

	// ListInvoices returns a user's invoices, newest first.
	ListInvoices(ctx context.Context, userID string) ([]*invoice.Invoice, error)

	// RecordTransaction settles the invoice's payable amount. A fully
	// credit-covered invoice is marked paid without contacting the
	// gateway; otherwise the gateway is charged and the attempt is
	// recorded either way. A failed charge persists its transaction
	// record before the error surfaces.
	RecordTransaction(ctx context.Context, inv *invoice.Invoice, paymentMethodID string) (*transaction.Transaction, error)

	// ProcessRefund refunds the invoice's most recent completed charge
	// through the gateway, or records a manual refund when the invoice
	// was never gateway-charged. Marks the invoice refunded on success.
	ProcessRefund(ctx context.Context, inv *invoice.Invoice, amount decimal.Decimal, reason string) (*transaction.Transaction, error)
}

type billingService struct {
	ServiceParams
	creditService CreditService
}

func NewBillingService(params ServiceParams, creditService CreditService) BillingService {
	return &billingService{
		ServiceParams: params,
		creditService: creditService,
	}
}

func (s *billingService) CreateInvoice(ctx context.Context, userID string, pickupID *string, orderType types.OrderType, items []LineItemInput) (*invoice.Invoice, error) {
	if err := orderType.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewError("invoice requires at least one line item").
			WithHint("Cannot create an empty invoice").
			Mark(ierr.ErrValidation)
	}

	inv := &invoice.Invoice{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		UserID:         userID,
		PickupID:       pickupID,
		InvoiceNumber:  s.newInvoiceNumber(),
		OrderType:      orderType,
		CreditsApplied: decimal.Zero,
		InvoiceStatus:  types.InvoiceStatusPending,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}

	total := decimal.Zero
	for _, item := range items {
		line := &invoice.InvoiceLine{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE),
			InvoiceID:   inv.ID,
			LineType:    item.LineType,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Quantity.Mul(item.UnitPrice),
			BaseModel:   types.GetDefaultBaseModel(ctx),
		}
		inv.Lines = append(inv.Lines, line)
		total = total.Add(line.Total)
	}
	inv.Subtotal = total
	inv.Total = total

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for _, line := range inv.Lines {
			if err := s.InvoiceLineRepo.Create(ctx, line); err != nil {
				return err
			}
		}
		_, err := s.creditService.ApplyToInvoice(ctx, inv)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"user_id", userID,
		"total", inv.Total,
		"credits_applied", inv.CreditsApplied,
	)
	return inv, nil
}

func (s *billingService) CreatePPOInvoice(ctx context.Context, userID, pickupID string, breakdown *PPOPriceBreakdown) (*invoice.Invoice, error) {
	items := []LineItemInput{
		{
			LineType:    types.LineTypeWashFold,
			Description: fmt.Sprintf("Wash & fold (%s lbs)", breakdown.WeightLbs.StringFixed(1)),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   breakdown.WashFoldCharge,
		},
	}
	for _, item := range breakdown.DCItems {
		items = append(items, LineItemInput{
			LineType:    types.LineTypeDryClean,
			Description: fmt.Sprintf("Dry cleaning: %s", item.ItemName),
			Quantity:    decimal.NewFromInt(int64(item.Quantity)),
			UnitPrice:   item.UnitPrice,
		})
	}
	for _, item := range breakdown.HDItems {
		items = append(items, LineItemInput{
			LineType:    types.LineTypeHeavyDuty,
			Description: fmt.Sprintf("Heavy duty: %s", item.ItemName),
			Quantity:    decimal.NewFromInt(int64(item.Quantity)),
			UnitPrice:   item.UnitPrice,
		})
	}
	items = append(items,
		LineItemInput{
			LineType:    types.LineTypePickupFee,
			Description: "Pickup & delivery fee",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   breakdown.PickupFee,
		},
		LineItemInput{
			LineType:    types.LineTypeServiceFee,
			Description: "Service fee",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   breakdown.ServiceFee,
		},
	)
	return s.CreateInvoice(ctx, userID, lo.ToPtr(pickupID), types.OrderTypePPO, items)
}

func (s *billingService) CreateSubscriptionInvoice(ctx context.Context, userID, pickupID string, usage *BagUsageResult) (*invoice.Invoice, error) {
	var items []LineItemInput
	if usage.ExtraBags > 0 {
		items = append(items, LineItemInput{
			LineType:    types.LineTypeSubscriptionBag,
			Description: "Extra bags beyond subscription quota",
			Quantity:    decimal.NewFromInt(int64(usage.ExtraBags)),
			UnitPrice:   usage.ExtraBagRate,
		})
	}
	if usage.OverweightLbs.IsPositive() {
		items = append(items, LineItemInput{
			LineType:    types.LineTypeOverweight,
			Description: "Overweight pounds beyond bag limit",
			Quantity:    usage.OverweightLbs,
			UnitPrice:   usage.OverweightRate,
		})
	}
	if len(items) == 0 {
		// Quota covered the pickup entirely. A zero-total invoice still
		// gets created so every settled pickup has one.
		items = append(items, LineItemInput{
			LineType:    types.LineTypeSubscriptionBag,
			Description: "Subscription pickup (covered by quota)",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.Zero,
		})
	}
	return s.CreateInvoice(ctx, userID, lo.ToPtr(pickupID), types.OrderTypeSubscription, items)
}

func (s *billingService) GetInvoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	return s.InvoiceRepo.Get(ctx, id)
}

func (s *billingService) ListInvoices(ctx context.Context, userID string) ([]*invoice.Invoice, error) {
	return s.InvoiceRepo.ListByUser(ctx, userID)
}

func (s *billingService) RecordTransaction(ctx context.Context, inv *invoice.Invoice, paymentMethodID string) (*transaction.Transaction, error) {
	if inv.InvoiceStatus != types.InvoiceStatusPending {
		return nil, ierr.NewError("invoice is not payable").
			WithHintf("Invoice %s is already %s", inv.InvoiceNumber, inv.InvoiceStatus).
			Mark(ierr.ErrInvalidState)
	}

	amount := inv.FinalAmount()
	if !amount.IsPositive() {
		return s.settleWithCredits(ctx, inv)
	}

	if paymentMethodID == "" {
		return nil, ierr.NewError("payment method required").
			WithHint("The invoice has a payable balance and needs a payment method").
			WithReportableDetails(map[string]any{
				"invoice_id": inv.ID,
				"amount":     amount,
			}).
			Mark(ierr.ErrValidation)
	}

	u, err := s.UserRepo.Get(ctx, inv.UserID)
	if err != nil {
		return nil, err
	}
	customerRef, err := s.ensureCustomerRef(ctx, u)
	if err != nil {
		return nil, err
	}

	result, chargeErr := s.Gateway.Charge(ctx, chargeRequestFor(inv, amount, paymentMethodID, customerRef))
	if chargeErr != nil || !result.Succeeded {
		// The failed attempt is persisted even though the operation
		// fails, preserving the audit trail.
		txn := s.newTransaction(ctx, inv, types.TransactionTypeCharge, amount, types.PaymentMethodCard, types.TransactionStatusFailed)
		if result != nil && result.GatewayRef != "" {
			txn.GatewayRef = lo.ToPtr(result.GatewayRef)
		}
		if createErr := s.TransactionRepo.Create(ctx, txn); createErr != nil {
			s.Logger.Errorw("failed to persist failed charge attempt",
				"invoice_id", inv.ID,
				"error", createErr,
			)
		}

		if chargeErr != nil {
			return nil, chargeErr
		}
		return nil, ierr.NewError("charge declined").
			WithHint("The payment method was declined").
			WithReportableDetails(map[string]any{
				"invoice_id": inv.ID,
				"amount":     amount,
			}).
			Mark(ierr.ErrPaymentFailed)
	}

	txn := s.newTransaction(ctx, inv, types.TransactionTypeCharge, amount, types.PaymentMethodCard, types.TransactionStatusCompleted)
	txn.GatewayRef = lo.ToPtr(result.GatewayRef)

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.TransactionRepo.Create(ctx, txn); err != nil {
			return err
		}
		inv.InvoiceStatus = types.InvoiceStatusPaid
		return s.InvoiceRepo.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("charged invoice",
		"invoice_id", inv.ID,
		"transaction_id", txn.ID,
		"amount", amount,
		"gateway_ref", result.GatewayRef,
	)
	return txn, nil
}

func (s *billingService) ProcessRefund(ctx context.Context, inv *invoice.Invoice, amount decimal.Decimal, reason string) (*transaction.Transaction, error) {
	if amount.IsNegative() {
		return nil, ierr.NewError("refund amount must be non negative").
			WithHint("Refund amount cannot be negative").
			WithReportableDetails(map[string]any{
				"invoice_id": inv.ID,
				"amount":     amount,
			}).
			Mark(ierr.ErrValidation)
	}

	charge, err := s.TransactionRepo.GetLatestCompletedCharge(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	txn := s.newTransaction(ctx, inv, types.TransactionTypeRefund, amount, types.PaymentMethodRefund, types.TransactionStatusCompleted)
	txn.Notes = reason

	if charge != nil && charge.GatewayRef != nil {
		result, err := s.Gateway.Refund(ctx, refundRequestFor(*charge.GatewayRef, amount))
		if err != nil {
			return nil, err
		}
		if !result.Succeeded {
			return nil, ierr.NewError("gateway refund did not succeed").
				WithHint("The payment processor refused the refund").
				WithReportableDetails(map[string]any{
					"invoice_id": inv.ID,
					"charge_ref": *charge.GatewayRef,
				}).
				Mark(ierr.ErrRefundFailed)
		}
		txn.GatewayRef = lo.ToPtr(result.GatewayRef)
	} else {
		// Never gateway-charged (credit-covered or manual); record the
		// refund without contacting the processor.
		txn.PaymentMethod = types.PaymentMethodManual
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.TransactionRepo.Create(ctx, txn); err != nil {
			return err
		}
		inv.InvoiceStatus = types.InvoiceStatusRefunded
		return s.InvoiceRepo.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("refunded invoice",
		"invoice_id", inv.ID,
		"transaction_id", txn.ID,
		"amount", amount,
		"reason", reason,
	)
	return txn, nil
}

// settleWithCredits marks a fully credit-covered invoice paid with a
// zero-amount ledger entry, without contacting the gateway.
func (s *billingService) settleWithCredits(ctx context.Context, inv *invoice.Invoice) (*transaction.Transaction, error) {
	txn := s.newTransaction(ctx, inv, types.TransactionTypeCredit, decimal.Zero, types.PaymentMethodCredit, types.TransactionStatusCompleted)

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.TransactionRepo.Create(ctx, txn); err != nil {
			return err
		}
		inv.InvoiceStatus = types.InvoiceStatusPaid
		return s.InvoiceRepo.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("invoice fully covered by credits",
		"invoice_id", inv.ID,
		"transaction_id", txn.ID,
	)
	return txn, nil
}

// ensureCustomerRef lazily registers the user with the gateway on the
// first charge attempt.
func (s *billingService) ensureCustomerRef(ctx context.Context, u *user.User) (string, error) {
	if u.HasStripeCustomer() {
		return *u.StripeCustomerID, nil
	}
	ref, err := s.Gateway.CreateCustomerRef(ctx, u)
	if err != nil {
		return "", err
	}
	u.StripeCustomerID = lo.ToPtr(ref)
	if err := s.UserRepo.Update(ctx, u); err != nil {
		return "", err
	}
	return ref, nil
}

func (s *billingService) newTransaction(ctx context.Context, inv *invoice.Invoice, txnType types.TransactionType, amount decimal.Decimal, method types.PaymentMethod, status types.TransactionStatus) *transaction.Transaction {
	return &transaction.Transaction{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSACTION),
		UserID:        inv.UserID,
		InvoiceID:     lo.ToPtr(inv.ID),
		Type:          txnType,
		Amount:        amount,
		PaymentMethod: method,
		TxStatus:      status,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

func (s *billingService) newInvoiceNumber() string {
	return fmt.Sprintf("INV-%s-%s", s.Clock.Now().Format("20060102"), types.GenerateShortCode(6))
}

func chargeRequestFor(inv *invoice.Invoice, amount decimal.Decimal, paymentMethodID, customerRef string) gateway.ChargeRequest {
	return gateway.ChargeRequest{
		Amount:          amount,
		PaymentMethodID: paymentMethodID,
		CustomerRef:     customerRef,
		IdempotencyKey:  uuid.NewString(),
		Metadata: map[string]string{
			"invoice_id":     inv.ID,
			"invoice_number": inv.InvoiceNumber,
			"order_type":     inv.OrderType.String(),
		},
	}
}

func refundRequestFor(chargeRef string, amount decimal.Decimal) gateway.RefundRequest {
	return gateway.RefundRequest{
		ChargeRef:      chargeRef,
		Amount:         amount,
		IdempotencyKey: uuid.NewString(),
	}
}
