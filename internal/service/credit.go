package service

import (
	"context"
	"time"

	"github.com/laundrycare/lce/internal/domain/credit"
	"github.com/laundrycare/lce/internal/domain/invoice"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
)

// CreditService is the per-user credit ledger: grants, balance queries and
// oldest-first application against invoices.
type CreditService interface {
	// Grant creates a new credit with remaining_amount = amount.
	Grant(ctx context.Context, userID string, creditType types.CreditType, amount decimal.Decimal, description string, expiresAt *time.Time) (*credit.Credit, error)

	// GrantWelcomeCredit grants the configured signup bonus.
	GrantWelcomeCredit(ctx context.Context, userID string) (*credit.Credit, error)

	// AvailableBalance sums the user's unexpired, unexhausted credits.
	AvailableBalance(ctx context.Context, userID string) (decimal.Decimal, error)

	// ApplyToInvoice consumes the user's available credits oldest first
	// until the invoice total is covered, and returns the amount applied.
	// The call is atomic and idempotent: a settled or already-credited
	// invoice is left untouched.
	ApplyToInvoice(ctx context.Context, inv *invoice.Invoice) (decimal.Decimal, error)

	// History lists every credit the user ever received, newest first.
	History(ctx context.Context, userID string) ([]*credit.Credit, error)
}

type creditService struct {
	ServiceParams
}

func NewCreditService(params ServiceParams) CreditService {
	return &creditService{ServiceParams: params}
}

func (s *creditService) Grant(ctx context.Context, userID string, creditType types.CreditType, amount decimal.Decimal, description string, expiresAt *time.Time) (*credit.Credit, error) {
	if err := creditType.Validate(); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ierr.NewError("credit amount must be positive").
			WithHint("Credit grants must be for a positive amount").
			WithReportableDetails(map[string]any{
				"user_id": userID,
				"amount":  amount,
			}).
			Mark(ierr.ErrValidation)
	}

	c := &credit.Credit{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT),
		UserID:          userID,
		Type:            creditType,
		Amount:          amount,
		RemainingAmount: amount,
		Description:     description,
		ExpiresAt:       expiresAt,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	if err := s.CreditRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.Logger.Infow("granted credit",
		"credit_id", c.ID,
		"user_id", userID,
		"type", creditType,
		"amount", amount,
	)
	return c, nil
}

func (s *creditService) GrantWelcomeCredit(ctx context.Context, userID string) (*credit.Credit, error) {
	amount := decimal.NewFromFloat(s.Config.Billing.WelcomeCredit)
	if !amount.IsPositive() {
		return nil, nil
	}
	return s.Grant(ctx, userID, types.CreditTypeWelcome, amount, "Welcome credit", nil)
}

func (s *creditService) AvailableBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.CreditRepo.SumAvailable(ctx, userID, s.Clock.Now())
}

func (s *creditService) ApplyToInvoice(ctx context.Context, inv *invoice.Invoice) (decimal.Decimal, error) {
	if !inv.Total.IsPositive() {
		return decimal.Zero, nil
	}
	// Re-application guard: once an invoice left pending, or already
	// carries applied credits, the ledger is settled for it.
	if inv.InvoiceStatus != types.InvoiceStatusPending || inv.CreditsApplied.IsPositive() {
		return decimal.Zero, nil
	}

	applied := decimal.Zero
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		credits, err := s.CreditRepo.ListAvailableForUpdate(ctx, inv.UserID, s.Clock.Now())
		if err != nil {
			return err
		}

		remaining := inv.Total
		for _, c := range credits {
			if !remaining.IsPositive() {
				break
			}
			drawn := c.Use(remaining)
			if !drawn.IsPositive() {
				continue
			}
			if err := s.CreditRepo.Update(ctx, c); err != nil {
				return err
			}
			applied = applied.Add(drawn)
			remaining = remaining.Sub(drawn)
		}

		if applied.IsPositive() {
			inv.CreditsApplied = applied
			if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	if applied.IsPositive() {
		s.Logger.Infow("applied credits to invoice",
			"invoice_id", inv.ID,
			"user_id", inv.UserID,
			"amount_applied", applied,
		)
	}
	return applied, nil
}

func (s *creditService) History(ctx context.Context, userID string) ([]*credit.Credit, error) {
	return s.CreditRepo.ListByUser(ctx, userID)
}
