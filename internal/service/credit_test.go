package service

import (
	"testing"
	"time"

	"github.com/laundrycare/lce/internal/domain/invoice"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/testutil"
	"github.com/laundrycare/lce/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CreditServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CreditService
}

func TestCreditService(t *testing.T) {
	suite.Run(t, new(CreditServiceSuite))
}

func (s *CreditServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewCreditService(newTestParams(&s.BaseServiceTestSuite))
}

const testUserID = "user_credit_test"

func (s *CreditServiceSuite) grantAt(amount string, createdAt time.Time) string {
	c, err := s.service.Grant(s.GetContext(), testUserID, types.CreditTypeManual,
		decimal.RequireFromString(amount), "test grant", nil)
	s.NoError(err)
	c.CreatedAt = createdAt
	s.NoError(s.GetStores().CreditRepo.Update(s.GetContext(), c))
	return c.ID
}

func (s *CreditServiceSuite) newPendingInvoice(total string) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		UserID:         testUserID,
		InvoiceNumber:  "INV-20250310-TEST01",
		OrderType:      types.OrderTypePPO,
		Subtotal:       decimal.RequireFromString(total),
		CreditsApplied: decimal.Zero,
		Total:          decimal.RequireFromString(total),
		InvoiceStatus:  types.InvoiceStatusPending,
		BaseModel:      types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	return inv
}

func (s *CreditServiceSuite) TestGrantSetsRemainingToAmount() {
	c, err := s.service.Grant(s.GetContext(), testUserID, types.CreditTypePromo,
		decimal.RequireFromString("15.00"), "promo", nil)
	s.NoError(err)
	s.True(c.Amount.Equal(c.RemainingAmount))
}

func (s *CreditServiceSuite) TestGrantRejectsNonPositiveAmount() {
	_, err := s.service.Grant(s.GetContext(), testUserID, types.CreditTypeManual,
		decimal.Zero, "zero", nil)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrValidation)
}

func (s *CreditServiceSuite) TestWelcomeCreditUsesConfiguredAmount() {
	c, err := s.service.GrantWelcomeCredit(s.GetContext(), testUserID)
	s.NoError(err)
	s.Equal(types.CreditTypeWelcome, c.Type)
	s.True(c.Amount.Equal(decimal.RequireFromString("20.00")))
	s.Nil(c.ExpiresAt)
}

func (s *CreditServiceSuite) TestAvailableBalanceExcludesExpired() {
	now := s.GetClock().Now()
	_, err := s.service.Grant(s.GetContext(), testUserID, types.CreditTypeManual,
		decimal.RequireFromString("10.00"), "live", nil)
	s.NoError(err)
	_, err = s.service.Grant(s.GetContext(), testUserID, types.CreditTypePromo,
		decimal.RequireFromString("5.00"), "expired", lo.ToPtr(now.Add(-time.Hour)))
	s.NoError(err)

	balance, err := s.service.AvailableBalance(s.GetContext(), testUserID)
	s.NoError(err)
	s.True(balance.Equal(decimal.RequireFromString("10.00")), balance.String())
}

func (s *CreditServiceSuite) TestAvailableBalanceExcludesExhausted() {
	id := s.grantAt("10.00", s.GetClock().Now())
	c, err := s.GetStores().CreditRepo.Get(s.GetContext(), id)
	s.NoError(err)
	c.RemainingAmount = decimal.Zero
	s.NoError(s.GetStores().CreditRepo.Update(s.GetContext(), c))

	balance, err := s.service.AvailableBalance(s.GetContext(), testUserID)
	s.NoError(err)
	s.True(balance.IsZero())
}

func (s *CreditServiceSuite) TestApplyConsumesOldestFirst() {
	now := s.GetClock().Now()
	oldID := s.grantAt("10.00", now.Add(-48*time.Hour))
	newID := s.grantAt("10.00", now.Add(-1*time.Hour))

	inv := s.newPendingInvoice("12.00")
	applied, err := s.service.ApplyToInvoice(s.GetContext(), inv)
	s.NoError(err)
	s.True(applied.Equal(decimal.RequireFromString("12.00")))
	s.True(inv.CreditsApplied.Equal(decimal.RequireFromString("12.00")))

	oldCredit, err := s.GetStores().CreditRepo.Get(s.GetContext(), oldID)
	s.NoError(err)
	s.True(oldCredit.RemainingAmount.IsZero())

	newCredit, err := s.GetStores().CreditRepo.Get(s.GetContext(), newID)
	s.NoError(err)
	s.True(newCredit.RemainingAmount.Equal(decimal.RequireFromString("8.00")))
}

func (s *CreditServiceSuite) TestApplyCapsAtInvoiceTotal() {
	s.grantAt("100.00", s.GetClock().Now())

	inv := s.newPendingInvoice("30.00")
	applied, err := s.service.ApplyToInvoice(s.GetContext(), inv)
	s.NoError(err)
	s.True(applied.Equal(decimal.RequireFromString("30.00")))
	s.True(inv.FinalAmount().IsZero())
}

func (s *CreditServiceSuite) TestApplyIsIdempotent() {
	s.grantAt("100.00", s.GetClock().Now())

	inv := s.newPendingInvoice("30.00")
	first, err := s.service.ApplyToInvoice(s.GetContext(), inv)
	s.NoError(err)
	s.True(first.Equal(decimal.RequireFromString("30.00")))

	second, err := s.service.ApplyToInvoice(s.GetContext(), inv)
	s.NoError(err)
	s.True(second.IsZero())
	s.True(inv.CreditsApplied.Equal(decimal.RequireFromString("30.00")))

	balance, err := s.service.AvailableBalance(s.GetContext(), testUserID)
	s.NoError(err)
	s.True(balance.Equal(decimal.RequireFromString("70.00")), balance.String())
}

func (s *CreditServiceSuite) TestApplySkipsNonPendingInvoice() {
	s.grantAt("100.00", s.GetClock().Now())

	inv := s.newPendingInvoice("30.00")
	inv.InvoiceStatus = types.InvoiceStatusPaid
	applied, err := s.service.ApplyToInvoice(s.GetContext(), inv)
	s.NoError(err)
	s.True(applied.IsZero())
}

func (s *CreditServiceSuite) TestApplyZeroTotalIsNoop() {
	s.grantAt("100.00", s.GetClock().Now())

	inv := s.newPendingInvoice("0")
	applied, err := s.service.ApplyToInvoice(s.GetContext(), inv)
	s.NoError(err)
	s.True(applied.IsZero())
}

func (s *CreditServiceSuite) TestApplySkipsExpiredCredits() {
	now := s.GetClock().Now()
	_, err := s.service.Grant(s.GetContext(), testUserID, types.CreditTypePromo,
		decimal.RequireFromString("50.00"), "expired", lo.ToPtr(now.Add(-time.Minute)))
	s.NoError(err)

	inv := s.newPendingInvoice("30.00")
	applied, err := s.service.ApplyToInvoice(s.GetContext(), inv)
	s.NoError(err)
	s.True(applied.IsZero())
	s.True(inv.CreditsApplied.IsZero())
}

func (s *CreditServiceSuite) TestRemainingStaysWithinBounds() {
	id := s.grantAt("10.00", s.GetClock().Now())

	inv := s.newPendingInvoice("4.00")
	_, err := s.service.ApplyToInvoice(s.GetContext(), inv)
	s.NoError(err)

	c, err := s.GetStores().CreditRepo.Get(s.GetContext(), id)
	s.NoError(err)
	s.False(c.RemainingAmount.IsNegative())
	s.True(c.RemainingAmount.LessThanOrEqual(c.Amount))
}

func (s *CreditServiceSuite) TestHistoryListsAllGrants() {
	s.grantAt("10.00", s.GetClock().Now().Add(-time.Hour))
	s.grantAt("5.00", s.GetClock().Now())

	history, err := s.service.History(s.GetContext(), testUserID)
	s.NoError(err)
	s.Len(history, 2)
	s.True(history[0].CreatedAt.After(history[1].CreatedAt))
}
