package service

import (
	"testing"

	"github.com/laundrycare/lce/internal/domain/user"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/testutil"
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BillingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service       BillingService
	creditService CreditService
	userID        string
}

func TestBillingService(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func (s *BillingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	params := newTestParams(&s.BaseServiceTestSuite)
	s.creditService = NewCreditService(params)
	s.service = NewBillingService(params, s.creditService)

	u := &user.User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Name:      "Pat Doe",
		Email:     "pat@example.com",
		Role:      types.UserRoleCustomer,
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().UserRepo.Create(s.GetContext(), u))
	s.userID = u.ID
}

func (s *BillingServiceSuite) simpleItems(unitPrice string) []LineItemInput {
	return []LineItemInput{
		{
			LineType:    types.LineTypeWashFold,
			Description: "Wash & fold",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   decimal.RequireFromString(unitPrice),
		},
	}
}

func (s *BillingServiceSuite) TestCreateInvoiceComputesTotals() {
	items := []LineItemInput{
		{LineType: types.LineTypeWashFold, Description: "Wash & fold", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("30.00")},
		{LineType: types.LineTypePickupFee, Description: "Pickup fee", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("9.99")},
		{LineType: types.LineTypeServiceFee, Description: "Service fee", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("5.00")},
	}

	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, items)
	s.NoError(err)
	s.Equal(types.InvoiceStatusPending, inv.InvoiceStatus)
	s.True(inv.Total.Equal(decimal.RequireFromString("44.99")), inv.Total.String())
	s.True(inv.Subtotal.Equal(inv.Total))
	s.Contains(inv.InvoiceNumber, "INV-")

	lines, err := s.GetStores().InvoiceLineRepo.ListByInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Len(lines, 3)
}

func (s *BillingServiceSuite) TestCreateInvoiceAppliesCreditsImmediately() {
	_, err := s.creditService.Grant(s.GetContext(), s.userID, types.CreditTypeWelcome,
		decimal.RequireFromString("20.00"), "welcome", nil)
	s.NoError(err)

	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, s.simpleItems("44.99"))
	s.NoError(err)
	s.True(inv.CreditsApplied.Equal(decimal.RequireFromString("20.00")))
	s.True(inv.FinalAmount().Equal(decimal.RequireFromString("24.99")))
}

func (s *BillingServiceSuite) TestFinalAmountNeverNegative() {
	_, err := s.creditService.Grant(s.GetContext(), s.userID, types.CreditTypeManual,
		decimal.RequireFromString("100.00"), "big credit", nil)
	s.NoError(err)

	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, s.simpleItems("30.00"))
	s.NoError(err)
	s.True(inv.CreditsApplied.LessThanOrEqual(inv.Total))
	s.False(inv.FinalAmount().IsNegative())
	s.True(inv.FinalAmount().IsZero())
}

func (s *BillingServiceSuite) TestCreateInvoiceRejectsEmptyItems() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, nil)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrValidation)
}

func (s *BillingServiceSuite) TestCreatePPOInvoiceMatchesBreakdown() {
	pricing := NewPricingService(newTestParams(&s.BaseServiceTestSuite))
	breakdown, err := pricing.CalculatePPOPrice(s.GetContext(), decimal.NewFromInt(10), nil, nil)
	s.NoError(err)

	inv, err := s.service.CreatePPOInvoice(s.GetContext(), s.userID, "pick_test", breakdown)
	s.NoError(err)
	s.True(inv.Total.Equal(breakdown.Total), "invoice %s vs breakdown %s", inv.Total, breakdown.Total)
	s.Equal(types.OrderTypePPO, inv.OrderType)
}

func (s *BillingServiceSuite) TestCreateSubscriptionInvoiceWithOverage() {
	usage := &BagUsageResult{
		ExtraBags:      1,
		OverweightLbs:  decimal.RequireFromString("3.5"),
		ExtraBagRate:   decimal.RequireFromString("35.00"),
		OverweightRate: decimal.RequireFromString("2.99"),
	}

	inv, err := s.service.CreateSubscriptionInvoice(s.GetContext(), s.userID, "pick_test", usage)
	s.NoError(err)
	// 1 * 35.00 + 3.5 * 2.99
	s.True(inv.Total.Equal(decimal.RequireFromString("45.465")), inv.Total.String())
	s.Equal(types.OrderTypeSubscription, inv.OrderType)
}

func (s *BillingServiceSuite) TestCreateSubscriptionInvoiceNoOverage() {
	inv, err := s.service.CreateSubscriptionInvoice(s.GetContext(), s.userID, "pick_test", &BagUsageResult{})
	s.NoError(err)
	s.True(inv.Total.IsZero())
	s.Len(inv.Lines, 1)
}

func (s *BillingServiceSuite) TestRecordTransactionFullyCoveredByCredits() {
	_, err := s.creditService.Grant(s.GetContext(), s.userID, types.CreditTypeManual,
		decimal.RequireFromString("100.00"), "credit", nil)
	s.NoError(err)

	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, s.simpleItems("30.00"))
	s.NoError(err)

	txn, err := s.service.RecordTransaction(s.GetContext(), inv, "")
	s.NoError(err)
	s.Equal(types.TransactionTypeCredit, txn.Type)
	s.Equal(types.TransactionStatusCompleted, txn.TxStatus)
	s.True(txn.Amount.IsZero())
	s.Equal(types.InvoiceStatusPaid, inv.InvoiceStatus)
	s.Empty(s.GetGateway().Charges)
}

func (s *BillingServiceSuite) TestRecordTransactionChargesGateway() {
	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, s.simpleItems("44.99"))
	s.NoError(err)

	txn, err := s.service.RecordTransaction(s.GetContext(), inv, "pm_card_visa")
	s.NoError(err)
	s.Equal(types.TransactionTypeCharge, txn.Type)
	s.Equal(types.TransactionStatusCompleted, txn.TxStatus)
	s.NotNil(txn.GatewayRef)
	s.Equal(types.InvoiceStatusPaid, inv.InvoiceStatus)
	s.Len(s.GetGateway().Charges, 1)
	s.True(s.GetGateway().Charges[0].Amount.Equal(decimal.RequireFromString("44.99")))
	s.NotEmpty(s.GetGateway().Charges[0].IdempotencyKey)

	// First charge lazily registered the gateway customer.
	u, err := s.GetStores().UserRepo.Get(s.GetContext(), s.userID)
	s.NoError(err)
	s.True(u.HasStripeCustomer())
}

func (s *BillingServiceSuite) TestRecordTransactionDeclinePersistsFailedAttempt() {
	s.GetGateway().DeclineCharges = true

	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, s.simpleItems("44.99"))
	s.NoError(err)

	_, err = s.service.RecordTransaction(s.GetContext(), inv, "pm_card_declined")
	s.Error(err)
	s.ErrorIs(err, ierr.ErrPaymentFailed)
	s.Equal(types.InvoiceStatusPending, inv.InvoiceStatus)

	txns, err := s.GetStores().TransactionRepo.ListByInvoice(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Len(txns, 1)
	s.Equal(types.TransactionStatusFailed, txns[0].TxStatus)
	s.Equal(types.TransactionTypeCharge, txns[0].Type)
}

func (s *BillingServiceSuite) TestRecordTransactionRequiresPaymentMethod() {
	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, s.simpleItems("44.99"))
	s.NoError(err)

	_, err = s.service.RecordTransaction(s.GetContext(), inv, "")
	s.Error(err)
	s.ErrorIs(err, ierr.ErrValidation)
}

func (s *BillingServiceSuite) TestRecordTransactionRejectsPaidInvoice() {
	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, s.simpleItems("44.99"))
	s.NoError(err)
	_, err = s.service.RecordTransaction(s.GetContext(), inv, "pm_card_visa")
	s.NoError(err)

	_, err = s.service.RecordTransaction(s.GetContext(), inv, "pm_card_visa")
	s.Error(err)
	s.ErrorIs(err, ierr.ErrInvalidState)
}

func (s *BillingServiceSuite) TestProcessRefundThroughGateway() {
	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, s.simpleItems("44.99"))
	s.NoError(err)
	_, err = s.service.RecordTransaction(s.GetContext(), inv, "pm_card_visa")
	s.NoError(err)

	txn, err := s.service.ProcessRefund(s.GetContext(), inv, decimal.RequireFromString("44.99"), "customer request")
	s.NoError(err)
	s.Equal(types.TransactionTypeRefund, txn.Type)
	s.Equal(types.PaymentMethodRefund, txn.PaymentMethod)
	s.NotNil(txn.GatewayRef)
	s.Equal(types.InvoiceStatusRefunded, inv.InvoiceStatus)
	s.Len(s.GetGateway().Refunds, 1)
}

func (s *BillingServiceSuite) TestProcessRefundManualWhenNeverCharged() {
	_, err := s.creditService.Grant(s.GetContext(), s.userID, types.CreditTypeManual,
		decimal.RequireFromString("100.00"), "credit", nil)
	s.NoError(err)
	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, s.simpleItems("30.00"))
	s.NoError(err)
	_, err = s.service.RecordTransaction(s.GetContext(), inv, "")
	s.NoError(err)

	txn, err := s.service.ProcessRefund(s.GetContext(), inv, decimal.RequireFromString("30.00"), "goodwill")
	s.NoError(err)
	s.Equal(types.PaymentMethodManual, txn.PaymentMethod)
	s.Nil(txn.GatewayRef)
	s.Equal(types.InvoiceStatusRefunded, inv.InvoiceStatus)
	s.Empty(s.GetGateway().Refunds)
}

func (s *BillingServiceSuite) TestProcessRefundDeclinedLeavesInvoiceUntouched() {
	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, s.simpleItems("44.99"))
	s.NoError(err)
	_, err = s.service.RecordTransaction(s.GetContext(), inv, "pm_card_visa")
	s.NoError(err)

	s.GetGateway().DeclineRefunds = true
	_, err = s.service.ProcessRefund(s.GetContext(), inv, decimal.RequireFromString("44.99"), "customer request")
	s.Error(err)
	s.ErrorIs(err, ierr.ErrRefundFailed)
	s.Equal(types.InvoiceStatusPaid, inv.InvoiceStatus)
}

func (s *BillingServiceSuite) TestInvoiceLinesMatchTotal() {
	inv, err := s.service.CreateInvoice(s.GetContext(), s.userID, nil, types.OrderTypePPO, []LineItemInput{
		{LineType: types.LineTypeDryClean, Description: "Suits", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("12.50")},
		{LineType: types.LineTypePickupFee, Description: "Pickup fee", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("9.99")},
	})
	s.NoError(err)

	sum := decimal.Zero
	for _, line := range inv.Lines {
		s.True(line.Total.Equal(line.Quantity.Mul(line.UnitPrice)))
		sum = sum.Add(line.Total)
	}
	s.True(sum.Equal(inv.Total))
}
