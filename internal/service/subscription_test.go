package service

import (
	"testing"
	"time"

	"github.com/laundrycare/lce/internal/domain/plan"
	"github.com/laundrycare/lce/internal/domain/subscription"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/testutil"
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const subTestUserID = "user_sub_test"

type SubscriptionServiceSuite struct {
	testutil.BaseServiceTestSuite
	service       SubscriptionService
	creditService CreditService
}

func TestSubscriptionService(t *testing.T) {
	suite.Run(t, new(SubscriptionServiceSuite))
}

func (s *SubscriptionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.GetClock().SetNow(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	params := newTestParams(&s.BaseServiceTestSuite)
	s.creditService = NewCreditService(params)
	s.service = NewSubscriptionService(params, s.creditService)
}

func (s *SubscriptionServiceSuite) seedPlan(name string, cycle types.BillingCycle, bags int, price string) *plan.Plan {
	p := &plan.Plan{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN),
		Name:              name,
		BillingCycle:      cycle,
		BagsPerMonth:      bags,
		Price:             decimal.RequireFromString(price),
		BagOverageRate:    decimal.RequireFromString("35.00"),
		PricePerLbOverage: decimal.RequireFromString("2.99"),
		IsActive:          true,
		BaseModel:         types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().PlanRepo.Create(s.GetContext(), p))
	return p
}

// seedSubscription creates an active subscription that started daysAgo days
// before the pinned clock.
func (s *SubscriptionServiceSuite) seedSubscription(planID string, daysAgo int) *subscription.Subscription {
	start := s.GetClock().Now().AddDate(0, 0, -daysAgo)
	sub, err := s.service.Create(s.GetContext(), subTestUserID, planID, &start)
	s.Require().NoError(err)
	return sub
}

func (s *SubscriptionServiceSuite) balance() decimal.Decimal {
	bal, err := s.creditService.AvailableBalance(s.GetContext(), subTestUserID)
	s.NoError(err)
	return bal
}

func (s *SubscriptionServiceSuite) TestCreateSetsNextBillingDateOneMonthOut() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")

	sub, err := s.service.Create(s.GetContext(), subTestUserID, p.ID, nil)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive, sub.SubscriptionStatus)
	s.Equal(0, sub.BankedBags)
	s.Equal(time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC), sub.NextBillingDate)
}

func (s *SubscriptionServiceSuite) TestCreateRejectsInactivePlan() {
	p := s.seedPlan("Retired", types.BillingCycleMonthly, 2, "74.99")
	p.IsActive = false
	s.NoError(s.GetStores().PlanRepo.Update(s.GetContext(), p))

	_, err := s.service.Create(s.GetContext(), subTestUserID, p.ID, nil)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrInvalidPlan)
}

func (s *SubscriptionServiceSuite) TestRefundWithinGraceIsFullPrice() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 3)

	refund, err := s.service.CalculateRefund(s.GetContext(), sub)
	s.NoError(err)
	s.True(refund.Equal(decimal.RequireFromString("74.99")), refund.String())
}

func (s *SubscriptionServiceSuite) TestRefundYearlyAfterGraceDeductsPenalty() {
	p := s.seedPlan("Annual", types.BillingCycleYearly, 2, "764.89")
	sub := s.seedSubscription(p.ID, 10)

	refund, err := s.service.CalculateRefund(s.GetContext(), sub)
	s.NoError(err)
	s.True(refund.Equal(decimal.RequireFromString("664.89")), refund.String())
}

func (s *SubscriptionServiceSuite) TestRefundMonthlyAfterGraceIsZero() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 10)

	refund, err := s.service.CalculateRefund(s.GetContext(), sub)
	s.NoError(err)
	s.True(refund.IsZero())
}

func (s *SubscriptionServiceSuite) TestRefundNeverGoesNegative() {
	p := s.seedPlan("Cheap Annual", types.BillingCycleYearly, 1, "50.00")
	sub := s.seedSubscription(p.ID, 10)

	refund, err := s.service.CalculateRefund(s.GetContext(), sub)
	s.NoError(err)
	s.True(refund.IsZero())
}

func (s *SubscriptionServiceSuite) TestRefundNeverIncreasesOverTime() {
	p := s.seedPlan("Annual", types.BillingCycleYearly, 2, "764.89")
	sub := s.seedSubscription(p.ID, 0)

	previous := p.Price.Add(decimal.NewFromInt(1))
	for _, day := range []int{0, 3, 4, 5, 6, 30, 364} {
		s.GetClock().SetNow(sub.StartDate.AddDate(0, 0, day))
		refund, err := s.service.CalculateRefund(s.GetContext(), sub)
		s.NoError(err)
		s.True(refund.LessThanOrEqual(previous), "day %d: %s > %s", day, refund, previous)
		previous = refund
	}
}

func (s *SubscriptionServiceSuite) TestCancelImmediateGrantsRefundCredit() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 3)

	result, err := s.service.Cancel(s.GetContext(), sub.ID, true)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusCancelled, result.Subscription.SubscriptionStatus)
	s.True(result.RefundAmount.Equal(decimal.RequireFromString("74.99")))
	s.Require().NotNil(result.Subscription.CancelledAt)
	s.True(result.Subscription.CancelledAt.Equal(s.GetNow()))
	s.True(s.balance().Equal(decimal.RequireFromString("74.99")))

	history, err := s.creditService.History(s.GetContext(), subTestUserID)
	s.NoError(err)
	s.Require().Len(history, 1)
	s.Equal(types.CreditTypeRefund, history[0].Type)
}

func (s *SubscriptionServiceSuite) TestCancelAtPeriodEndPinsCancelledAtToPeriodBoundary() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 3)
	periodEnd := sub.NextBillingDate

	result, err := s.service.Cancel(s.GetContext(), sub.ID, false)
	s.NoError(err)
	// Status flips immediately even for an end-of-period cancel; only the
	// cancelled_at timestamp carries the period boundary.
	s.Equal(types.SubscriptionStatusCancelled, result.Subscription.SubscriptionStatus)
	s.Require().NotNil(result.Subscription.CancelledAt)
	s.True(result.Subscription.CancelledAt.Equal(periodEnd))
	s.True(result.RefundAmount.IsZero())
	s.True(s.balance().IsZero())
}

func (s *SubscriptionServiceSuite) TestCancelTwiceFails() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 10)

	_, err := s.service.Cancel(s.GetContext(), sub.ID, false)
	s.NoError(err)
	_, err = s.service.Cancel(s.GetContext(), sub.ID, true)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrInvalidState)
}

func (s *SubscriptionServiceSuite) TestResumeExtendsNextBillingByDaysPaused() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 0)
	originalBilling := sub.NextBillingDate

	_, err := s.service.Pause(s.GetContext(), sub.ID)
	s.NoError(err)

	s.GetClock().Advance(7 * 24 * time.Hour)
	resumed, err := s.service.Resume(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(types.SubscriptionStatusActive, resumed.SubscriptionStatus)
	s.Nil(resumed.PausedAt)
	s.Equal(originalBilling.AddDate(0, 0, 7), resumed.NextBillingDate)
}

func (s *SubscriptionServiceSuite) TestPauseRequiresActiveSubscription() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 0)
	_, err := s.service.Pause(s.GetContext(), sub.ID)
	s.NoError(err)

	_, err = s.service.Pause(s.GetContext(), sub.ID)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrInvalidState)
}

func (s *SubscriptionServiceSuite) TestResumeRequiresPausedSubscription() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 0)

	_, err := s.service.Resume(s.GetContext(), sub.ID)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrInvalidState)
}

func (s *SubscriptionServiceSuite) TestSwitchToCheaperPlanGrantsProrationCredit() {
	current := s.seedPlan("Premium", types.BillingCycleMonthly, 4, "74.99")
	cheaper := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "49.99")
	sub := s.seedSubscription(current.ID, 15)
	// Pin exactly 15 of the 30 proration days remaining.
	sub.NextBillingDate = s.GetNow().AddDate(0, 0, 15)
	s.NoError(s.GetStores().SubRepo.Update(s.GetContext(), sub))

	result, err := s.service.SwitchPlan(s.GetContext(), sub.ID, cheaper.ID)
	s.NoError(err)
	s.Equal(cheaper.ID, result.Subscription.PlanID)
	s.True(result.Difference.IsNegative())
	s.True(result.Difference.Round(2).Equal(decimal.RequireFromString("-12.50")), result.Difference.String())
	s.True(s.balance().Round(2).Equal(decimal.RequireFromString("12.50")), s.balance().String())
}

func (s *SubscriptionServiceSuite) TestSwitchToPricierPlanReportsDifferenceWithoutCharging() {
	current := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "49.99")
	pricier := s.seedPlan("Premium", types.BillingCycleMonthly, 4, "74.99")
	sub := s.seedSubscription(current.ID, 15)
	sub.NextBillingDate = s.GetNow().AddDate(0, 0, 15)
	s.NoError(s.GetStores().SubRepo.Update(s.GetContext(), sub))

	result, err := s.service.SwitchPlan(s.GetContext(), sub.ID, pricier.ID)
	s.NoError(err)
	s.Equal(pricier.ID, result.Subscription.PlanID)
	s.True(result.Difference.Round(2).Equal(decimal.RequireFromString("12.50")), result.Difference.String())
	// The shortfall is surfaced to the caller, never collected here.
	s.True(s.balance().IsZero())
}

func (s *SubscriptionServiceSuite) TestSwitchPlanRejectsCancelledSubscription() {
	current := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "49.99")
	other := s.seedPlan("Premium", types.BillingCycleMonthly, 4, "74.99")
	sub := s.seedSubscription(current.ID, 10)
	_, err := s.service.Cancel(s.GetContext(), sub.ID, false)
	s.NoError(err)

	_, err = s.service.SwitchPlan(s.GetContext(), sub.ID, other.ID)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrInvalidState)
}

func (s *SubscriptionServiceSuite) TestUpgradeRequiresLargerBagQuota() {
	current := s.seedPlan("Premium", types.BillingCycleMonthly, 4, "74.99")
	smaller := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "49.99")
	sub := s.seedSubscription(current.ID, 0)

	_, err := s.service.Upgrade(s.GetContext(), sub.ID, smaller.ID)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrInvalidPlan)
}

func (s *SubscriptionServiceSuite) TestUpgradeSwapsPlanWithoutProration() {
	current := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "49.99")
	bigger := s.seedPlan("Premium", types.BillingCycleMonthly, 4, "74.99")
	sub := s.seedSubscription(current.ID, 15)

	upgraded, err := s.service.Upgrade(s.GetContext(), sub.ID, bigger.ID)
	s.NoError(err)
	s.Equal(bigger.ID, upgraded.PlanID)
	s.True(s.balance().IsZero())
}

func (s *SubscriptionServiceSuite) TestDowngradeRequiresSmallerBagQuota() {
	current := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "49.99")
	bigger := s.seedPlan("Premium", types.BillingCycleMonthly, 4, "74.99")
	sub := s.seedSubscription(current.ID, 0)

	_, err := s.service.Downgrade(s.GetContext(), sub.ID, bigger.ID)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrInvalidPlan)
}

func (s *SubscriptionServiceSuite) TestRenewBanksBagsAndAdvancesBilling() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 0)
	sub.BankedBags = 1
	s.NoError(s.GetStores().SubRepo.Update(s.GetContext(), sub))
	originalBilling := sub.NextBillingDate

	s.NoError(s.service.Renew(s.GetContext(), sub))
	s.Equal(3, sub.BankedBags)
	s.Equal(types.AddClampedDate(originalBilling, 0, 1, 0), sub.NextBillingDate)
}

func (s *SubscriptionServiceSuite) TestRenewIsNoOpForNonActive() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 0)
	_, err := s.service.Pause(s.GetContext(), sub.ID)
	s.NoError(err)

	paused, err := s.service.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	originalBilling := paused.NextBillingDate

	s.NoError(s.service.Renew(s.GetContext(), paused))
	s.Equal(0, paused.BankedBags)
	s.Equal(originalBilling, paused.NextBillingDate)
}

func (s *SubscriptionServiceSuite) TestProcessDueRenewalsOnlyTouchesElapsed() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	due1 := s.seedSubscription(p.ID, 40)
	due2 := s.seedSubscription(p.ID, 35)
	notDue := s.seedSubscription(p.ID, 5)

	count, err := s.service.ProcessDueRenewals(s.GetContext())
	s.NoError(err)
	s.Equal(2, count)

	for _, id := range []string{due1.ID, due2.ID} {
		renewed, err := s.service.Get(s.GetContext(), id)
		s.NoError(err)
		s.Equal(2, renewed.BankedBags)
	}
	untouched, err := s.service.Get(s.GetContext(), notDue.ID)
	s.NoError(err)
	s.Equal(0, untouched.BankedBags)
}

func (s *SubscriptionServiceSuite) TestProcessBagUsageSplitsQuotaAndOverage() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 0)
	sub.BankedBags = 2
	s.NoError(s.GetStores().SubRepo.Update(s.GetContext(), sub))

	result, err := s.service.ProcessBagUsage(s.GetContext(), sub.ID, 3, decimal.RequireFromString("65"))
	s.NoError(err)
	s.Equal(3, result.TotalBags)
	s.Equal(2, result.BagsFromQuota)
	s.Equal(1, result.ExtraBags)
	s.True(result.ExpectedWeightLbs.Equal(decimal.RequireFromString("61.5")), result.ExpectedWeightLbs.String())
	s.True(result.OverweightLbs.Equal(decimal.RequireFromString("3.5")), result.OverweightLbs.String())
	s.True(result.ExtraBagCharge.Equal(decimal.RequireFromString("35.00")))
	s.True(result.OverweightCharge.Equal(decimal.RequireFromString("10.465")), result.OverweightCharge.String())
	s.True(result.TotalCharge.Equal(decimal.RequireFromString("45.465")))
	s.Equal(0, result.RemainingBankedBags)

	stored, err := s.service.Get(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Equal(0, stored.BankedBags)
}

func (s *SubscriptionServiceSuite) TestProcessBagUsageFullyCoveredByBank() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 0)
	sub.BankedBags = 5
	s.NoError(s.GetStores().SubRepo.Update(s.GetContext(), sub))

	result, err := s.service.ProcessBagUsage(s.GetContext(), sub.ID, 2, decimal.RequireFromString("40"))
	s.NoError(err)
	s.Equal(2, result.BagsFromQuota)
	s.Equal(0, result.ExtraBags)
	s.True(result.OverweightLbs.IsZero())
	s.True(result.TotalCharge.IsZero())
	s.Equal(3, result.RemainingBankedBags)
}

func (s *SubscriptionServiceSuite) TestProcessBagUsageRejectsNonPositiveBags() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 0)

	_, err := s.service.ProcessBagUsage(s.GetContext(), sub.ID, 0, decimal.Zero)
	s.Error(err)
	s.ErrorIs(err, ierr.ErrValidation)
}

func (s *SubscriptionServiceSuite) TestRecordBagUsagePersistsSettlement() {
	p := s.seedPlan("Basic", types.BillingCycleMonthly, 2, "74.99")
	sub := s.seedSubscription(p.ID, 0)
	sub.BankedBags = 2
	s.NoError(s.GetStores().SubRepo.Update(s.GetContext(), sub))

	result, err := s.service.ProcessBagUsage(s.GetContext(), sub.ID, 3, decimal.RequireFromString("65"))
	s.NoError(err)

	record, err := s.service.RecordBagUsage(s.GetContext(), sub.ID, "pick_test", result)
	s.NoError(err)
	s.Equal(sub.ID, record.SubscriptionID)
	s.Equal(2, record.BagsUsed)
	s.Equal(1, record.ExtraBags)

	listed, err := s.GetStores().BagUsageRepo.ListBySubscription(s.GetContext(), sub.ID)
	s.NoError(err)
	s.Len(listed, 1)
}
