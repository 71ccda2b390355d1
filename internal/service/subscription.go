package service

import (
	"context"
	"time"

	"github.com/laundrycare/lce/internal/domain/plan"
	"github.com/laundrycare/lce/internal/domain/subscription"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/types"
	"github.com/shopspring/decimal"
)

// CancelResult is the outcome of a cancellation: the terminal subscription
// plus the refund credited for immediate cancels.
type CancelResult struct {
	Subscription *subscription.Subscription `json:"subscription"`
	RefundAmount decimal.Decimal            `json:"refund_amount"`
}

// SwitchPlanResult is the outcome of a plan switch. Difference is the
// prorated cost delta for the remaining cycle: negative means the user was
// credited, positive means the remainder costs more on the new plan.
type SwitchPlanResult struct {
	Subscription *subscription.Subscription `json:"subscription"`
	Difference   decimal.Decimal            `json:"difference"`
}

// BagUsageResult is the settlement of one pickup against the bag bank.
type BagUsageResult struct {
	TotalBags           int             `json:"total_bags"`
	BagsFromQuota       int             `json:"bags_from_quota"`
	ExtraBags           int             `json:"extra_bags"`
	TotalWeightLbs      decimal.Decimal `json:"total_weight_lbs"`
	ExpectedWeightLbs   decimal.Decimal `json:"expected_weight_lbs"`
	OverweightLbs       decimal.Decimal `json:"overweight_lbs"`
	ExtraBagRate        decimal.Decimal `json:"extra_bag_rate"`
	OverweightRate      decimal.Decimal `json:"overweight_rate"`
	ExtraBagCharge      decimal.Decimal `json:"extra_bag_charge"`
	OverweightCharge    decimal.Decimal `json:"overweight_charge"`
	TotalCharge         decimal.Decimal `json:"total_charge"`
	RemainingBankedBags int             `json:"remaining_banked_bags"`
}

// SubscriptionService owns the subscription state machine: creation,
// cancellation with refund computation, pause/resume, plan switching,
// renewal and bag-usage settlement.
type SubscriptionService interface {
	Create(ctx context.Context, userID, planID string, startDate *time.Time) (*subscription.Subscription, error)
	Get(ctx context.Context, id string) (*subscription.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*subscription.Subscription, error)

	// Cancel terminates the subscription. Immediate cancels compute a
	// refund and grant it as a credit atomically with the status change;
	// end-of-period cancels record the period end as the cancelled_at
	// timestamp.
	Cancel(ctx context.Context, id string, immediate bool) (*CancelResult, error)

	// CalculateRefund returns the refund due if the subscription were
	// cancelled immediately right now.
	CalculateRefund(ctx context.Context, sub *subscription.Subscription) (decimal.Decimal, error)

	Pause(ctx context.Context, id string) (*subscription.Subscription, error)
	Resume(ctx context.Context, id string) (*subscription.Subscription, error)

	// SwitchPlan swaps the plan immediately and prorates the remaining
	// cycle. A negative difference is granted back as a credit.
	SwitchPlan(ctx context.Context, id, newPlanID string) (*SwitchPlanResult, error)

	// Upgrade swaps to a plan with a strictly larger bag quota, without
	// proration.
	Upgrade(ctx context.Context, id, newPlanID string) (*subscription.Subscription, error)

	// Downgrade swaps to a plan with a strictly smaller bag quota,
	// without proration.
	Downgrade(ctx context.Context, id, newPlanID string) (*subscription.Subscription, error)

	// Renew advances the billing date by one cycle and banks the plan's
	// bag quota. No-op for non-active subscriptions.
	Renew(ctx context.Context, sub *subscription.Subscription) error

	// ProcessDueRenewals renews every active subscription whose next
	// billing date has elapsed and returns how many were renewed.
	ProcessDueRenewals(ctx context.Context) (int, error)

	// ProcessBagUsage settles a pickup's bags against the bank, decrements
	// banked bags and returns the full breakdown. The BagUsage record is
	// persisted by a separate RecordBagUsage call.
	ProcessBagUsage(ctx context.Context, id string, totalBags int, totalWeightLbs decimal.Decimal) (*BagUsageResult, error)

	// RecordBagUsage persists a settlement as an immutable BagUsage row.
	RecordBagUsage(ctx context.Context, subscriptionID, pickupID string, usage *BagUsageResult) (*subscription.BagUsage, error)
}

type subscriptionService struct {
	ServiceParams
	creditService CreditService
}

func NewSubscriptionService(params ServiceParams, creditService CreditService) SubscriptionService {
	return &subscriptionService{
		ServiceParams: params,
		creditService: creditService,
	}
}

func (s *subscriptionService) Create(ctx context.Context, userID, planID string, startDate *time.Time) (*subscription.Subscription, error) {
	p, err := s.PlanRepo.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ierr.NewError("plan is not active").
			WithHintf("Plan %s is not available for new subscriptions", p.Name).
			WithReportableDetails(map[string]any{
				"plan_id": planID,
			}).
			Mark(ierr.ErrInvalidPlan)
	}

	start := s.Clock.Now()
	if startDate != nil {
		start = *startDate
	}
	nextBilling, err := types.NextBillingDate(start, p.BillingCycle)
	if err != nil {
		return nil, err
	}

	sub := &subscription.Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		UserID:             userID,
		PlanID:             planID,
		SubscriptionStatus: types.SubscriptionStatusActive,
		StartDate:          start,
		NextBillingDate:    nextBilling,
		BankedBags:         0,
		BaseModel:          types.GetDefaultBaseModel(ctx),
	}
	if err := s.SubRepo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("created subscription",
		"subscription_id", sub.ID,
		"user_id", userID,
		"plan_id", planID,
		"next_billing_date", nextBilling.Format("2006-01-02"),
	)
	return sub, nil
}

func (s *subscriptionService) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	return s.SubRepo.Get(ctx, id)
}

func (s *subscriptionService) ListByUser(ctx context.Context, userID string) ([]*subscription.Subscription, error) {
	return s.SubRepo.ListByUser(ctx, userID)
}

func (s *subscriptionService) Cancel(ctx context.Context, id string, immediate bool) (*CancelResult, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.IsCancelled() {
		return nil, ierr.NewError("subscription is already cancelled").
			WithHint("The subscription has already been cancelled").
			WithReportableDetails(map[string]any{
				"subscription_id": id,
			}).
			Mark(ierr.ErrInvalidState)
	}

	refund := decimal.Zero
	if immediate {
		refund, err = s.CalculateRefund(ctx, sub)
		if err != nil {
			return nil, err
		}
	}

	now := s.Clock.Now()
	cancelledAt := now
	if !immediate {
		// End-of-period cancel records the period boundary as the cancel
		// timestamp while the status flips right away.
		cancelledAt = sub.NextBillingDate
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub.SubscriptionStatus = types.SubscriptionStatusCancelled
		sub.PausedAt = nil
		sub.CancelledAt = &cancelledAt
		sub.UpdatedAt = now
		sub.UpdatedBy = types.GetUserID(ctx)
		if err := s.SubRepo.Update(ctx, sub); err != nil {
			return err
		}
		if refund.IsPositive() {
			_, err := s.creditService.Grant(ctx, sub.UserID, types.CreditTypeRefund, refund, "Subscription cancellation refund", nil)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("cancelled subscription",
		"subscription_id", sub.ID,
		"immediate", immediate,
		"refund_amount", refund,
	)
	return &CancelResult{Subscription: sub, RefundAmount: refund}, nil
}

// CalculateRefund implements the grace-window refund policy: a full refund
// within the grace period, then price minus the annual penalty for yearly
// plans and nothing for monthly plans.
func (s *subscriptionService) CalculateRefund(ctx context.Context, sub *subscription.Subscription) (decimal.Decimal, error) {
	p, err := s.PlanRepo.Get(ctx, sub.PlanID)
	if err != nil {
		return decimal.Zero, err
	}

	daysSinceStart := sub.DaysSinceStart(s.Clock.Now())
	if daysSinceStart < s.Config.Billing.RefundGraceDays {
		return p.Price, nil
	}
	if p.BillingCycle == types.BillingCycleYearly {
		refund := p.Price.Sub(decimal.NewFromFloat(s.Config.Billing.RefundPenaltyAnnual))
		if refund.IsNegative() {
			return decimal.Zero, nil
		}
		return refund, nil
	}
	return decimal.Zero, nil
}

func (s *subscriptionService) Pause(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sub.IsActive() {
		return nil, ierr.NewError("can only pause active subscriptions").
			WithHint("Only an active subscription can be paused").
			WithReportableDetails(map[string]any{
				"subscription_id": id,
				"status":          sub.SubscriptionStatus,
			}).
			Mark(ierr.ErrInvalidState)
	}

	now := s.Clock.Now()
	sub.SubscriptionStatus = types.SubscriptionStatusPaused
	sub.PausedAt = &now
	sub.UpdatedAt = now
	sub.UpdatedBy = types.GetUserID(ctx)
	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("paused subscription", "subscription_id", sub.ID)
	return sub, nil
}

func (s *subscriptionService) Resume(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sub.IsPaused() {
		return nil, ierr.NewError("can only resume paused subscriptions").
			WithHint("Only a paused subscription can be resumed").
			WithReportableDetails(map[string]any{
				"subscription_id": id,
				"status":          sub.SubscriptionStatus,
			}).
			Mark(ierr.ErrInvalidState)
	}

	now := s.Clock.Now()
	daysPaused := types.DaysBetween(*sub.PausedAt, now)

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub.NextBillingDate = sub.NextBillingDate.AddDate(0, 0, daysPaused)
		sub.SubscriptionStatus = types.SubscriptionStatusActive
		sub.PausedAt = nil
		sub.UpdatedAt = now
		sub.UpdatedBy = types.GetUserID(ctx)
		return s.SubRepo.Update(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("resumed subscription",
		"subscription_id", sub.ID,
		"days_paused", daysPaused,
		"next_billing_date", sub.NextBillingDate.Format("2006-01-02"),
	)
	return sub, nil
}

func (s *subscriptionService) SwitchPlan(ctx context.Context, id, newPlanID string) (*SwitchPlanResult, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.IsCancelled() {
		return nil, ierr.NewError("cannot switch plan on a cancelled subscription").
			WithHint("The subscription has been cancelled").
			WithReportableDetails(map[string]any{
				"subscription_id": id,
			}).
			Mark(ierr.ErrInvalidState)
	}

	currentPlan, err := s.PlanRepo.Get(ctx, sub.PlanID)
	if err != nil {
		return nil, err
	}
	newPlan, err := s.PlanRepo.Get(ctx, newPlanID)
	if err != nil {
		return nil, err
	}

	// Proration uses the current plan's fixed cycle length for both
	// sides of the comparison.
	now := s.Clock.Now()
	cycleDays := decimal.NewFromInt(int64(currentPlan.BillingCycle.CycleDays()))
	daysRemaining := decimal.Zero
	if sub.NextBillingDate.After(now) {
		daysRemaining = decimal.NewFromInt(int64(types.DaysBetween(now, sub.NextBillingDate)))
	}

	unusedValue := currentPlan.Price.Div(cycleDays).Mul(daysRemaining)
	costForRemaining := newPlan.Price.Div(cycleDays).Mul(daysRemaining)
	difference := costForRemaining.Sub(unusedValue)

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub.PlanID = newPlanID
		sub.UpdatedAt = now
		sub.UpdatedBy = types.GetUserID(ctx)
		if err := s.SubRepo.Update(ctx, sub); err != nil {
			return err
		}
		if difference.IsNegative() {
			_, err := s.creditService.Grant(ctx, sub.UserID, types.CreditTypeManual, difference.Abs(), "Plan switch proration credit", nil)
			return err
		}
		// A positive difference is reported to the caller but not
		// collected automatically.
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("switched subscription plan",
		"subscription_id", sub.ID,
		"old_plan_id", currentPlan.ID,
		"new_plan_id", newPlanID,
		"difference", difference,
	)
	return &SwitchPlanResult{Subscription: sub, Difference: difference}, nil
}

func (s *subscriptionService) Upgrade(ctx context.Context, id, newPlanID string) (*subscription.Subscription, error) {
	return s.swapPlan(ctx, id, newPlanID, true)
}

func (s *subscriptionService) Downgrade(ctx context.Context, id, newPlanID string) (*subscription.Subscription, error) {
	return s.swapPlan(ctx, id, newPlanID, false)
}

func (s *subscriptionService) swapPlan(ctx context.Context, id, newPlanID string, upgrade bool) (*subscription.Subscription, error) {
	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.IsCancelled() {
		return nil, ierr.NewError("cannot change plan on a cancelled subscription").
			WithHint("The subscription has been cancelled").
			WithReportableDetails(map[string]any{
				"subscription_id": id,
			}).
			Mark(ierr.ErrInvalidState)
	}

	currentPlan, err := s.PlanRepo.Get(ctx, sub.PlanID)
	if err != nil {
		return nil, err
	}
	newPlan, err := s.PlanRepo.Get(ctx, newPlanID)
	if err != nil {
		return nil, err
	}

	if err := validatePlanOrdering(currentPlan, newPlan, upgrade); err != nil {
		return nil, err
	}

	sub.PlanID = newPlanID
	sub.UpdatedAt = s.Clock.Now()
	sub.UpdatedBy = types.GetUserID(ctx)
	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("changed subscription plan",
		"subscription_id", sub.ID,
		"new_plan_id", newPlanID,
		"upgrade", upgrade,
	)
	return sub, nil
}

func validatePlanOrdering(current, next *plan.Plan, upgrade bool) error {
	if upgrade && next.BagsPerMonth <= current.BagsPerMonth {
		return ierr.NewError("upgrade target must have a larger bag quota").
			WithHintf("Plan %s does not have more bags than your current plan", next.Name).
			WithReportableDetails(map[string]any{
				"current_bags": current.BagsPerMonth,
				"new_bags":     next.BagsPerMonth,
			}).
			Mark(ierr.ErrInvalidPlan)
	}
	if !upgrade && next.BagsPerMonth >= current.BagsPerMonth {
		return ierr.NewError("downgrade target must have a smaller bag quota").
			WithHintf("Plan %s does not have fewer bags than your current plan", next.Name).
			WithReportableDetails(map[string]any{
				"current_bags": current.BagsPerMonth,
				"new_bags":     next.BagsPerMonth,
			}).
			Mark(ierr.ErrInvalidPlan)
	}
	return nil
}

func (s *subscriptionService) Renew(ctx context.Context, sub *subscription.Subscription) error {
	if !sub.IsActive() {
		return nil
	}

	p, err := s.PlanRepo.Get(ctx, sub.PlanID)
	if err != nil {
		return err
	}
	nextBilling, err := types.NextBillingDate(sub.NextBillingDate, p.BillingCycle)
	if err != nil {
		return err
	}

	sub.NextBillingDate = nextBilling
	sub.BankedBags += p.BagsPerMonth
	sub.UpdatedAt = s.Clock.Now()
	sub.UpdatedBy = types.GetUserID(ctx)
	if err := s.SubRepo.Update(ctx, sub); err != nil {
		return err
	}

	s.Logger.Infow("renewed subscription",
		"subscription_id", sub.ID,
		"next_billing_date", nextBilling.Format("2006-01-02"),
		"banked_bags", sub.BankedBags,
	)
	return nil
}

func (s *subscriptionService) ProcessDueRenewals(ctx context.Context) (int, error) {
	due, err := s.SubRepo.ListDueForRenewal(ctx, s.Clock.Now())
	if err != nil {
		return 0, err
	}

	renewed := 0
	for _, sub := range due {
		if err := s.Renew(ctx, sub); err != nil {
			s.Logger.Errorw("failed to renew subscription",
				"subscription_id", sub.ID,
				"error", err,
			)
			continue
		}
		renewed++
	}
	return renewed, nil
}

func (s *subscriptionService) ProcessBagUsage(ctx context.Context, id string, totalBags int, totalWeightLbs decimal.Decimal) (*BagUsageResult, error) {
	if totalBags <= 0 {
		return nil, ierr.NewError("total bags must be positive").
			WithHint("A settlement needs at least one bag").
			WithReportableDetails(map[string]any{
				"subscription_id": id,
				"total_bags":      totalBags,
			}).
			Mark(ierr.ErrValidation)
	}

	sub, err := s.SubRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.PlanRepo.Get(ctx, sub.PlanID)
	if err != nil {
		return nil, err
	}

	bagsFromQuota := totalBags
	if sub.BankedBags < bagsFromQuota {
		bagsFromQuota = sub.BankedBags
	}
	extraBags := totalBags - bagsFromQuota

	expectedWeight := decimal.NewFromInt(int64(totalBags)).Mul(decimal.NewFromFloat(s.Config.Billing.BagWeightLbs))
	overweightLbs := totalWeightLbs.Sub(expectedWeight)
	if overweightLbs.IsNegative() {
		overweightLbs = decimal.Zero
	}

	extraBagCharge := decimal.NewFromInt(int64(extraBags)).Mul(p.BagOverageRate)
	overweightCharge := overweightLbs.Mul(p.PricePerLbOverage)

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		sub.BankedBags -= bagsFromQuota
		sub.UpdatedAt = s.Clock.Now()
		sub.UpdatedBy = types.GetUserID(ctx)
		return s.SubRepo.Update(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	result := &BagUsageResult{
		TotalBags:           totalBags,
		BagsFromQuota:       bagsFromQuota,
		ExtraBags:           extraBags,
		TotalWeightLbs:      totalWeightLbs,
		ExpectedWeightLbs:   expectedWeight,
		OverweightLbs:       overweightLbs,
		ExtraBagRate:        p.BagOverageRate,
		OverweightRate:      p.PricePerLbOverage,
		ExtraBagCharge:      extraBagCharge,
		OverweightCharge:    overweightCharge,
		TotalCharge:         extraBagCharge.Add(overweightCharge),
		RemainingBankedBags: sub.BankedBags,
	}

	s.Logger.Infow("settled bag usage",
		"subscription_id", sub.ID,
		"bags_from_quota", bagsFromQuota,
		"extra_bags", extraBags,
		"overweight_lbs", overweightLbs,
		"remaining_banked_bags", sub.BankedBags,
	)
	return result, nil
}

func (s *subscriptionService) RecordBagUsage(ctx context.Context, subscriptionID, pickupID string, usage *BagUsageResult) (*subscription.BagUsage, error) {
	record := &subscription.BagUsage{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BAG_USAGE),
		SubscriptionID: subscriptionID,
		PickupID:       pickupID,
		BagsUsed:       usage.BagsFromQuota,
		ExtraBags:      usage.ExtraBags,
		OverweightLbs:  usage.OverweightLbs,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	if err := s.BagUsageRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
