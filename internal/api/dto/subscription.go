package dto

import (
	"time"

	"github.com/laundrycare/lce/internal/domain/subscription"
	"github.com/laundrycare/lce/internal/service"
	"github.com/laundrycare/lce/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// CreateSubscriptionRequest represents the request payload for starting a subscription
type CreateSubscriptionRequest struct {
	UserID    string     `json:"user_id" binding:"required"`
	PlanID    string     `json:"plan_id" binding:"required"`
	StartDate *time.Time `json:"start_date,omitempty"`
}

func (r *CreateSubscriptionRequest) Validate() error {
	return validator.New().Struct(r)
}

// CancelSubscriptionRequest represents the request payload for cancelling a subscription
type CancelSubscriptionRequest struct {
	// Immediate cancels now with a refund; otherwise the subscription runs
	// out the paid period.
	Immediate bool `json:"immediate"`
}

// ChangePlanRequest represents the request payload for plan switches,
// upgrades and downgrades
type ChangePlanRequest struct {
	NewPlanID string `json:"new_plan_id" binding:"required"`
}

func (r *ChangePlanRequest) Validate() error {
	return validator.New().Struct(r)
}

// BagUsageRequest represents the request payload for settling a pickup's bags
type BagUsageRequest struct {
	PickupID       string          `json:"pickup_id" binding:"required"`
	TotalBags      int             `json:"total_bags" binding:"required,gt=0"`
	TotalWeightLbs decimal.Decimal `json:"total_weight_lbs"`
}

func (r *BagUsageRequest) Validate() error {
	return validator.New().Struct(r)
}

// SubscriptionResponse represents the subscription response structure
type SubscriptionResponse struct {
	ID              string                   `json:"id"`
	UserID          string                   `json:"user_id"`
	PlanID          string                   `json:"plan_id"`
	Status          types.SubscriptionStatus `json:"status"`
	StartDate       time.Time                `json:"start_date"`
	NextBillingDate time.Time                `json:"next_billing_date"`
	BankedBags      int                      `json:"banked_bags"`
	PausedAt        *time.Time               `json:"paused_at,omitempty"`
	CancelledAt     *time.Time               `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

func ToSubscriptionResponse(sub *subscription.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:              sub.ID,
		UserID:          sub.UserID,
		PlanID:          sub.PlanID,
		Status:          sub.SubscriptionStatus,
		StartDate:       sub.StartDate,
		NextBillingDate: sub.NextBillingDate,
		BankedBags:      sub.BankedBags,
		PausedAt:        sub.PausedAt,
		CancelledAt:     sub.CancelledAt,
		CreatedAt:       sub.CreatedAt,
		UpdatedAt:       sub.UpdatedAt,
	}
}

// CancelSubscriptionResponse carries the terminal subscription and any
// refund credited back.
type CancelSubscriptionResponse struct {
	Subscription *SubscriptionResponse `json:"subscription"`
	RefundAmount decimal.Decimal       `json:"refund_amount"`
}

func ToCancelSubscriptionResponse(result *service.CancelResult) *CancelSubscriptionResponse {
	return &CancelSubscriptionResponse{
		Subscription: ToSubscriptionResponse(result.Subscription),
		RefundAmount: result.RefundAmount,
	}
}

// SwitchPlanResponse carries the updated subscription and the prorated cost
// delta for the remaining cycle.
type SwitchPlanResponse struct {
	Subscription *SubscriptionResponse `json:"subscription"`
	Difference   decimal.Decimal       `json:"difference"`
}

func ToSwitchPlanResponse(result *service.SwitchPlanResult) *SwitchPlanResponse {
	return &SwitchPlanResponse{
		Subscription: ToSubscriptionResponse(result.Subscription),
		Difference:   result.Difference,
	}
}
