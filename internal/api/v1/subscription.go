package v1

import (
	"context"
	"net/http"

	"github.com/laundrycare/lce/internal/api/dto"
	"github.com/laundrycare/lce/internal/domain/subscription"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/service"
	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	service service.SubscriptionService
	log     *logger.Logger
}

func NewSubscriptionHandler(
	service service.SubscriptionService,
	log *logger.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		log:     log,
	}
}

// @Summary Start a subscription
// @Description Subscribe a user to a plan
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param subscription body dto.CreateSubscriptionRequest true "Subscription details"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	sub, err := h.service.Create(c.Request.Context(), req.UserID, req.PlanID, req.StartDate)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubscriptionResponse(sub))
}

// @Summary Get a subscription
// @Description Get a subscription by ID
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /subscriptions/{id} [get]
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("subscription ID is required").
			WithHint("Subscription ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	sub, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// @Summary List a user's subscriptions
// @Description List all subscriptions belonging to a user
// @Tags Subscriptions
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} dto.SubscriptionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.Error(ierr.NewError("user_id is required").
			WithHint("user_id query parameter is required").
			Mark(ierr.ErrValidation))
		return
	}

	subs, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	responses := make([]*dto.SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		responses = append(responses, dto.ToSubscriptionResponse(sub))
	}
	c.JSON(http.StatusOK, responses)
}

// @Summary Cancel a subscription
// @Description Cancel immediately with a refund, or at the end of the paid period
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body dto.CancelSubscriptionRequest true "Cancellation options"
// @Success 200 {object} dto.CancelSubscriptionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/cancel [post]
func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	var req dto.CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), c.Param("id"), req.Immediate)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCancelSubscriptionResponse(result))
}

// @Summary Pause a subscription
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/pause [post]
func (h *SubscriptionHandler) PauseSubscription(c *gin.Context) {
	sub, err := h.service.Pause(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// @Summary Resume a paused subscription
// @Description Resume and push the next billing date out by the paused duration
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/resume [post]
func (h *SubscriptionHandler) ResumeSubscription(c *gin.Context) {
	sub, err := h.service.Resume(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// @Summary Switch plan with proration
// @Description Swap the plan immediately; unused value on the old plan is credited back
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body dto.ChangePlanRequest true "Target plan"
// @Success 200 {object} dto.SwitchPlanResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/switch [post]
func (h *SubscriptionHandler) SwitchPlan(c *gin.Context) {
	var req dto.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	result, err := h.service.SwitchPlan(c.Request.Context(), c.Param("id"), req.NewPlanID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSwitchPlanResponse(result))
}

// @Summary Upgrade to a larger plan
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body dto.ChangePlanRequest true "Target plan"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/upgrade [post]
func (h *SubscriptionHandler) UpgradeSubscription(c *gin.Context) {
	h.changePlan(c, h.service.Upgrade)
}

// @Summary Downgrade to a smaller plan
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body dto.ChangePlanRequest true "Target plan"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/downgrade [post]
func (h *SubscriptionHandler) DowngradeSubscription(c *gin.Context) {
	h.changePlan(c, h.service.Downgrade)
}

func (h *SubscriptionHandler) changePlan(c *gin.Context, swap func(ctx context.Context, id, newPlanID string) (*subscription.Subscription, error)) {
	var req dto.ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	sub, err := swap(c.Request.Context(), c.Param("id"), req.NewPlanID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubscriptionResponse(sub))
}

// @Summary Settle a pickup's bag usage
// @Description Count bags against the banked quota and compute overage charges
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body dto.BagUsageRequest true "Bag usage"
// @Success 200 {object} service.BagUsageResult
// @Failure 400 {object} ierr.ErrorResponse
// @Router /subscriptions/{id}/usage [post]
func (h *SubscriptionHandler) ProcessBagUsage(c *gin.Context) {
	var req dto.BagUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	result, err := h.service.ProcessBagUsage(c.Request.Context(), c.Param("id"), req.TotalBags, req.TotalWeightLbs)
	if err != nil {
		c.Error(err)
		return
	}
	if _, err := h.service.RecordBagUsage(c.Request.Context(), c.Param("id"), req.PickupID, result); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}
