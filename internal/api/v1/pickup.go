package v1

import (
	"net/http"
	"strconv"

	"github.com/laundrycare/lce/internal/api/dto"
	"github.com/laundrycare/lce/internal/domain/pickup"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/service"
	"github.com/gin-gonic/gin"
)

type PickupHandler struct {
	scheduling service.SchedulingService
	calendar   service.CalendarService
	pricing    service.PricingService
	log        *logger.Logger
}

func NewPickupHandler(
	scheduling service.SchedulingService,
	calendar service.CalendarService,
	pricing service.PricingService,
	log *logger.Logger,
) *PickupHandler {
	return &PickupHandler{
		scheduling: scheduling,
		calendar:   calendar,
		pricing:    pricing,
		log:        log,
	}
}

// @Summary Schedule a pickup
// @Description Book the earliest available date, or the requested date when given
// @Tags Pickups
// @Accept json
// @Produce json
// @Param pickup body dto.SchedulePickupRequest true "Pickup details"
// @Success 201 {object} dto.PickupResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /pickups [post]
func (h *PickupHandler) SchedulePickup(c *gin.Context) {
	var req dto.SchedulePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	var p *pickup.Pickup
	var err error
	if req.RequestedDate != nil {
		p, err = h.scheduling.ScheduleFuture(c.Request.Context(), *req.RequestedDate, req.ToScheduleRequest())
	} else {
		p, err = h.scheduling.ScheduleASAP(c.Request.Context(), req.ToScheduleRequest())
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPickupResponse(p))
}

// @Summary Schedule a recurring pickup series
// @Description Book a series of pickups spaced by the frequency
// @Tags Pickups
// @Accept json
// @Produce json
// @Param pickup body dto.ScheduleRecurringRequest true "Recurring pickup details"
// @Success 201 {array} dto.PickupResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /pickups/recurring [post]
func (h *PickupHandler) ScheduleRecurring(c *gin.Context) {
	var req dto.ScheduleRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	pickups, err := h.scheduling.ScheduleRecurring(c.Request.Context(), req.Frequency, req.Occurrences, req.ToScheduleRequest())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPickupResponses(pickups))
}

// @Summary Quote a pay-per-order pickup
// @Description Price wash & fold plus itemized dry cleaning and heavy duty items
// @Tags Pickups
// @Accept json
// @Produce json
// @Param quote body dto.PPOQuoteRequest true "Order contents"
// @Success 200 {object} service.PPOPriceBreakdown
// @Failure 400 {object} ierr.ErrorResponse
// @Router /pickups/quote [post]
func (h *PickupHandler) QuotePPO(c *gin.Context) {
	var req dto.PPOQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	breakdown, err := h.pricing.CalculatePPOPrice(c.Request.Context(), req.WeightLbs, req.DCItems, req.HDItems)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// @Summary Next available pickup date
// @Tags Pickups
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 422 {object} ierr.ErrorResponse
// @Router /pickups/next-available [get]
func (h *PickupHandler) NextAvailable(c *gin.Context) {
	date, err := h.calendar.NextAvailablePickupDate(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	delivery, err := h.calendar.DeliveryDate(c.Request.Context(), date)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pickup_date":   date.Format("2006-01-02"),
		"delivery_date": delivery.Format("2006-01-02"),
	})
}

// @Summary Upcoming holidays
// @Tags Pickups
// @Produce json
// @Param limit query int false "Maximum holidays to return"
// @Success 200 {array} holiday.Holiday
// @Router /pickups/holidays [get]
func (h *PickupHandler) UpcomingHolidays(c *gin.Context) {
	limit := 10
	if raw, ok := c.GetQuery("limit"); ok {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	holidays, err := h.calendar.UpcomingHolidays(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, holidays)
}
