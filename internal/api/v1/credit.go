package v1

import (
	"net/http"

	"github.com/laundrycare/lce/internal/api/dto"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/service"
	"github.com/gin-gonic/gin"
)

type CreditHandler struct {
	service service.CreditService
	log     *logger.Logger
}

func NewCreditHandler(
	service service.CreditService,
	log *logger.Logger,
) *CreditHandler {
	return &CreditHandler{
		service: service,
		log:     log,
	}
}

// @Summary Grant a credit
// @Description Grant a credit to a user's balance
// @Tags Credits
// @Accept json
// @Produce json
// @Param credit body dto.GrantCreditRequest true "Credit details"
// @Success 201 {object} dto.CreditResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /credits [post]
func (h *CreditHandler) GrantCredit(c *gin.Context) {
	var req dto.GrantCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	grant, err := h.service.Grant(c.Request.Context(), req.UserID, req.Type, req.Amount, req.Description, req.ExpiresAt)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCreditResponse(grant))
}

// @Summary Get a user's credit balance
// @Tags Credits
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.BalanceResponse
// @Router /credits/{user_id}/balance [get]
func (h *CreditHandler) GetBalance(c *gin.Context) {
	userID := c.Param("user_id")

	balance, err := h.service.AvailableBalance(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		UserID:  userID,
		Balance: balance,
	})
}

// @Summary Get a user's credit history
// @Description List every credit grant, newest first
// @Tags Credits
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} dto.CreditResponse
// @Router /credits/{user_id}/history [get]
func (h *CreditHandler) GetHistory(c *gin.Context) {
	credits, err := h.service.History(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCreditResponses(credits))
}
