package v1

import (
	"net/http"

	"github.com/laundrycare/lce/internal/api/dto"
	ierr "github.com/laundrycare/lce/internal/errors"
	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/service"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	service service.BillingService
	log     *logger.Logger
}

func NewInvoiceHandler(
	service service.BillingService,
	log *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		log:     log,
	}
}

// @Summary Get an invoice
// @Description Get an invoice with its line items
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("invoice ID is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	inv, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// @Summary List a user's invoices
// @Description List all invoices belonging to a user, newest first
// @Tags Invoices
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.Error(ierr.NewError("user_id is required").
			WithHint("user_id query parameter is required").
			Mark(ierr.ErrValidation))
		return
	}

	invoices, err := h.service.ListInvoices(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}

// @Summary Pay an invoice
// @Description Settle the payable amount, charging the payment method when credits do not cover it
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.PayInvoiceRequest true "Payment details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 402 {object} ierr.ErrorResponse
// @Router /invoices/{id}/pay [post]
func (h *InvoiceHandler) PayInvoice(c *gin.Context) {
	var req dto.PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	inv, err := h.service.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	txn, err := h.service.RecordTransaction(c.Request.Context(), inv, req.PaymentMethodID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// @Summary Refund an invoice
// @Description Refund the original charge through the gateway, or record a manual refund
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.RefundInvoiceRequest true "Refund details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /invoices/{id}/refund [post]
func (h *InvoiceHandler) RefundInvoice(c *gin.Context) {
	var req dto.RefundInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	inv, err := h.service.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	txn, err := h.service.ProcessRefund(c.Request.Context(), inv, req.Amount, req.Reason)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
