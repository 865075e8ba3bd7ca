package api

import (
	"errors"
	"net/http"

	reqdto "github.com/stewwratt/unbooked-demo/internal/handler/dto/request"
	resdto "github.com/stewwratt/unbooked-demo/internal/handler/dto/response"
	"github.com/stewwratt/unbooked-demo/internal/pkg/errs"
	"github.com/stewwratt/unbooked-demo/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{paymentCommands: paymentCommands}
}

// @Summary Create payment intent
// @Description Authorize a manual-capture hold for a slot booking
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.CreateIntentRequest true "Intent request"
// @Success 201 {object} resdto.IntentResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Router /payments/intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req reqdto.CreateIntentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	intent, err := h.paymentCommands.CreateIntent(c.Request.Context(), req.Amount, req.Currency, req.SlotID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.IntentResponse{ClientSecret: intent.ClientSecret})
}

// @Summary Capture booking payment
// @Description Capture the hold for a slot's active booking after service delivery
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param request body reqdto.CaptureRequest true "Capture request"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/{id}/capture [post]
func (h *PaymentHandler) CaptureBooking(c *gin.Context) {
	var req reqdto.CaptureRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	slot, err := h.paymentCommands.CaptureBooking(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlot(slot))
}

func (h *PaymentHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Slot not found",
		})
	case errors.Is(err, errs.ErrNoActiveBooking):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No active bookings found",
		})
	case errors.Is(err, errs.ErrPaymentAuthorizationFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Unable to authorize payment",
		})
	case errors.Is(err, errs.ErrPaymentCaptureFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Unable to capture payment",
		})
	case errors.Is(err, errs.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Slot store temporarily unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
