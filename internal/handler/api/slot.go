package api

import (
	"errors"
	"net/http"

	reqdto "github.com/stewwratt/unbooked-demo/internal/handler/dto/request"
	resdto "github.com/stewwratt/unbooked-demo/internal/handler/dto/response"
	"github.com/stewwratt/unbooked-demo/internal/pkg/errs"
	"github.com/stewwratt/unbooked-demo/internal/usecase/commands"
	"github.com/stewwratt/unbooked-demo/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	bookingCommands commands.BookingCommands
	offerCommands   commands.OfferCommands
	slotQueries     queries.SlotQueries
}

func NewSlotHandler(
	bookingCommands commands.BookingCommands,
	offerCommands commands.OfferCommands,
	slotQueries queries.SlotQueries,
) *SlotHandler {
	return &SlotHandler{
		bookingCommands: bookingCommands,
		offerCommands:   offerCommands,
		slotQueries:     slotQueries,
	}
}

// @Summary List upcoming slots
// @Description List upcoming service slots with status and effective price
// @Tags slots
// @Produce json
// @Success 200 {array} resdto.SlotListItemResponse
// @Failure 503 {object} map[string]string
// @Router /slots [get]
func (h *SlotHandler) ListSlots(c *gin.Context) {
	views, err := h.slotQueries.ListUpcoming(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	response := make([]resdto.SlotListItemResponse, len(views))
	for i, view := range views {
		response[i] = resdto.FromSlotView(view)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get slot price
// @Description Current effective price: recommended once booked, original while available
// @Tags slots
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} resdto.PriceResponse
// @Failure 404 {object} map[string]string
// @Router /slots/{id}/price [get]
func (h *SlotHandler) GetPrice(c *gin.Context) {
	price, err := h.slotQueries.GetPrice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.PriceResponse{Price: price})
}

// @Summary Create booking
// @Description Authorize payment and append a booking to the slot ledger
// @Tags slots
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /slots/{id}/bookings [post]
func (h *SlotHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	slot, err := h.bookingCommands.CreateBooking(c.Request.Context(), c.Param("id"), commands.CreateBookingInput{
		Price:         req.Price,
		Name:          req.Name,
		Contact:       req.Email,
		Phone:         req.Phone,
		Location:      req.Location,
		DesiredOffer:  req.DesiredOffer,
		PayoutAccount: req.PayoutAccount,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSlot(slot))
}

// @Summary Add offer
// @Description Place an offer on the active booking and alert the holder by SMS
// @Tags slots
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param request body reqdto.AddOfferRequest true "Offer request"
// @Success 201 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /slots/{id}/offers [post]
func (h *SlotHandler) AddOffer(c *gin.Context) {
	var req reqdto.AddOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.offerCommands.AddOffer(c.Request.Context(), c.Param("id"), commands.AddOfferInput{
		OfferAmount: req.OfferAmount,
		OfferBy:     req.Email,
		Name:        req.Name,
		Phone:       req.Phone,
		Location:    req.Location,
	})
	if err != nil {
		// The offer is committed even when the holder alert failed; the
		// caller sees the partial success instead of a rollback.
		if errors.Is(err, errs.ErrNotificationFailed) && result != nil {
			c.JSON(http.StatusCreated, gin.H{
				"slot":    resdto.FromSlot(result.Slot),
				"warning": "offer recorded, holder notification failed",
			})
			return
		}
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSlot(result.Slot))
}

// @Summary Set suggested offer
// @Description Set the seller's suggested offer floor on a slot
// @Tags slots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param request body reqdto.SetSuggestedOfferRequest true "Suggested offer"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /slots/{id}/suggested-offer [put]
func (h *SlotHandler) SetSuggestedOffer(c *gin.Context) {
	var req reqdto.SetSuggestedOfferRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	slot, err := h.offerCommands.SetSuggestedOffer(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlot(slot))
}

func (h *SlotHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Slot not found",
		})
	case errors.Is(err, errs.ErrNoActiveBooking):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "No active bookings found",
		})
	case errors.Is(err, errs.ErrOfferTooLow):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Offer must be higher than the current booking price",
		})
	case errors.Is(err, errs.ErrPaymentAuthorizationFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Unable to authorize payment",
		})
	case errors.Is(err, errs.ErrInvalidLedger):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking data",
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
