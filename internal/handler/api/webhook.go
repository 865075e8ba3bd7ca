package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/stewwratt/unbooked-demo/internal/infra/notify"
	"github.com/stewwratt/unbooked-demo/internal/pkg/errs"
	"github.com/stewwratt/unbooked-demo/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives inbound SMS callbacks. Replies are matched to a
// pending offer by the sender's phone number because the carrier callback
// carries no slot identifier.
type WebhookHandler struct {
	offerCommands commands.OfferCommands
	logger        *slog.Logger
}

func NewWebhookHandler(offerCommands commands.OfferCommands, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{offerCommands: offerCommands, logger: logger}
}

// @Summary Inbound SMS webhook
// @Description Resolve a pending offer from a YES/NO SMS reply
// @Tags webhooks
// @Accept x-www-form-urlencoded
// @Produce xml
// @Param Body formData string true "Message body"
// @Param From formData string true "Sender phone"
// @Success 200 {string} string "TwiML response"
// @Router /webhooks/sms [post]
func (h *WebhookHandler) InboundSMS(c *gin.Context) {
	body := c.PostForm("Body")
	from := c.PostForm("From")

	accepted, recognized := notify.ParseReply(body)
	if !recognized {
		h.respondTwiML(c, "Reply YES to accept the offer or NO to decline.")
		return
	}

	_, err := h.offerCommands.ResolveOfferReply(c.Request.Context(), from, accepted)
	if err != nil {
		h.logger.Warn("sms reply resolution failed",
			slog.String("from", from),
			slog.Bool("accepted", accepted),
			slog.String("error", err.Error()),
		)
		switch {
		case errors.Is(err, errs.ErrOfferExpired):
			h.respondTwiML(c, "That offer has expired. The booking stays with you.")
		case errors.Is(err, errs.ErrNoPendingOffer), errors.Is(err, errs.ErrResponderMismatch):
			h.respondTwiML(c, "We couldn't find a pending offer for this number.")
		default:
			h.respondTwiML(c, "Something went wrong processing your reply. Please try again.")
		}
		return
	}

	if accepted {
		h.respondTwiML(c, "Offer accepted. Your payout is on the way once the new booking is confirmed.")
	} else {
		h.respondTwiML(c, "Offer declined. Your booking is unchanged.")
	}
}

func (h *WebhookHandler) respondTwiML(c *gin.Context, message string) {
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, twiML(message))
}

func twiML(message string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><Response><Message>` + message + `</Message></Response>`
}
