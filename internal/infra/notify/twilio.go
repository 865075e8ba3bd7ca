// Package notify sends SMS through a Twilio-style messaging API and parses
// the yes/no replies that come back on the webhook.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/stewwratt/unbooked-demo/internal/infra"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
)

type Client struct {
	hc     *http.Client
	cfg    config.TwilioConfig
	logger *slog.Logger
}

func New(cfg config.TwilioConfig, logger *slog.Logger) *Client {
	return &Client{
		hc:     &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

// Send delivers one SMS and returns the gateway's delivery id.
func (c *Client) Send(ctx context.Context, toPhone, body string) (string, error) {
	form := url.Values{}
	form.Set("To", toPhone)
	form.Set("From", c.cfg.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.cfg.BaseURL, url.PathEscape(c.cfg.AccountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", infra.WrapGatewayErr(infra.KindUnavailable, "building SMS request", err)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", infra.WrapGatewayErr(infra.KindUnavailable, "SMS gateway unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", infra.WrapGatewayErr(infra.KindUnavailable, "reading SMS response", err)
	}

	if resp.StatusCode >= 400 {
		return "", infra.WrapGatewayErr(infra.KindRemoteRejected,
			fmt.Sprintf("SMS gateway rejected message (status=%d)", resp.StatusCode), nil)
	}

	var msg struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return "", infra.WrapGatewayErr(infra.KindUnavailable, "SMS response unreadable", err)
	}

	c.logger.Info("SMS sent", "sid", msg.SID, "to", toPhone)
	return msg.SID, nil
}

// OfferBody formats the alert sent to the current holder when a new offer
// lands. Amount arrives in minor currency units.
func OfferBody(offerAmount int64) string {
	return fmt.Sprintf(
		"You have received a new offer of $%.2f for your booking. Respond within the next 30 minutes to accept or decline.",
		float64(offerAmount)/100,
	)
}

// ParseReply interprets an inbound SMS body as an accept/decline decision.
// Matching is trimmed and case-insensitive; anything else is not a decision.
func ParseReply(body string) (accepted bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(body)) {
	case "yes":
		return true, true
	case "no":
		return false, true
	default:
		return false, false
	}
}
