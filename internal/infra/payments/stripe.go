// Package payments talks to a Stripe-style card processor. Holds are created
// with manual capture so funds are earmarked without being transferred;
// capture and cancel settle or release them later.
package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/stewwratt/unbooked-demo/internal/infra"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
	"github.com/stewwratt/unbooked-demo/internal/usecase/commands"
)

type Client struct {
	hc     *http.Client
	cfg    config.StripeConfig
	logger *slog.Logger
}

func New(cfg config.StripeConfig, logger *slog.Logger) *Client {
	return &Client{
		hc:     &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		logger: logger,
	}
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Authorize creates a manual-capture hold for the amount.
func (c *Client) Authorize(ctx context.Context, amount int64, currency string, metadata map[string]string) (commands.Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card")
	form.Set("capture_method", "manual")
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	var intent intentResponse
	if err := c.post(ctx, "/payment_intents", form, uuid.NewString(), &intent); err != nil {
		return commands.Intent{}, err
	}

	return commands.Intent{ID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// Capture transfers amount from an existing hold. A hold the processor
// reports as already captured counts as success, so retries cannot
// double-charge; the idempotency key covers the narrower replay window.
func (c *Client) Capture(ctx context.Context, intentID string, amount int64) error {
	form := url.Values{}
	form.Set("amount_to_capture", strconv.FormatInt(amount, 10))

	var intent intentResponse
	err := c.post(ctx, "/payment_intents/"+url.PathEscape(intentID)+"/capture", form, "capture-"+intentID, &intent)
	if err != nil {
		if infra.IsKind(err, infra.KindAlreadyCaptured) {
			c.logger.Info("capture replayed on settled intent", "intent_id", intentID)
			return nil
		}
		return err
	}
	return nil
}

// Cancel releases an uncaptured hold.
func (c *Client) Cancel(ctx context.Context, intentID string) error {
	var intent intentResponse
	return c.post(ctx, "/payment_intents/"+url.PathEscape(intentID)+"/cancel", url.Values{}, "cancel-"+intentID, &intent)
}

// Transfer moves captured funds to a connected payout destination. The
// source intent travels in metadata so the split stays reconcilable.
func (c *Client) Transfer(ctx context.Context, amount int64, currency, destination, sourceIntent string) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("destination", destination)
	form.Set("metadata[source_intent]", sourceIntent)

	var transfer struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/transfers", form, "transfer-"+sourceIntent+"-"+destination, &transfer); err != nil {
		return "", err
	}
	return transfer.ID, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, idempotencyKey string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return infra.WrapGatewayErr(infra.KindUnavailable, "building processor request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return infra.WrapGatewayErr(infra.KindUnavailable, "payment processor unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return infra.WrapGatewayErr(infra.KindUnavailable, "reading processor response", err)
	}

	if resp.StatusCode >= 400 {
		var er errorResponse
		_ = json.Unmarshal(body, &er)
		if alreadyCaptured(er) {
			return infra.WrapGatewayErr(infra.KindAlreadyCaptured, "intent already captured", nil)
		}
		msg := er.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("processor returned status %d", resp.StatusCode)
		}
		if resp.StatusCode >= 500 {
			return infra.WrapGatewayErr(infra.KindUnavailable, msg, nil)
		}
		return infra.WrapGatewayErr(infra.KindRemoteRejected, msg, nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return infra.WrapGatewayErr(infra.KindUnavailable, "processor response unreadable", err)
	}
	return nil
}

func alreadyCaptured(er errorResponse) bool {
	if er.Error.Code == "payment_intent_unexpected_state" &&
		strings.Contains(strings.ToLower(er.Error.Message), "already been captured") {
		return true
	}
	return strings.Contains(strings.ToLower(er.Error.Message), "has already been captured")
}
