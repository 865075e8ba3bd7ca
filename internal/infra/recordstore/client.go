// Package recordstore adapts the external calendar-style document store that
// holds one serialized ledger per slot, packed into the event description
// field. The store gives us plain get/overwrite semantics only: two writers
// that read the same description both succeed and the later Put wins. That
// race is a documented property of the design, not an accident; slotlock
// narrows it within a single process and nothing eliminates it across
// processes.
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/stewwratt/unbooked-demo/internal/infra"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
	"github.com/stewwratt/unbooked-demo/internal/usecase/commands"
)

type Client struct {
	hc     *http.Client
	cfg    config.CalendarConfig
	tokens *TokenSource
	logger *slog.Logger
}

func New(cfg config.CalendarConfig, tokens *TokenSource, logger *slog.Logger) *Client {
	return &Client{
		hc:     &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		tokens: tokens,
		logger: logger,
	}
}

type event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       eventTime `json:"start"`
	End         eventTime `json:"end"`
}

type eventTime struct {
	DateTime time.Time `json:"dateTime"`
}

func (c *Client) Get(ctx context.Context, slotID string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, c.eventURL(slotID), nil)
	if err != nil {
		return "", err
	}

	var ev event
	if err := json.Unmarshal(body, &ev); err != nil {
		return "", infra.WrapGatewayErr(infra.KindUnavailable, "event response unreadable", err)
	}
	return ev.Description, nil
}

func (c *Client) Put(ctx context.Context, slotID, raw string) error {
	payload, err := json.Marshal(map[string]string{"description": raw})
	if err != nil {
		return infra.WrapGatewayErr(infra.KindUnavailable, "encoding event patch", err)
	}

	_, err = c.do(ctx, http.MethodPatch, c.eventURL(slotID), payload)
	return err
}

func (c *Client) List(ctx context.Context, from time.Time, query string, max int) ([]commands.SlotRecord, error) {
	q := url.Values{}
	q.Set("timeMin", from.Format(time.RFC3339))
	q.Set("maxResults", fmt.Sprintf("%d", max))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	if query != "" {
		q.Set("q", query)
	}

	listURL := fmt.Sprintf("%s/calendars/%s/events?%s", c.cfg.BaseURL, url.PathEscape(c.cfg.CalendarID), q.Encode())
	body, err := c.do(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Items []event `json:"items"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, infra.WrapGatewayErr(infra.KindUnavailable, "event list unreadable", err)
	}

	records := make([]commands.SlotRecord, 0, len(resp.Items))
	for _, ev := range resp.Items {
		records = append(records, commands.SlotRecord{
			ID:      ev.ID,
			Summary: ev.Summary,
			Raw:     ev.Description,
			Start:   ev.Start.DateTime,
			End:     ev.End.DateTime,
		})
	}
	return records, nil
}

func (c *Client) eventURL(slotID string) string {
	return fmt.Sprintf("%s/calendars/%s/events/%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.CalendarID), url.PathEscape(slotID))
}

// do performs one store call with a bounded number of attempts. Transient
// failures (network errors, 5xx, 429) are retried with a short backoff and
// then surfaced as UNAVAILABLE; a 401 invalidates the token once before the
// request counts as failed.
func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte) ([]byte, error) {
	attempts := c.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	refreshed := false
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, infra.WrapGatewayErr(infra.KindUnavailable, "store call canceled", ctx.Err())
			case <-time.After(time.Duration(attempt-1) * 200 * time.Millisecond):
			}
		}

		body, status, err := c.once(ctx, method, rawURL, payload)
		if err != nil {
			lastErr = err
			c.logger.Warn("record store call failed", "method", method, "attempt", attempt, "error", err)
			continue
		}

		switch {
		case status < 300:
			return body, nil
		case status == http.StatusNotFound:
			return nil, infra.WrapGatewayErr(infra.KindNotFound, "slot record not found", nil)
		case status == http.StatusUnauthorized:
			if refreshed {
				return nil, infra.WrapGatewayErr(infra.KindAuthExpired, "store rejected credentials after refresh", nil)
			}
			c.tokens.Invalidate()
			refreshed = true
			attempt-- // the refresh retry does not consume an attempt
		case status >= 500 || status == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("store returned status %d", status)
			c.logger.Warn("record store transient failure", "method", method, "status", status, "attempt", attempt)
		default:
			return nil, infra.WrapGatewayErr(infra.KindRemoteRejected, fmt.Sprintf("store rejected request (status=%d)", status), nil)
		}
	}

	return nil, infra.WrapGatewayErr(infra.KindUnavailable, "record store unavailable after retries", lastErr)
}

func (c *Client) once(ctx context.Context, method, rawURL string, payload []byte) ([]byte, int, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, 0, err
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}
