package recordstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/stewwratt/unbooked-demo/internal/infra"
	"github.com/stewwratt/unbooked-demo/internal/pkg/clock"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
)

// storedTokens mirrors the token file layout used by the OAuth callback flow
// (expiry_date in unix milliseconds).
type storedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiryDate   int64  `json:"expiry_date"`
}

// TokenSource holds the authenticated-client state for the record store and
// refreshes it when expiry is detected. It is injected at construction time
// instead of living in ambient globals; all callers share one instance.
type TokenSource struct {
	cfg   config.CalendarConfig
	hc    *http.Client
	clock clock.Clock

	mu     sync.Mutex
	tokens storedTokens
	loaded bool
}

func NewTokenSource(cfg config.CalendarConfig, hc *http.Client, clk clock.Clock) *TokenSource {
	return &TokenSource{cfg: cfg, hc: hc, clock: clk}
}

// Token returns a bearer token valid at call time, refreshing first when the
// stored one has expired.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if !ts.loaded {
		if err := ts.loadLocked(); err != nil {
			return "", err
		}
	}

	if ts.expiredLocked() {
		if err := ts.refreshLocked(ctx); err != nil {
			return "", err
		}
	}

	return ts.tokens.AccessToken, nil
}

// Invalidate forces a refresh on the next Token call. Used when the remote
// rejects a token before its recorded expiry.
func (ts *TokenSource) Invalidate() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.tokens.ExpiryDate = 0
}

func (ts *TokenSource) loadLocked() error {
	data, err := os.ReadFile(ts.cfg.TokenFile)
	if err != nil {
		return infra.WrapGatewayErr(infra.KindAuthExpired, "no stored tokens, authenticate first", err)
	}
	if err := json.Unmarshal(data, &ts.tokens); err != nil {
		return infra.WrapGatewayErr(infra.KindAuthExpired, "stored tokens unreadable", err)
	}
	ts.loaded = true
	return nil
}

func (ts *TokenSource) expiredLocked() bool {
	return ts.tokens.ExpiryDate <= ts.clock.Now().UnixMilli()
}

func (ts *TokenSource) refreshLocked(ctx context.Context) error {
	if ts.tokens.RefreshToken == "" {
		return infra.WrapGatewayErr(infra.KindAuthExpired, "no refresh token available", nil)
	}

	form := url.Values{}
	form.Set("client_id", ts.cfg.ClientID)
	form.Set("client_secret", ts.cfg.ClientSecret)
	form.Set("refresh_token", ts.tokens.RefreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return infra.WrapGatewayErr(infra.KindAuthExpired, "building refresh request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.hc.Do(req)
	if err != nil {
		return infra.WrapGatewayErr(infra.KindUnavailable, "token endpoint unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return infra.WrapGatewayErr(infra.KindAuthExpired, "token refresh rejected, re-authenticate", nil)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return infra.WrapGatewayErr(infra.KindAuthExpired, "token refresh response unreadable", err)
	}

	ts.tokens.AccessToken = body.AccessToken
	ts.tokens.ExpiryDate = ts.clock.Now().Add(time.Duration(body.ExpiresIn) * time.Second).UnixMilli()
	ts.persistLocked()
	return nil
}

// persistLocked best-effort saves refreshed tokens; a write failure only
// costs an extra refresh after restart.
func (ts *TokenSource) persistLocked() {
	data, err := json.Marshal(ts.tokens)
	if err != nil {
		return
	}
	_ = os.WriteFile(ts.cfg.TokenFile, data, 0o600)
}
