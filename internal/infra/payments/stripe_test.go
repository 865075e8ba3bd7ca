//go:build unit

package payments_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stewwratt/unbooked-demo/internal/infra"
	"github.com/stewwratt/unbooked-demo/internal/infra/payments"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(serverURL string) *payments.Client {
	cfg := config.NewTestConfig().Stripe
	cfg.BaseURL = serverURL
	return payments.New(cfg, slog.New(slog.DiscardHandler))
}

func TestAuthorize(t *testing.T) {
	t.Run("creates a manual-capture hold with metadata", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "/payment_intents", r.URL.Path)
			assert.Equal(t, "20000", r.PostForm.Get("amount"))
			assert.Equal(t, "aud", r.PostForm.Get("currency"))
			assert.Equal(t, "manual", r.PostForm.Get("capture_method"))
			assert.Equal(t, "card", r.PostForm.Get("payment_method_types[]"))
			assert.Equal(t, "evt1", r.PostForm.Get("metadata[slotID]"))
			assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
			assert.Equal(t, "Bearer sk_test_unbooked", r.Header.Get("Authorization"))

			_, _ = w.Write([]byte(`{"id":"pi_1","client_secret":"cs_1","status":"requires_capture"}`))
		}))
		defer srv.Close()

		intent, err := newClient(srv.URL).Authorize(context.Background(), 20000, "aud", map[string]string{"slotID": "evt1"})
		require.NoError(t, err)
		assert.Equal(t, "pi_1", intent.ID)
		assert.Equal(t, "cs_1", intent.ClientSecret)
	})

	t.Run("card decline surfaces as rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error":{"code":"card_declined","message":"Your card was declined."}}`))
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).Authorize(context.Background(), 20000, "aud", nil)
		assert.True(t, infra.IsKind(err, infra.KindRemoteRejected))
	})
}

func TestCapture(t *testing.T) {
	t.Run("sends the amount to capture", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "/payment_intents/pi_1/capture", r.URL.Path)
			assert.Equal(t, "20000", r.PostForm.Get("amount_to_capture"))
			_, _ = w.Write([]byte(`{"id":"pi_1","status":"succeeded"}`))
		}))
		defer srv.Close()

		err := newClient(srv.URL).Capture(context.Background(), "pi_1", 20000)
		require.NoError(t, err)
	})

	t.Run("already-captured intent counts as success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"payment_intent_unexpected_state","message":"This PaymentIntent has already been captured."}}`))
		}))
		defer srv.Close()

		err := newClient(srv.URL).Capture(context.Background(), "pi_1", 20000)
		assert.NoError(t, err)
	})

	t.Run("other capture failures propagate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"payment_intent_unexpected_state","message":"This PaymentIntent has been canceled."}}`))
		}))
		defer srv.Close()

		err := newClient(srv.URL).Capture(context.Background(), "pi_1", 20000)
		assert.True(t, infra.IsKind(err, infra.KindRemoteRejected))
	})
}

func TestCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_intents/pi_1/cancel", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"pi_1","status":"canceled"}`))
	}))
	defer srv.Close()

	err := newClient(srv.URL).Cancel(context.Background(), "pi_1")
	require.NoError(t, err)
}

func TestTransfer(t *testing.T) {
	t.Run("routes the split leg with its source intent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "/transfers", r.URL.Path)
			assert.Equal(t, "1000", r.PostForm.Get("amount"))
			assert.Equal(t, "acct_holder", r.PostForm.Get("destination"))
			assert.Equal(t, "pi_1", r.PostForm.Get("metadata[source_intent]"))
			_, _ = w.Write([]byte(`{"id":"tr_1"}`))
		}))
		defer srv.Close()

		id, err := newClient(srv.URL).Transfer(context.Background(), 1000, "aud", "acct_holder", "pi_1")
		require.NoError(t, err)
		assert.Equal(t, "tr_1", id)
	})

	t.Run("processor outage surfaces as unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := newClient(srv.URL).Transfer(context.Background(), 1000, "aud", "acct_holder", "pi_1")
		assert.True(t, infra.IsKind(err, infra.KindUnavailable))
	})
}
