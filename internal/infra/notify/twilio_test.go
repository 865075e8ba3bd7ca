//go:build unit

package notify_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stewwratt/unbooked-demo/internal/infra"
	"github.com/stewwratt/unbooked-demo/internal/infra/notify"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	t.Run("posts the message with basic auth and returns the sid", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "ACtest", user)
			assert.Equal(t, "test-token", pass)
			assert.Equal(t, "/Accounts/ACtest/Messages.json", r.URL.Path)

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "+61400000001", r.PostForm.Get("To"))
			assert.Equal(t, "+61400000000", r.PostForm.Get("From"))
			assert.NotEmpty(t, r.PostForm.Get("Body"))

			_, _ = w.Write([]byte(`{"sid":"SM123"}`))
		}))
		defer srv.Close()

		cfg := config.NewTestConfig().Twilio
		cfg.BaseURL = srv.URL
		sut := notify.New(cfg, slog.New(slog.DiscardHandler))

		sid, err := sut.Send(context.Background(), "+61400000001", notify.OfferBody(20000))
		require.NoError(t, err)
		assert.Equal(t, "SM123", sid)
	})

	t.Run("gateway rejection surfaces as error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"invalid number"}`))
		}))
		defer srv.Close()

		cfg := config.NewTestConfig().Twilio
		cfg.BaseURL = srv.URL
		sut := notify.New(cfg, slog.New(slog.DiscardHandler))

		_, err := sut.Send(context.Background(), "bad", "body")
		assert.True(t, infra.IsKind(err, infra.KindRemoteRejected))
	})
}

func TestOfferBody(t *testing.T) {
	body := notify.OfferBody(20000)
	assert.Contains(t, body, "$200.00")
	assert.Contains(t, body, "30 minutes")
}

func TestParseReply(t *testing.T) {
	cases := []struct {
		body         string
		wantAccepted bool
		wantOK       bool
	}{
		{body: "yes", wantAccepted: true, wantOK: true},
		{body: "YES", wantAccepted: true, wantOK: true},
		{body: "  Yes \n", wantAccepted: true, wantOK: true},
		{body: "no", wantAccepted: false, wantOK: true},
		{body: "No thanks", wantOK: false},
		{body: "maybe", wantOK: false},
		{body: "", wantOK: false},
	}

	for _, tc := range cases {
		accepted, ok := notify.ParseReply(tc.body)
		assert.Equal(t, tc.wantOK, ok, "body %q", tc.body)
		if ok {
			assert.Equal(t, tc.wantAccepted, accepted, "body %q", tc.body)
		}
	}
}
