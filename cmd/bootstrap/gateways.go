package bootstrap

import (
	"log/slog"
	"net/http"

	"github.com/stewwratt/unbooked-demo/internal/infra/notify"
	"github.com/stewwratt/unbooked-demo/internal/infra/payments"
	"github.com/stewwratt/unbooked-demo/internal/infra/recordstore"
	"github.com/stewwratt/unbooked-demo/internal/infra/slotlock"
	"github.com/stewwratt/unbooked-demo/internal/pkg/clock"
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
	"github.com/stewwratt/unbooked-demo/internal/usecase/commands"

	"go.uber.org/fx"
)

// GatewayModule wires the outbound clients: the calendar-backed slot record
// store, the payment processor, and the SMS sender.
var GatewayModule = fx.Module("gateways",
	fx.Provide(
		NewTokenSource,
		fx.Annotate(
			NewSlotRecords,
			fx.As(new(commands.SlotRecords)),
		),
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			NewNotifier,
			fx.As(new(commands.Notifier)),
		),
		slotlock.New,
	),
)

func NewTokenSource(cfg config.Config, clk clock.Clock) *recordstore.TokenSource {
	hc := &http.Client{Timeout: cfg.Calendar.Timeout}
	return recordstore.NewTokenSource(cfg.Calendar, hc, clk)
}

func NewSlotRecords(cfg config.Config, tokens *recordstore.TokenSource, logger *slog.Logger) *recordstore.Client {
	return recordstore.New(cfg.Calendar, tokens, logger)
}

func NewPaymentGateway(cfg config.Config, logger *slog.Logger) *payments.Client {
	return payments.New(cfg.Stripe, logger)
}

func NewNotifier(cfg config.Config, logger *slog.Logger) *notify.Client {
	return notify.New(cfg.Twilio, logger)
}
