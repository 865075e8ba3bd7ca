package components

import (
	"github.com/stewwratt/unbooked-demo/internal/handler"
	"github.com/stewwratt/unbooked-demo/internal/handler/api"
	"github.com/stewwratt/unbooked-demo/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewSlotHandler,
		api.NewPaymentHandler,
		api.NewWebhookHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
