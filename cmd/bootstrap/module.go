package bootstrap

import (
	"github.com/stewwratt/unbooked-demo/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	JWTModule,
	GatewayModule,
	components.UseCaseModule,
	components.HandlerModule,
)
