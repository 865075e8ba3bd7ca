package bootstrap

import (
	"github.com/stewwratt/unbooked-demo/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
