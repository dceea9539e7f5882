package bootstrap

import (
	"go.uber.org/fx"

	"leisure-booking/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
