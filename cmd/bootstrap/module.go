package bootstrap

import (
	"go.uber.org/fx"

	"leisure-booking/cmd/bootstrap/components"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	MQModule,
	JWTModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
