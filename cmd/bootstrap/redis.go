package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"leisure-booking/internal/infra/basketstore"
	"leisure-booking/internal/pkg/config"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		basketstore.NewRedisStore,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := basketstore.NewRedisClient(cfg.Redis)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
