package bootstrap

import (
	"context"

	"go.uber.org/fx"

	"leisure-booking/internal/infra/mq"
	"leisure-booking/internal/pkg/config"
)

var MQModule = fx.Module("mq",
	fx.Provide(
		NewPublisher,
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (*mq.Publisher, error) {
	publisher, err := mq.NewPublisher(cfg.MQ)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}
