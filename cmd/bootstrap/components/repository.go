package components

import (
	"go.uber.org/fx"

	"leisure-booking/internal/infra/basketstore"
	"leisure-booking/internal/infra/mq"
	"leisure-booking/internal/infra/uow"
	"leisure-booking/internal/usecase/commands"
	"leisure-booking/internal/usecase/queries"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		uow.NewPostgresUoW,
		fx.Annotate(
			func(store *basketstore.RedisStore) *basketstore.RedisStore { return store },
			fx.As(new(commands.BasketStore)),
			fx.As(new(queries.BasketReader)),
		),
		fx.Annotate(
			func(publisher *mq.Publisher) *mq.Publisher { return publisher },
			fx.As(new(commands.EventPublisher)),
		),
	),
)
