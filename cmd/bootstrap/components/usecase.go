package components

import (
	"go.uber.org/fx"

	"leisure-booking/internal/pkg/clock"
	"leisure-booking/internal/usecase"
	"leisure-booking/internal/usecase/commands"
	"leisure-booking/internal/usecase/queries"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBasketCommands,
		commands.NewCheckoutCommands,
		commands.NewAttendanceCommands,
		commands.NewMembershipCommands,
		commands.NewAdminCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewTimetableQueries,
		queries.NewBookingQueries,
		queries.NewBasketQueries,
		queries.NewUserQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
