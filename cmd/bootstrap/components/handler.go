package components

import (
	"go.uber.org/fx"

	"leisure-booking/internal/handler"
	"leisure-booking/internal/handler/api"
	"leisure-booking/internal/handler/middleware"
	"leisure-booking/internal/pkg/config"
	"leisure-booking/internal/usecase/commands"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewTimetableHandler,
		api.NewBasketHandler,
		api.NewCheckoutHandler,
		api.NewBookingHandler,
		api.NewAdminHandler,
		NewWebhookHandler,
		NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewWebhookHandler(checkout commands.CheckoutCommands, memberships commands.MembershipCommands, cfg config.Config) *api.WebhookHandler {
	return api.NewWebhookHandler(checkout, memberships, cfg.Payment)
}

func NewHandlers(
	auth *api.AuthHandler,
	timetable *api.TimetableHandler,
	basket *api.BasketHandler,
	checkout *api.CheckoutHandler,
	bookings *api.BookingHandler,
	admin *api.AdminHandler,
	webhook *api.WebhookHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:      auth,
		Timetable: timetable,
		Basket:    basket,
		Checkout:  checkout,
		Bookings:  bookings,
		Admin:     admin,
		Webhook:   webhook,
	}
}
