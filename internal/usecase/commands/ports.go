package commands

import (
	"context"

	"leisure-booking/internal/domain/basket"
)

// BasketStore persists the provisional basket value between requests,
// keyed by booking scope: the id of the customer the selection is for.
// Staff booking on a customer's behalf share that customer's scope.
type BasketStore interface {
	Get(ctx context.Context, scope string) (basket.Basket, error)
	Save(ctx context.Context, scope string, b basket.Basket) error
}

// EventPublisher emits booking lifecycle events for external notification
// consumers. Publish failures are logged, not surfaced: the booking is
// already durable by the time an event goes out.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
