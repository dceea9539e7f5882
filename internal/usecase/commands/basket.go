package commands

import (
	"context"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/basket"
	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/shared"
)

type BasketCommands interface {
	AddCodes(ctx context.Context, scope uuid.UUID, codes []string) (basket.Basket, error)
	Remove(ctx context.Context, scope uuid.UUID, index int) (basket.Basket, error)
	Clear(ctx context.Context, scope uuid.UUID) error
}

type basketCommands struct {
	uow   shared.UnitOfWork
	store BasketStore
}

func NewBasketCommands(uow shared.UnitOfWork, store BasketStore) BasketCommands {
	return &basketCommands{uow: uow, store: store}
}

// AddCodes appends the given slot codes to the scope's basket, preserving
// submission order. Malformed codes fail the whole request; codes already in
// the basket are skipped so a resubmitted form stays harmless. Stale codes
// are accepted here and surface at checkout instead.
func (c *basketCommands) AddCodes(ctx context.Context, scope uuid.UUID, codes []string) (basket.Basket, error) {
	for _, code := range codes {
		if _, err := schedule.SlotFromCode(code); err != nil {
			return basket.Basket{}, errs.Mark(err, errs.ErrInvalidSlotCode)
		}
	}

	b, err := c.store.Get(ctx, scope.String())
	if err != nil {
		return basket.Basket{}, errs.Wrap(err, "failed to load basket")
	}

	for _, code := range codes {
		next, err := b.Add(code)
		if err != nil {
			if errs.Is(err, basket.ErrDuplicateCode) {
				continue
			}
			return basket.Basket{}, err
		}
		b = next
	}

	if err := c.store.Save(ctx, scope.String(), b); err != nil {
		return basket.Basket{}, errs.Wrap(err, "failed to save basket")
	}
	return b, nil
}

// Remove drops the selection at the given position.
func (c *basketCommands) Remove(ctx context.Context, scope uuid.UUID, index int) (basket.Basket, error) {
	b, err := c.store.Get(ctx, scope.String())
	if err != nil {
		return basket.Basket{}, errs.Wrap(err, "failed to load basket")
	}

	b, err = b.Remove(index)
	if err != nil {
		return basket.Basket{}, err
	}

	if err := c.store.Save(ctx, scope.String(), b); err != nil {
		return basket.Basket{}, errs.Wrap(err, "failed to save basket")
	}
	return b, nil
}

func (c *basketCommands) Clear(ctx context.Context, scope uuid.UUID) error {
	if err := c.store.Save(ctx, scope.String(), basket.Basket{}); err != nil {
		return errs.Wrap(err, "failed to clear basket")
	}
	return nil
}
