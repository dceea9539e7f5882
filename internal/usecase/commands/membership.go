package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/user"
	"leisure-booking/internal/infra"
	"leisure-booking/internal/pkg/clock"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/shared"
)

type MembershipCommands interface {
	// SetPlan replaces the user's membership plan, stamping the expiry from
	// the plan length. Called from the payment provider webhook once a
	// subscription payment settles, and by staff for over-the-counter sales.
	SetPlan(ctx context.Context, userID uuid.UUID, plan user.Membership) error
}

type membershipCommands struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewMembershipCommands(uow shared.UnitOfWork, clk clock.Clock) MembershipCommands {
	return &membershipCommands{uow: uow, clock: clk}
}

func (c *membershipCommands) SetPlan(ctx context.Context, userID uuid.UUID, plan user.Membership) error {
	expiresAt := c.expiryFor(plan)

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().FindByID(ctx, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrUserNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		u.SetMembership(plan, expiresAt)
		if err := tx.Users().UpdateMembership(ctx, u); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *membershipCommands) expiryFor(plan user.Membership) *time.Time {
	now := c.clock.Now()
	var expiresAt time.Time
	switch plan {
	case user.MembershipMonth:
		expiresAt = now.AddDate(0, 1, 0)
	case user.MembershipYear:
		expiresAt = now.AddDate(1, 0, 0)
	default:
		return nil
	}
	return &expiresAt
}
