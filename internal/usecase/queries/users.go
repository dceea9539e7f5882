package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leisure-booking/internal/infra"
	"leisure-booking/internal/pkg/clock"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/shared"
)

type UserView struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	Membership       string     `json:"membership"`
	MembershipActive bool       `json:"membership_active"`
	MembershipUntil  *time.Time `json:"membership_until,omitempty"`
}

type UserQueries interface {
	Me(ctx context.Context, userID uuid.UUID) (*UserView, error)
}

type userQueries struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewUserQueries(uow shared.UnitOfWork, clk clock.Clock) UserQueries {
	return &userQueries{uow: uow, clock: clk}
}

func (q *userQueries) Me(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	u, err := q.uow.Repos().Users().FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &UserView{
		ID:               u.ID(),
		Email:            u.Email(),
		Role:             u.Role().String(),
		Membership:       u.Membership().String(),
		MembershipActive: u.HasActiveMembership(q.clock.Now()),
		MembershipUntil:  u.MembershipExpiresAt(),
	}, nil
}
