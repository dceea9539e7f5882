//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"leisure-booking/internal/domain/user"
	"leisure-booking/internal/pkg/clock"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/commands"
	"leisure-booking/tests/common/fakes"
)

type MembershipSuite struct {
	suite.Suite
	ctx         context.Context
	uow         *fakes.UnitOfWork
	clock       *clock.MockClock
	memberships commands.MembershipCommands
	customer    *user.User
}

func (s *MembershipSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = fakes.NewUnitOfWork()
	s.clock = clock.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.memberships = commands.NewMembershipCommands(s.uow, s.clock)

	s.customer = user.NewUser("member@example.com", "hash", user.RoleCustomer)
	s.Require().NoError(s.uow.UserRepo.Create(s.ctx, s.customer))
}

func TestMembershipSuite(t *testing.T) {
	suite.Run(t, new(MembershipSuite))
}

func (s *MembershipSuite) TestMonthlyPlanExpiresInAMonth() {
	s.Require().NoError(s.memberships.SetPlan(s.ctx, s.customer.ID(), user.MembershipMonth))

	stored, err := s.uow.UserRepo.FindByID(s.ctx, s.customer.ID())
	s.Require().NoError(err)
	s.Equal(user.MembershipMonth, stored.Membership())
	s.Require().NotNil(stored.MembershipExpiresAt())
	s.True(stored.MembershipExpiresAt().Equal(s.clock.Now().AddDate(0, 1, 0)))
	s.True(stored.HasActiveMembership(s.clock.Now()))
}

func (s *MembershipSuite) TestMembershipLapses() {
	s.Require().NoError(s.memberships.SetPlan(s.ctx, s.customer.ID(), user.MembershipYear))

	s.clock.Add(366 * 24 * time.Hour)
	stored, err := s.uow.UserRepo.FindByID(s.ctx, s.customer.ID())
	s.Require().NoError(err)
	s.False(stored.HasActiveMembership(s.clock.Now()))
}

func (s *MembershipSuite) TestCancellingClearsExpiry() {
	s.Require().NoError(s.memberships.SetPlan(s.ctx, s.customer.ID(), user.MembershipMonth))
	s.Require().NoError(s.memberships.SetPlan(s.ctx, s.customer.ID(), user.MembershipNone))

	stored, err := s.uow.UserRepo.FindByID(s.ctx, s.customer.ID())
	s.Require().NoError(err)
	s.Equal(user.MembershipNone, stored.Membership())
	s.Nil(stored.MembershipExpiresAt())
}

func (s *MembershipSuite) TestUnknownUser() {
	err := s.memberships.SetPlan(s.ctx, uuid.New(), user.MembershipMonth)
	s.Require().ErrorIs(err, errs.ErrUserNotFound)
}
