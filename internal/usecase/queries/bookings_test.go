//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"leisure-booking/internal/domain/booking"
	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/pkg/clock"
	"leisure-booking/internal/usecase/queries"
	"leisure-booking/tests/common/fakes"
)

type BookingQueriesSuite struct {
	suite.Suite
	ctx      context.Context
	uow      *fakes.UnitOfWork
	clock    *clock.MockClock
	bookings queries.BookingQueries
	userID   uuid.UUID
}

func (s *BookingQueriesSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = fakes.NewUnitOfWork()
	s.clock = clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.bookings = queries.NewBookingQueries(s.uow, s.clock)
	s.userID = uuid.New()
}

func TestBookingQueriesSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesSuite))
}

func (s *BookingQueriesSuite) seed(start time.Time) *booking.Booking {
	slot := schedule.Slot{
		Activity: schedule.ActivityGeneral,
		Facility: schedule.FacilityPool,
		Start:    start,
		End:      start.Add(time.Hour),
	}
	b := booking.FromSlot(slot)
	b.AddAttendee(s.userID)
	s.Require().NoError(s.uow.BookingRepo.Upsert(s.ctx, b))
	return b
}

func (s *BookingQueriesSuite) TestUpcomingGroupsByDayAndSkipsStarted() {
	now := s.clock.Now()
	s.seed(now.Add(-2 * time.Hour)) // already started, hidden
	s.seed(now.Add(2 * time.Hour))
	s.seed(now.Add(4 * time.Hour))
	s.seed(now.Add(26 * time.Hour))

	groups, err := s.bookings.UpcomingForUser(s.ctx, s.userID)
	s.Require().NoError(err)

	s.Require().Len(groups, 2)
	s.Len(groups[0].Bookings, 2)
	s.Len(groups[1].Bookings, 1)
	s.True(groups[0].Date.Before(groups[1].Date))
	for _, g := range groups {
		for _, b := range g.Bookings {
			s.False(b.Expired)
		}
	}
}

func (s *BookingQueriesSuite) TestHistoryFlagsExpired() {
	now := s.clock.Now()
	s.seed(now.Add(-2 * time.Hour))
	s.seed(now.Add(2 * time.Hour))

	views, err := s.bookings.HistoryForUser(s.ctx, s.userID)
	s.Require().NoError(err)

	s.Require().Len(views, 2)
	s.True(views[0].Expired)
	s.False(views[1].Expired)
}

func (s *BookingQueriesSuite) TestOnlyOwnBookings() {
	other := uuid.New()
	slot := schedule.Slot{
		Activity: schedule.ActivityGeneral,
		Facility: schedule.FacilityPool,
		Start:    s.clock.Now().Add(3 * time.Hour),
		End:      s.clock.Now().Add(4 * time.Hour),
	}
	b := booking.FromSlot(slot)
	b.AddAttendee(other)
	s.Require().NoError(s.uow.BookingRepo.Upsert(s.ctx, b))

	groups, err := s.bookings.UpcomingForUser(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Empty(groups)
}
