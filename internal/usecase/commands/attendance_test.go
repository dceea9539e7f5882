//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"leisure-booking/internal/domain/booking"
	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/commands"
	"leisure-booking/tests/common/fakes"
)

type AttendanceSuite struct {
	suite.Suite
	ctx        context.Context
	uow        *fakes.UnitOfWork
	publisher  *fakes.Publisher
	attendance commands.AttendanceCommands
}

func (s *AttendanceSuite) SetupTest() {
	s.ctx = context.Background()
	s.uow = fakes.NewUnitOfWork()
	s.publisher = fakes.NewPublisher()
	s.attendance = commands.NewAttendanceCommands(s.uow, s.publisher)
}

func TestAttendanceSuite(t *testing.T) {
	suite.Run(t, new(AttendanceSuite))
}

func (s *AttendanceSuite) seedBooking(attendees ...uuid.UUID) *booking.Booking {
	slot := schedule.Slot{
		Activity: schedule.ActivityYoga,
		Facility: schedule.FacilityStudio,
		Start:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		IsClass:  true,
	}
	b := booking.FromSlot(slot)
	for _, a := range attendees {
		b.AddAttendee(a)
	}
	s.Require().NoError(s.uow.BookingRepo.Upsert(s.ctx, b))
	return b
}

func (s *AttendanceSuite) TestCancelKeepsBookingWithRemainingAttendees() {
	leaver, stayer := uuid.New(), uuid.New()
	b := s.seedBooking(leaver, stayer)

	s.Require().NoError(s.attendance.Cancel(s.ctx, b.ID(), leaver))

	remaining, err := s.uow.BookingRepo.FindByID(s.ctx, b.ID())
	s.Require().NoError(err)
	s.False(remaining.HasAttendee(leaver))
	s.True(remaining.HasAttendee(stayer))
	s.Equal([]string{"booking.cancelled"}, s.publisher.Keys())
}

func (s *AttendanceSuite) TestCancelLastAttendeeDeletesBooking() {
	only := uuid.New()
	b := s.seedBooking(only)

	s.Require().NoError(s.attendance.Cancel(s.ctx, b.ID(), only))

	s.Empty(s.uow.BookingRepo.All())
}

func (s *AttendanceSuite) TestCancelByNonAttendee() {
	b := s.seedBooking(uuid.New())

	err := s.attendance.Cancel(s.ctx, b.ID(), uuid.New())
	s.Require().ErrorIs(err, errs.ErrNotAnAttendee)

	s.Len(s.uow.BookingRepo.All(), 1)
	s.Empty(s.publisher.Keys())
}

func (s *AttendanceSuite) TestCancelUnknownBooking() {
	err := s.attendance.Cancel(s.ctx, uuid.New(), uuid.New())
	s.Require().ErrorIs(err, errs.ErrBookingNotFound)
}
