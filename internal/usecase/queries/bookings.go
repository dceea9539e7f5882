package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/booking"
	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/pkg/clock"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/shared"
)

type BookingView struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Activity  string    `json:"activity"`
	Facility  string    `json:"facility"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	IsClass   bool      `json:"is_class"`
	Attendees int       `json:"attendees"`
	Expired   bool      `json:"expired"`
}

type DayGroupView struct {
	Date     time.Time     `json:"date"`
	Bookings []BookingView `json:"bookings"`
}

type BookingQueries interface {
	// UpcomingForUser groups the user's not-yet-started bookings by calendar
	// day, earliest first.
	UpcomingForUser(ctx context.Context, userID uuid.UUID) ([]DayGroupView, error)
	// HistoryForUser lists everything the user is or was booked into, with
	// started sessions flagged as expired.
	HistoryForUser(ctx context.Context, userID uuid.UUID) ([]BookingView, error)
}

type bookingQueries struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingQueries(uow shared.UnitOfWork, clk clock.Clock) BookingQueries {
	return &bookingQueries{uow: uow, clock: clk}
}

func (q *bookingQueries) UpcomingForUser(ctx context.Context, userID uuid.UUID) ([]DayGroupView, error) {
	bookings, err := q.uow.Repos().Bookings().FindByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := q.clock.Now()
	var groups []DayGroupView
	for _, b := range bookings {
		if b.HasExpired(now) {
			continue
		}
		view := toBookingView(b, now)

		day := dateOf(b.Start())
		if len(groups) > 0 && groups[len(groups)-1].Date.Equal(day) {
			last := &groups[len(groups)-1]
			last.Bookings = append(last.Bookings, view)
			continue
		}
		groups = append(groups, DayGroupView{Date: day, Bookings: []BookingView{view}})
	}
	return groups, nil
}

func (q *bookingQueries) HistoryForUser(ctx context.Context, userID uuid.UUID) ([]BookingView, error) {
	bookings, err := q.uow.Repos().Bookings().FindByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := q.clock.Now()
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, toBookingView(b, now))
	}
	return views, nil
}

func toBookingView(b *booking.Booking, now time.Time) BookingView {
	key := b.Key()
	slot := schedule.Slot{
		Activity: key.Activity,
		Facility: key.Facility,
		Start:    key.Start,
		End:      key.End,
		IsClass:  b.IsClass(),
	}
	return BookingView{
		ID:        b.ID(),
		Code:      slot.Code(),
		Activity:  key.Activity.Label(),
		Facility:  key.Facility.Label(),
		Start:     key.Start,
		End:       key.End,
		IsClass:   b.IsClass(),
		Attendees: b.AttendeeCount(),
		Expired:   b.HasExpired(now),
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
