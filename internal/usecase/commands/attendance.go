package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/booking"
	"leisure-booking/internal/infra"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/shared"
)

type AttendanceCommands interface {
	// Cancel removes the user from a booking's attendee set. When the last
	// attendee leaves, the booking itself is deleted so the slot shows as
	// free again.
	Cancel(ctx context.Context, bookingID, userID uuid.UUID) error
}

type attendanceCommands struct {
	uow       shared.UnitOfWork
	publisher EventPublisher
}

func NewAttendanceCommands(uow shared.UnitOfWork, publisher EventPublisher) AttendanceCommands {
	return &attendanceCommands{uow: uow, publisher: publisher}
}

func (c *attendanceCommands) Cancel(ctx context.Context, bookingID, userID uuid.UUID) error {
	var cancelled *booking.Booking
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrBookingNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		empty, err := b.RemoveAttendee(userID)
		if err != nil {
			return errs.Mark(err, errs.ErrNotAnAttendee)
		}

		if empty {
			if err := tx.Bookings().Delete(ctx, b.ID()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		} else {
			if err := tx.Bookings().Upsert(ctx, b); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}

		cancelled = b
		return nil
	})
	if err != nil {
		return err
	}

	event := bookingCancelledEvent{
		BookingID: cancelled.ID(),
		UserID:    userID,
		Activity:  cancelled.Activity().Label(),
		Facility:  cancelled.Facility().Label(),
		Start:     cancelled.Start(),
	}
	if pubErr := c.publisher.PublishJSON(ctx, "booking.cancelled", event); pubErr != nil {
		slog.Warn("failed to publish booking cancellation", "booking_id", cancelled.ID(), "error", pubErr)
	}
	return nil
}

type bookingCancelledEvent struct {
	BookingID uuid.UUID `json:"booking_id"`
	UserID    uuid.UUID `json:"user_id"`
	Activity  string    `json:"activity"`
	Facility  string    `json:"facility"`
	Start     time.Time `json:"start"`
}
