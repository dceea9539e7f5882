//go:build unit

package booking_test

import (
	"testing"
	"time"

	"leisure-booking/internal/domain/booking"
	"leisure-booking/internal/domain/schedule"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolSlot() schedule.Slot {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return schedule.Slot{
		Activity: schedule.ActivityGeneral,
		Facility: schedule.FacilityPool,
		Start:    start,
		End:      start.Add(time.Hour),
	}
}

func TestBookingAttendees(t *testing.T) {
	t.Run("adding the same attendee twice keeps one entry", func(t *testing.T) {
		b := booking.FromSlot(poolSlot())
		userID := uuid.New()

		b.AddAttendee(userID)
		b.AddAttendee(userID)

		assert.Equal(t, 1, b.AttendeeCount())
		assert.True(t, b.HasAttendee(userID))
	})

	t.Run("removing last attendee reports empty", func(t *testing.T) {
		b := booking.FromSlot(poolSlot())
		userID := uuid.New()
		b.AddAttendee(userID)

		empty, err := b.RemoveAttendee(userID)

		require.NoError(t, err)
		assert.True(t, empty)
		assert.Equal(t, 0, b.AttendeeCount())
	})

	t.Run("removing one of several attendees is not empty", func(t *testing.T) {
		b := booking.FromSlot(poolSlot())
		first := uuid.New()
		second := uuid.New()
		b.AddAttendee(first)
		b.AddAttendee(second)

		empty, err := b.RemoveAttendee(first)

		require.NoError(t, err)
		assert.False(t, empty)
		assert.False(t, b.HasAttendee(first))
		assert.True(t, b.HasAttendee(second))
	})

	t.Run("removing a non attendee fails", func(t *testing.T) {
		b := booking.FromSlot(poolSlot())
		b.AddAttendee(uuid.New())

		_, err := b.RemoveAttendee(uuid.New())

		require.ErrorIs(t, err, booking.ErrNotAnAttendee)
		assert.Equal(t, 1, b.AttendeeCount())
	})

	t.Run("attendees accessor returns a copy", func(t *testing.T) {
		b := booking.FromSlot(poolSlot())
		b.AddAttendee(uuid.New())

		attendees := b.Attendees()
		attendees[0] = uuid.New()

		assert.NotEqual(t, attendees[0], b.Attendees()[0])
	})
}

func TestBookingExpiry(t *testing.T) {
	b := booking.FromSlot(poolSlot())

	assert.False(t, b.HasExpired(b.Start().Add(-time.Minute)))
	assert.True(t, b.HasExpired(b.Start()))
	assert.True(t, b.HasExpired(b.Start().Add(time.Minute)))
}

func TestBookingKey(t *testing.T) {
	slot := poolSlot()
	b := booking.FromSlot(slot)

	assert.True(t, b.Key().Equal(slot.Key()))
	assert.Equal(t, slot.Activity, b.Activity())
	assert.Equal(t, slot.Facility, b.Facility())
}
