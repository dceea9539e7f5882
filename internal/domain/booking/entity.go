package booking

import (
	"time"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/pkg/errs"
)

var (
	ErrNoAttendees   = errs.New("booking must have at least one attendee")
	ErrNotAnAttendee = errs.New("user is not an attendee")
)

// Booking is a persisted slot plus its attendee set. At most one booking
// exists per natural key; concurrent selections of the same slot merge into
// it. A booking with zero attendees is deleted rather than persisted.
type Booking struct {
	id        uuid.UUID
	key       schedule.NaturalKey
	isClass   bool
	attendees []uuid.UUID
	createdAt time.Time
}

// FromSlot builds a not-yet-persisted booking for a slot with no attendees.
// Callers add attendees before commit; the ledger refuses to persist an
// empty booking.
func FromSlot(slot schedule.Slot) *Booking {
	return &Booking{
		id:      uuid.New(),
		key:     slot.Key(),
		isClass: slot.IsClass,
	}
}

func Reconstruct(id uuid.UUID, key schedule.NaturalKey, isClass bool, attendees []uuid.UUID, createdAt time.Time) *Booking {
	return &Booking{
		id:        id,
		key:       key,
		isClass:   isClass,
		attendees: attendees,
		createdAt: createdAt,
	}
}

func (b *Booking) ID() uuid.UUID                   { return b.id }
func (b *Booking) Key() schedule.NaturalKey        { return b.key }
func (b *Booking) Activity() schedule.ActivityType { return b.key.Activity }
func (b *Booking) Facility() schedule.FacilityID   { return b.key.Facility }
func (b *Booking) Start() time.Time                { return b.key.Start }
func (b *Booking) End() time.Time                  { return b.key.End }
func (b *Booking) IsClass() bool                   { return b.isClass }
func (b *Booking) CreatedAt() time.Time            { return b.createdAt }

func (b *Booking) Attendees() []uuid.UUID {
	out := make([]uuid.UUID, len(b.attendees))
	copy(out, b.attendees)
	return out
}

func (b *Booking) AttendeeCount() int {
	return len(b.attendees)
}

// AddAttendee is idempotent: re-adding an existing attendee is a no-op, so a
// double-submitted checkout cannot duplicate a membership row.
func (b *Booking) AddAttendee(userID uuid.UUID) {
	if b.HasAttendee(userID) {
		return
	}
	b.attendees = append(b.attendees, userID)
}

// RemoveAttendee drops a user from the attendee set and reports whether the
// booking is now empty. An empty booking has no reason to exist; the ledger
// deletes it in the same transaction.
func (b *Booking) RemoveAttendee(userID uuid.UUID) (empty bool, err error) {
	for i, id := range b.attendees {
		if id == userID {
			b.attendees = append(b.attendees[:i], b.attendees[i+1:]...)
			return len(b.attendees) == 0, nil
		}
	}
	return false, ErrNotAnAttendee
}

func (b *Booking) HasAttendee(userID uuid.UUID) bool {
	for _, id := range b.attendees {
		if id == userID {
			return true
		}
	}
	return false
}

// HasExpired reports whether the booked slot has already started.
func (b *Booking) HasExpired(now time.Time) bool {
	return !b.key.Start.After(now)
}
