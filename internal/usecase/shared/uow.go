package shared

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leisure-booking/internal/domain/booking"
	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/domain/user"
)

type UnitOfWork interface {
	// Within: read-committed transaction with retry for ordinary writes
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: serializable transaction for the checkout commit,
	// so the capacity recheck and attendee insert act as one unit
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Repos: pool-backed repositories for reads outside any transaction
	Repos() Repositories
}

type Repositories interface {
	Bookings() BookingRepository
	Timetable() TimetableRepository
	Facilities() FacilityRepository
	Users() UserRepository
}

type Tx interface {
	Repositories
}

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindByKey resolves the at-most-one booking for a natural key.
	FindByKey(ctx context.Context, key schedule.NaturalKey) (*booking.Booking, error)
	// FindOverlapping returns every booking in the facility with the same
	// start and end, regardless of activity. Capacity counts all of them.
	FindOverlapping(ctx context.Context, facility schedule.FacilityID, start, end time.Time) ([]*booking.Booking, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*booking.Booking, error)
	// BookedIntervals returns the (start, end) pairs of the user's
	// confirmed bookings, for availability filtering.
	BookedIntervals(ctx context.Context, userID uuid.UUID) ([]schedule.Interval, error)
	// Upsert inserts a booking with a new natural key or replaces the
	// attendee set of an existing one.
	Upsert(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TimetableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*schedule.TimetableEntry, error)
	FindByWeekday(ctx context.Context, weekday schedule.Weekday) ([]*schedule.TimetableEntry, error)
	// FindMatching returns the entries that could generate slots for the
	// given activity/facility/weekday, for stale slot-code detection.
	FindMatching(ctx context.Context, activity schedule.ActivityType, facility schedule.FacilityID, weekday schedule.Weekday) ([]*schedule.TimetableEntry, error)
	FindAll(ctx context.Context) ([]*schedule.TimetableEntry, error)
	Create(ctx context.Context, entry *schedule.TimetableEntry) error
	Update(ctx context.Context, entry *schedule.TimetableEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type FacilityRepository interface {
	FindByID(ctx context.Context, id schedule.FacilityID) (*schedule.Facility, error)
	FindAll(ctx context.Context) ([]*schedule.Facility, error)
	Save(ctx context.Context, facility *schedule.Facility) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	UpdateMembership(ctx context.Context, u *user.User) error
}
