package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"leisure-booking/internal/domain/booking"
	"leisure-booking/internal/domain/schedule"
	"leisure-booking/internal/infra"
	"leisure-booking/internal/infra/db"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const bookingColumns = `b.id, b.activity, b.facility, b.start_time, b.end_time, b.is_class, b.created_at`

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings b
		WHERE b.id = $1`, id)

	return r.scanWithAttendees(ctx, row)
}

func (r *BookingRepository) FindByKey(ctx context.Context, key schedule.NaturalKey) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings b
		WHERE b.activity = $1 AND b.facility = $2 AND b.start_time = $3 AND b.end_time = $4`,
		int(key.Activity), int(key.Facility), key.Start, key.End)

	return r.scanWithAttendees(ctx, row)
}

func (r *BookingRepository) FindOverlapping(ctx context.Context, facility schedule.FacilityID, start, end time.Time) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings b
		WHERE b.facility = $1 AND b.start_time = $2 AND b.end_time = $3`,
		int(facility), start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping bookings", err)
	}
	defer rows.Close()

	return r.collectWithAttendees(ctx, rows)
}

func (r *BookingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings b
		JOIN booking_attendees ba ON ba.booking_id = b.id
		WHERE ba.user_id = $1
		ORDER BY b.start_time`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query user bookings", err)
	}
	defer rows.Close()

	return r.collectWithAttendees(ctx, rows)
}

func (r *BookingRepository) BookedIntervals(ctx context.Context, userID uuid.UUID) ([]schedule.Interval, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.start_time, b.end_time
		FROM bookings b
		JOIN booking_attendees ba ON ba.booking_id = b.id
		WHERE ba.user_id = $1`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booked intervals", err)
	}
	defer rows.Close()

	var intervals []schedule.Interval
	for rows.Next() {
		var iv schedule.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan interval", err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read intervals", err)
	}
	return intervals, nil
}

// Upsert inserts the booking or, when the natural key already exists,
// replaces the stored attendee set with the entity's. The conflict target is
// the natural-key unique constraint, so two committers racing on the same
// slot converge on one row.
func (r *BookingRepository) Upsert(ctx context.Context, b *booking.Booking) error {
	key := b.Key()

	var storedID uuid.UUID
	err := r.db.QueryRow(ctx, `
		INSERT INTO bookings (id, activity, facility, start_time, end_time, is_class, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (activity, facility, start_time, end_time)
		DO UPDATE SET is_class = EXCLUDED.is_class
		RETURNING id`,
		b.ID(), int(key.Activity), int(key.Facility), key.Start, key.End, b.IsClass(),
	).Scan(&storedID)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert booking", err)
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM booking_attendees WHERE booking_id = $1`, storedID); err != nil {
		return infra.WrapRepoErr("failed to clear attendees", err)
	}
	for _, attendee := range b.Attendees() {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO booking_attendees (booking_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, storedID, attendee); err != nil {
			return wrapWriteErr("failed to insert attendee", err)
		}
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM booking_attendees WHERE booking_id = $1`, id); err != nil {
		return infra.WrapRepoErr("failed to delete attendees", err)
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return nil
}

type bookingRow struct {
	id        uuid.UUID
	activity  int
	facility  int
	start     time.Time
	end       time.Time
	isClass   bool
	createdAt time.Time
}

func (r *BookingRepository) scanWithAttendees(ctx context.Context, row pgx.Row) (*booking.Booking, error) {
	var br bookingRow
	err := row.Scan(&br.id, &br.activity, &br.facility, &br.start, &br.end, &br.isClass, &br.createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan booking", err)
	}

	attendees, err := r.attendeesFor(ctx, br.id)
	if err != nil {
		return nil, err
	}
	return r.toDomain(br, attendees)
}

func (r *BookingRepository) collectWithAttendees(ctx context.Context, rows pgx.Rows) ([]*booking.Booking, error) {
	var raw []bookingRow
	for rows.Next() {
		var br bookingRow
		if err := rows.Scan(&br.id, &br.activity, &br.facility, &br.start, &br.end, &br.isClass, &br.createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		raw = append(raw, br)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bookings", err)
	}

	bookings := make([]*booking.Booking, 0, len(raw))
	for _, br := range raw {
		attendees, err := r.attendeesFor(ctx, br.id)
		if err != nil {
			return nil, err
		}
		b, err := r.toDomain(br, attendees)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (r *BookingRepository) attendeesFor(ctx context.Context, bookingID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id FROM booking_attendees WHERE booking_id = $1`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query attendees", err)
	}
	defer rows.Close()

	var attendees []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan attendee", err)
		}
		attendees = append(attendees, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read attendees", err)
	}
	return attendees, nil
}

func (r *BookingRepository) toDomain(br bookingRow, attendees []uuid.UUID) (*booking.Booking, error) {
	activity, err := schedule.NewActivityType(br.activity)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has unknown activity", err)
	}
	facility, err := schedule.NewFacilityID(br.facility)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has unknown facility", err)
	}

	key := schedule.NaturalKey{
		Activity: activity,
		Facility: facility,
		Start:    br.start,
		End:      br.end,
	}
	return booking.Reconstruct(br.id, key, br.isClass, attendees, br.createdAt), nil
}
