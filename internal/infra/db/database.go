// Package db owns the postgres connection pool. Expected schema:
//
//	users              (id uuid pk, email unique, password_hash, role,
//	                    membership, membership_expires_at nullable, created_at)
//	timetable_entries  (id uuid pk, activity, facility, weekday,
//	                    open_hour, close_hour)
//	facilities         (facility int pk, open_hour, close_hour, max_capacity)
//	bookings           (id uuid pk, activity, facility, start_time, end_time,
//	                    is_class, created_at,
//	                    unique (activity, facility, start_time, end_time))
//	booking_attendees  (booking_id fk on delete cascade, user_id,
//	                    pk (booking_id, user_id))
//
// The bookings natural-key constraint backs the upsert in the repository
// layer; attendee counts drive capacity checks.
package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"leisure-booking/internal/pkg/config"
	"leisure-booking/internal/pkg/errs"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so
// repositories run unchanged inside and outside transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	pool, err := pgxpool.New(ctx, cfg.BuildDSN())
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to create connection pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, errs.Wrap(err, "failed to ping database")
	}

	cleanup := func() {
		pool.Close()
	}

	return pool, cleanup, nil
}
