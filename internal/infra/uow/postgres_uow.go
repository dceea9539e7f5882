package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"leisure-booking/internal/infra/db"
	"leisure-booking/internal/infra/repository"
	"leisure-booking/internal/pkg/errs"
	"leisure-booking/internal/usecase/shared"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Serializable makes the checkout's capacity recheck and attendee inserts a
// single unit; a racing committer aborts with a serialization failure and is
// retried against the winner's committed state.
func (u *PostgresUoW) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable}, fn)
}

func (u *PostgresUoW) Repos() shared.Repositories {
	return newRepoSet(u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, newRepoSet(pgxTx))
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask the high bit so the conversion stays positive
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

// repoSet binds the repositories to one DBTX: the pool for implicit
// transactions, a pgx.Tx inside Within/WithinSerializable.
type repoSet struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookingRepo   shared.BookingRepository
	timetableRepo shared.TimetableRepository
	facilityRepo  shared.FacilityRepository
	userRepo      shared.UserRepository
}

func newRepoSet(dbtx db.DBTX) *repoSet {
	return &repoSet{dbtx: dbtx}
}

func (s *repoSet) Bookings() shared.BookingRepository {
	if s.bookingRepo == nil {
		s.bookingRepo = repository.NewBookingRepository(s.dbtx)
	}
	return s.bookingRepo
}

func (s *repoSet) Timetable() shared.TimetableRepository {
	if s.timetableRepo == nil {
		s.timetableRepo = repository.NewTimetableRepository(s.dbtx)
	}
	return s.timetableRepo
}

func (s *repoSet) Facilities() shared.FacilityRepository {
	if s.facilityRepo == nil {
		s.facilityRepo = repository.NewFacilityRepository(s.dbtx)
	}
	return s.facilityRepo
}

func (s *repoSet) Users() shared.UserRepository {
	if s.userRepo == nil {
		s.userRepo = repository.NewUserRepository(s.dbtx)
	}
	return s.userRepo
}
