package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"leisure-booking/internal/infra"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// wrapWriteErr translates postgres constraint violations into repository
// error kinds so callers can branch without importing pgconn.
func wrapWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
