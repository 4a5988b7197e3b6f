package repository

import (
	"errors"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// mapError translates driver-level failures into domain error kinds. The
// partial unique index on allocated tickets is the last-resort backstop
// against double booking, so its violation surfaces as ErrSeatAlreadyBooked.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrSeatAlreadyBooked
	}
	return err
}
