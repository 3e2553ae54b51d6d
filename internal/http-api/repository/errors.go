package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE postgres reports when an insert or
// update breaks a unique constraint.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err comes from a broken unique
// constraint. Services translate these into field validation errors so
// concurrent duplicate writes fail the same way as sequential ones.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
