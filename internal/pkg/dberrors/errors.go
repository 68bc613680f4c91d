package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation checks if the error is a PostgreSQL unique violation
// (23505) for the given constraint. The registration path relies on this to
// map constraint-backed duplicates to conflict responses instead of trusting
// a check-then-insert sequence.
func IsUniqueViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
}

// IsAnyUniqueViolation checks for a unique violation regardless of constraint.
func IsAnyUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
