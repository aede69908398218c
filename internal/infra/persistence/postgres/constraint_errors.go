package postgres

import (
	"agora/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes used when translating driver errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
)

// usernameConstraint is the unique constraint created by the users migration.
const usernameConstraint = "users_username_key"

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}

	return nil, false
}

// Helper functions for PostgreSQL error checking
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	pgErr, ok := pgError(err)

	return ok && pgErr.Code == pgUniqueViolation
}

// isUniqueViolationOn reports a unique violation of the named constraint.
// A translated gorm.ErrDuplicatedKey carries no constraint name and matches any name.
func isUniqueViolationOn(err error, constraint string) bool {
	if pgErr, ok := pgError(err); ok {
		return pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == constraint
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	pgErr, ok := pgError(err)

	return ok && pgErr.Code == pgForeignKeyViolation
}

func isNotNullConstraintViolation(err error) bool {
	pgErr, ok := pgError(err)

	return ok && pgErr.Code == pgNotNullViolation
}

// isValueRejected reports a value the column or a check constraint refuses.
// Retrying the same value can never succeed.
func isValueRejected(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	pgErr, ok := pgError(err)

	return ok && (pgErr.Code == pgStringTooLong || pgErr.Code == pgCheckViolation)
}
