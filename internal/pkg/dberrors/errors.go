package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories translate
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

func pgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateConstraintError reports a unique violation on the named constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgError(err, UniqueViolation)
	return ok && pgErr.ConstraintName == constraintName
}

// IsForeignKeyError reports a foreign key violation. An empty constraintName matches any.
func IsForeignKeyError(err error, constraintName string) bool {
	pgErr, ok := pgError(err, ForeignKeyViolation)
	return ok && (constraintName == "" || pgErr.ConstraintName == constraintName)
}
