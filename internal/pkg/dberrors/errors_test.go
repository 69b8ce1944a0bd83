package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintErrors(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: UniqueViolation, ConstraintName: "universities_slug_key"})
	fk := &pgconn.PgError{Code: ForeignKeyViolation, ConstraintName: "courses_university_id_fkey"}

	assert.True(t, IsDuplicateConstraintError(dup, "universities_slug_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "courses_university_id_slug_key"))
	assert.False(t, IsDuplicateConstraintError(fk, "courses_university_id_fkey"))

	assert.True(t, IsForeignKeyError(fk, ""))
	assert.True(t, IsForeignKeyError(fk, "courses_university_id_fkey"))
	assert.False(t, IsForeignKeyError(dup, ""))
	assert.False(t, IsForeignKeyError(errors.New("boom"), ""))
}
