package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
	"github.com/yigit/unimatch/internal/pkg/logger"
)

var subjectColumns = []string{"id", "name", "code", "category", "description"}

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSubject(row pgx.Row, extra ...any) (*models.Subject, error) {
	s := &models.Subject{}
	dest := []any{&s.ID, &s.Name, &s.Code, &s.Category, &s.Description}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns...).
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	s, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Str("subjectID", id.String()).Msg("Error scanning subject row")
		return nil, fmt.Errorf("error getting subject by ID: %w", err)
	}
	return s, nil
}

// List returns a page of subjects ordered by name, with the total matching count
func (r *SubjectRepository) List(ctx context.Context, search string, offset, limit uint64) ([]models.Subject, int64, error) {
	cols := append(append([]string{}, subjectColumns...), "COUNT(*) OVER() AS total_count")
	q := r.sb.Select(cols...).From("subjects")
	if search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + search + "%"})
	}
	sql, args, err := q.OrderBy("name ASC").Offset(offset).Limit(limit).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list subjects SQL")
		return nil, 0, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list subjects query")
		return nil, 0, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	subjects := []models.Subject{}
	var total int64
	for rows.Next() {
		s, err := scanSubject(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating subject rows: %w", err)
	}
	return subjects, total, nil
}

// ListAll returns every subject; callers resolve free-text names against it
func (r *SubjectRepository) ListAll(ctx context.Context) ([]models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns...).From("subjects").OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list all subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list all subjects query")
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	subjects := []models.Subject{}
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, *s)
	}
	return subjects, rows.Err()
}

// Upsert inserts a subject unless one with the same name exists. The stored row is
// written back into s; created reports whether it was new.
func (r *SubjectRepository) Upsert(ctx context.Context, s *models.Subject) (created bool, err error) {
	sql, args, err := r.sb.Insert("subjects").
		Columns("name", "code", "category", "description").
		Values(s.Name, s.Code, s.Category, s.Description).
		Suffix("ON CONFLICT (name) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build upsert subject query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Str("name", s.Name).Msg("Error executing upsert subject query")
		return false, fmt.Errorf("error upserting subject: %w", err)
	}

	sql, args, err = r.sb.Select(subjectColumns...).From("subjects").Where(squirrel.Eq{"name": s.Name}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build get subject by name query: %w", err)
	}
	existing, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return false, fmt.Errorf("error reading existing subject %q: %w", s.Name, err)
	}
	*s = *existing
	return false, nil
}
