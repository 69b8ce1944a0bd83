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
	"github.com/yigit/unimatch/internal/pkg/dberrors"
	"github.com/yigit/unimatch/internal/pkg/logger"
)

const universitySlugConstraint = "universities_slug_key"

var universityColumns = []string{
	"id", "name", "slug", "status", "district", "description", "website", "logo", "created_at", "updated_at",
}

// UniversityRepository handles university database operations
type UniversityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUniversityRepository creates a new UniversityRepository
func NewUniversityRepository(db *pgxpool.Pool) *UniversityRepository {
	return &UniversityRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUniversity(row pgx.Row, extra ...any) (*models.University, error) {
	u := &models.University{}
	var status string
	dest := []any{
		&u.ID, &u.Name, &u.Slug, &status, &u.District, &u.Description, &u.Website, &u.Logo,
		&u.CreatedAt, &u.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	u.Status = models.ParseUniversityStatus(status)
	return u, nil
}

// Create inserts a university and fills in its generated fields
func (r *UniversityRepository) Create(ctx context.Context, u *models.University) error {
	sql, args, err := r.sb.Insert("universities").
		Columns("name", "slug", "status", "district", "description", "website", "logo").
		Values(u.Name, u.Slug, string(u.Status), u.District, u.Description, u.Website, u.Logo).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create university SQL")
		return fmt.Errorf("failed to build create university query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, universitySlugConstraint) {
			return fmt.Errorf("%w: university slug %q", apperrors.ErrSlugConflict, u.Slug)
		}
		logger.Error().Err(err).Str("name", u.Name).Msg("Error executing create university query")
		return fmt.Errorf("error creating university: %w", err)
	}
	return nil
}

// GetByID retrieves a university by ID
func (r *UniversityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.University, error) {
	sql, args, err := r.sb.Select(universityColumns...).
		From("universities").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get university by ID SQL")
		return nil, fmt.Errorf("failed to build get university query: %w", err)
	}

	u, err := scanUniversity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUniversityNotFound
		}
		logger.Error().Err(err).Str("universityID", id.String()).Msg("Error scanning university row")
		return nil, fmt.Errorf("error getting university by ID: %w", err)
	}
	return u, nil
}

// List returns a page of universities ordered by name, with the total matching count
func (r *UniversityRepository) List(ctx context.Context, search string, offset, limit uint64) ([]models.University, int64, error) {
	cols := append(append([]string{}, universityColumns...), "COUNT(*) OVER() AS total_count")
	q := r.sb.Select(cols...).From("universities")
	if search != "" {
		q = q.Where(squirrel.ILike{"name": "%" + search + "%"})
	}
	sql, args, err := q.OrderBy("name ASC", "id ASC").Offset(offset).Limit(limit).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list universities SQL")
		return nil, 0, fmt.Errorf("failed to build list universities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list universities query")
		return nil, 0, fmt.Errorf("error querying universities: %w", err)
	}
	defer rows.Close()

	universities := []models.University{}
	var total int64
	for rows.Next() {
		u, err := scanUniversity(rows, &total)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning university row during list")
			return nil, 0, fmt.Errorf("error scanning university row: %w", err)
		}
		universities = append(universities, *u)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating university rows")
		return nil, 0, fmt.Errorf("error iterating university rows: %w", err)
	}
	return universities, total, nil
}

// ListAll returns every university; used to resolve names during ingestion
func (r *UniversityRepository) ListAll(ctx context.Context) ([]models.University, error) {
	sql, args, err := r.sb.Select(universityColumns...).
		From("universities").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list all universities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list all universities query")
		return nil, fmt.Errorf("error querying universities: %w", err)
	}
	defer rows.Close()

	universities := []models.University{}
	for rows.Next() {
		u, err := scanUniversity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning university row: %w", err)
		}
		universities = append(universities, *u)
	}
	return universities, rows.Err()
}

// Delete removes a university and, by cascade, its courses
func (r *UniversityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("universities").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete university query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("universityID", id.String()).Msg("Error executing delete university query")
		return fmt.Errorf("error deleting university: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUniversityNotFound
	}
	return nil
}
