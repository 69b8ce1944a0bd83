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
	"github.com/yigit/unimatch/internal/db"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
	"github.com/yigit/unimatch/internal/pkg/dberrors"
	"github.com/yigit/unimatch/internal/pkg/logger"
)

const courseSlugConstraint = "courses_university_id_slug_key"

var courseColumns = []string{
	"c.id", "c.university_id", "c.name", "c.slug", "c.code", "c.level", "c.duration", "c.entry_points",
	"c.status", "c.description", "c.other_requirements", "c.created_at", "c.updated_at",
}

var courseUniversityColumns = []string{
	"u.id", "u.name", "u.slug", "u.status", "u.district", "u.description", "u.website", "u.logo",
	"u.created_at", "u.updated_at",
}

// CourseListFilter narrows a course listing
type CourseListFilter struct {
	Search       string
	Level        *models.CourseLevel
	UniversityID *uuid.UUID
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.Row, extra ...any) (*models.Course, error) {
	c := &models.Course{}
	var level, status string
	dest := []any{
		&c.ID, &c.UniversityID, &c.Name, &c.Slug, &c.Code, &level, &c.Duration, &c.EntryPoints,
		&status, &c.Description, &c.OtherRequirements, &c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	c.Level, _ = models.ParseCourseLevel(level)
	c.Status, _ = models.ParseCourseStatus(status)
	if c.OtherRequirements == nil {
		c.OtherRequirements = []string{}
	}
	c.RequiredSubjects = []models.RequiredSubject{}
	return c, nil
}

// Create inserts a course together with its required subjects in one transaction
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) error {
	otherReqs := c.OtherRequirements
	if otherReqs == nil {
		otherReqs = []string{}
	}

	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("courses").
			Columns("university_id", "name", "slug", "code", "level", "duration", "entry_points",
				"status", "description", "other_requirements").
			Values(c.UniversityID, c.Name, c.Slug, c.Code, string(c.Level), c.Duration, c.EntryPoints,
				string(c.Status), c.Description, otherReqs).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create course SQL")
			return fmt.Errorf("failed to build create course query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			if dberrors.IsDuplicateConstraintError(err, courseSlugConstraint) {
				return fmt.Errorf("%w: course slug %q", apperrors.ErrSlugConflict, c.Slug)
			}
			if dberrors.IsForeignKeyError(err, "") {
				return fmt.Errorf("%w: %s", apperrors.ErrUniversityNotFound, c.UniversityID)
			}
			logger.Error().Err(err).Str("name", c.Name).Msg("Error executing create course query")
			return fmt.Errorf("error creating course: %w", err)
		}

		if len(c.RequiredSubjects) == 0 {
			return nil
		}
		ins := r.sb.Insert("course_required_subjects").Columns("course_id", "subject_id", "category", "position")
		for i, rs := range c.RequiredSubjects {
			ins = ins.Values(c.ID, rs.SubjectID, string(rs.Category), i)
		}
		sql, args, err = ins.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert required subjects query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsForeignKeyError(err, "") {
				return fmt.Errorf("%w: required subject of course %q", apperrors.ErrSubjectNotFound, c.Name)
			}
			logger.Error().Err(err).Str("courseID", c.ID.String()).Msg("Error inserting required subjects")
			return fmt.Errorf("error inserting required subjects: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a course with its university and required subjects
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	cols := append(append([]string{}, courseColumns...), courseUniversityColumns...)
	sql, args, err := r.sb.Select(cols...).
		From("courses c").
		Join("universities u ON u.id = c.university_id").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourseWithUniversity(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	required, err := r.requiredSubjects(ctx, []uuid.UUID{course.ID})
	if err != nil {
		return nil, err
	}
	if rs, ok := required[course.ID]; ok {
		course.RequiredSubjects = rs
	}
	return course, nil
}

// List returns a page of courses in catalog order, with the total matching count
func (r *CourseRepository) List(ctx context.Context, filter CourseListFilter, offset, limit uint64) ([]models.Course, int64, error) {
	cols := append(append([]string{}, courseColumns...), "COUNT(*) OVER() AS total_count")
	q := r.sb.Select(cols...).From("courses c")
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"c.name": "%" + filter.Search + "%"})
	}
	if filter.Level != nil {
		q = q.Where(squirrel.Eq{"c.level": string(*filter.Level)})
	}
	if filter.UniversityID != nil {
		q = q.Where(squirrel.Eq{"c.university_id": *filter.UniversityID})
	}
	sql, args, err := q.OrderBy("c.created_at ASC", "c.id ASC").Offset(offset).Limit(limit).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, 0, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, 0, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	var total int64
	for rows.Next() {
		c, err := scanCourse(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, total, nil
}

// ListByUniversity returns the courses of one university without relations
func (r *CourseRepository) ListByUniversity(ctx context.Context, universityID uuid.UUID) ([]models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses c").
		Where(squirrel.Eq{"c.university_id": universityID}).
		OrderBy("c.created_at ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses by university query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("universityID", universityID.String()).Msg("Error executing list courses by university query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// LoadCatalog returns every course that can be recommended, with its university and
// required subjects, ordered by creation time. Inactive courses are left out.
func (r *CourseRepository) LoadCatalog(ctx context.Context) ([]models.Course, error) {
	cols := append(append([]string{}, courseColumns...), courseUniversityColumns...)
	sql, args, err := r.sb.Select(cols...).
		From("courses c").
		Join("universities u ON u.id = c.university_id").
		Where(squirrel.NotEq{"c.status": string(models.CourseInactive)}).
		OrderBy("c.created_at ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build load catalog query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing load catalog query")
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}
	defer rows.Close()

	catalog := []models.Course{}
	ids := []uuid.UUID{}
	for rows.Next() {
		c, err := scanCourseWithUniversity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning catalog row: %w", err)
		}
		catalog = append(catalog, *c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog rows: %w", err)
	}

	required, err := r.requiredSubjects(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range catalog {
		if rs, ok := required[catalog[i].ID]; ok {
			catalog[i].RequiredSubjects = rs
		}
	}
	return catalog, nil
}

// Delete removes a course and its required subjects
func (r *CourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id.String()).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) requiredSubjects(ctx context.Context, courseIDs []uuid.UUID) (map[uuid.UUID][]models.RequiredSubject, error) {
	result := make(map[uuid.UUID][]models.RequiredSubject, len(courseIDs))
	if len(courseIDs) == 0 {
		return result, nil
	}

	sql, args, err := r.sb.Select("crs.course_id", "s.id", "s.name", "crs.category").
		From("course_required_subjects crs").
		Join("subjects s ON s.id = crs.subject_id").
		Where(squirrel.Eq{"crs.course_id": courseIDs}).
		OrderBy("crs.course_id", "crs.position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build required subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing required subjects query")
		return nil, fmt.Errorf("error querying required subjects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var courseID uuid.UUID
		var rs models.RequiredSubject
		var category string
		if err := rows.Scan(&courseID, &rs.SubjectID, &rs.SubjectName, &category); err != nil {
			return nil, fmt.Errorf("error scanning required subject row: %w", err)
		}
		rs.Category = models.ParseSubjectCategory(category)
		result[courseID] = append(result[courseID], rs)
	}
	return result, rows.Err()
}

func scanCourseWithUniversity(row pgx.Row) (*models.Course, error) {
	u := &models.University{}
	var uniStatus string
	course, err := scanCourse(row,
		&u.ID, &u.Name, &u.Slug, &uniStatus, &u.District, &u.Description, &u.Website, &u.Logo,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Status = models.ParseUniversityStatus(uniStatus)
	course.University = u
	return course, nil
}
