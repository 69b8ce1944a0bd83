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

// StudentRepository stores the academic record the matcher reads
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetWithResults retrieves a student and their subject results in entry order
func (r *StudentRepository) GetWithResults(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	sql, args, err := r.sb.Select("id", "is_female", "created_at", "updated_at").
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student := &models.Student{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.IsFemale, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("studentID", id.String()).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}

	sql, args, err = r.sb.Select("r.subject_id", "s.name", "r.level", "r.grade").
		From("student_subject_results r").
		Join("subjects s ON s.id = r.subject_id").
		Where(squirrel.Eq{"r.student_id": id}).
		OrderBy("r.position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student results query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", id.String()).Msg("Error executing student results query")
		return nil, fmt.Errorf("error querying student results: %w", err)
	}
	defer rows.Close()

	student.Results = []models.StudentSubjectResult{}
	for rows.Next() {
		var res models.StudentSubjectResult
		var level string
		if err := rows.Scan(&res.SubjectID, &res.SubjectName, &level, &res.Grade); err != nil {
			return nil, fmt.Errorf("error scanning student result row: %w", err)
		}
		res.Level = models.EducationLevel(level)
		student.Results = append(student.Results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student result rows: %w", err)
	}
	return student, nil
}

// SaveResults creates the student if needed and replaces their results
func (r *StudentRepository) SaveResults(ctx context.Context, student *models.Student) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("students").
			Columns("id", "is_female").
			Values(student.ID, student.IsFemale).
			Suffix("ON CONFLICT (id) DO UPDATE SET is_female = EXCLUDED.is_female, updated_at = NOW() RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build upsert student query: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&student.CreatedAt, &student.UpdatedAt); err != nil {
			logger.Error().Err(err).Str("studentID", student.ID.String()).Msg("Error upserting student")
			return fmt.Errorf("error saving student: %w", err)
		}

		sql, args, err = r.sb.Delete("student_subject_results").Where(squirrel.Eq{"student_id": student.ID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build clear student results query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error clearing student results: %w", err)
		}

		if len(student.Results) == 0 {
			return nil
		}
		ins := r.sb.Insert("student_subject_results").Columns("student_id", "subject_id", "level", "grade", "position")
		for i, res := range student.Results {
			ins = ins.Values(student.ID, res.SubjectID, string(res.Level), res.Grade, i)
		}
		sql, args, err = ins.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert student results query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsForeignKeyError(err, "") {
				return fmt.Errorf("%w: result subject of student %s", apperrors.ErrSubjectNotFound, student.ID)
			}
			logger.Error().Err(err).Str("studentID", student.ID.String()).Msg("Error inserting student results")
			return fmt.Errorf("error saving student results: %w", err)
		}
		return nil
	})
}
