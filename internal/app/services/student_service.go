package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/domain/matching"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
)

// StudentService defines the interface for stored student records
type StudentService interface {
	SaveResults(ctx context.Context, id uuid.UUID, req *dto.SaveStudentResultsRequest) (*dto.StudentResultsResponse, error)
	GetStudent(ctx context.Context, id uuid.UUID) (*models.Student, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	students StudentStore
	subjects SubjectStore
	logger   zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(students StudentStore, subjects SubjectStore, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		students: students,
		subjects: subjects,
		logger:   logger,
	}
}

// SaveResults replaces the graded subjects of a student. Subjects that are not in the
// catalog are dropped and reported back.
func (s *studentServiceImpl) SaveResults(ctx context.Context, id uuid.UUID, req *dto.SaveStudentResultsRequest) (*dto.StudentResultsResponse, error) {
	levels := make([]models.EducationLevel, len(req.Results))
	names := make([]string, len(req.Results))
	for i, r := range req.Results {
		level, ok := models.ParseEducationLevel(r.Level)
		if !ok {
			return nil, fmt.Errorf("%w: result %d has unknown level %q", apperrors.ErrValidationFailed, i, r.Level)
		}
		if !matching.IsValidGrade(level, r.Grade) {
			return nil, fmt.Errorf("%w: result %d has grade %q which is not on the %s scale", apperrors.ErrValidationFailed, i, r.Grade, level)
		}
		levels[i] = level
		names[i] = r.SubjectName
	}

	resolved, unknown, err := resolveSubjects(ctx, s.subjects, names)
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrNoMatchingSubjects, apperrors.ErrNoMatchingSubjects.Error()).
			WithDetails(map[string]interface{}{"unmatchedSubjects": unknown})
	}

	type resultKey struct {
		subject uuid.UUID
		level   models.EducationLevel
	}
	seen := make(map[resultKey]bool, len(resolved))
	student := &models.Student{ID: id, IsFemale: req.IsFemale}
	for i, r := range req.Results {
		subject, ok := resolved[i]
		if !ok {
			continue
		}
		key := resultKey{subject.ID, levels[i]}
		if seen[key] {
			continue
		}
		seen[key] = true
		student.Results = append(student.Results, models.StudentSubjectResult{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
			Level:       levels[i],
			Grade:       r.Grade,
		})
	}

	if err := s.students.SaveResults(ctx, student); err != nil {
		return nil, fmt.Errorf("error saving student results: %w", err)
	}

	stored, err := s.students.GetWithResults(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("studentID", id.String()).
		Int("results", len(stored.Results)).
		Int("unknownSubjects", len(unknown)).
		Msg("Student results saved")

	return &dto.StudentResultsResponse{Student: stored, UnknownSubjects: unknown}, nil
}

// GetStudent retrieves a student with their stored results
func (s *studentServiceImpl) GetStudent(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return s.students.GetWithResults(ctx, id)
}
