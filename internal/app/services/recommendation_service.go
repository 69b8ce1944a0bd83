package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/domain/matching"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
	"github.com/yigit/unimatch/internal/pkg/metrics"
	"github.com/yigit/unimatch/internal/pkg/normalize"
)

// RecommendationOptions are the policy knobs of the ranker
type RecommendationOptions struct {
	FemaleBonus     float64
	DefaultPageSize int
	MaxPageSize     int
}

// RecommendationService defines the interface for ranking the catalog against a student
type RecommendationService interface {
	RecommendByCoverage(ctx context.Context, req *dto.CoverageRecommendationRequest) (*dto.RecommendationResponse, error)
	RecommendByGrades(ctx context.Context, req *dto.WeightedRecommendationRequest) (*dto.RecommendationResponse, error)
	TotalPoints(ctx context.Context, req *dto.TotalPointsRequest) (*dto.TotalPointsResponse, error)
}

// recommendationServiceImpl implements RecommendationService
type recommendationServiceImpl struct {
	subjects SubjectStore
	students StudentStore
	snapshot *catalogSnapshot
	scorer   *matching.Scorer
	opts     RecommendationOptions
	logger   zerolog.Logger
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(
	courses CourseStore,
	subjects SubjectStore,
	students StudentStore,
	cache CatalogCache,
	opts RecommendationOptions,
	logger zerolog.Logger,
) RecommendationService {
	if opts.DefaultPageSize < 1 {
		opts.DefaultPageSize = matching.DefaultLimit
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	return &recommendationServiceImpl{
		subjects: subjects,
		students: students,
		snapshot: &catalogSnapshot{courses: courses, cache: cache, logger: logger},
		scorer:   matching.NewScorer(opts.FemaleBonus),
		opts:     opts,
		logger:   logger,
	}
}

// RecommendByCoverage ranks courses by the share of their required subjects the student
// holds. A stored student record wins over ad hoc subject grades.
func (s *recommendationServiceImpl) RecommendByCoverage(ctx context.Context, req *dto.CoverageRecommendationRequest) (*dto.RecommendationResponse, error) {
	start := time.Now()
	defer func() {
		metrics.RecommendationDuration.WithLabelValues(metrics.ModeCoverage).Observe(time.Since(start).Seconds())
	}()

	var subjectIDs []uuid.UUID
	var unmatched []string
	switch {
	case req.StudentID != nil:
		student, err := s.students.GetWithResults(ctx, *req.StudentID)
		if err != nil {
			s.countOutcome(metrics.ModeCoverage, err)
			return nil, err
		}
		subjectIDs = coverageSubjects(student.Results)
	case len(req.SubjectGrades) > 0:
		names := make([]string, 0, len(req.SubjectGrades))
		for name := range req.SubjectGrades {
			names = append(names, name)
		}
		sort.Strings(names)

		resolved, missing, err := resolveSubjects(ctx, s.subjects, names)
		if err != nil {
			return nil, err
		}
		unmatched = missing
		for _, subject := range resolved {
			subjectIDs = append(subjectIDs, subject.ID)
		}
	default:
		s.countOutcome(metrics.ModeCoverage, apperrors.ErrMissingStudentInput)
		return nil, apperrors.ErrMissingStudentInput
	}

	catalog, err := s.filteredCatalog(ctx, req.CatalogFilter)
	if err != nil {
		return nil, err
	}

	ranked, err := matching.RankByCoverage(subjectIDs, catalog)
	if err != nil {
		err = noSubjectsError(err, unmatched)
		s.countOutcome(metrics.ModeCoverage, err)
		return nil, err
	}

	s.countOutcome(metrics.ModeCoverage, nil)
	return s.page(ranked, req.Page, req.Limit, unmatched), nil
}

// RecommendByGrades ranks courses by weighted grade points on the requested level's scale.
func (s *recommendationServiceImpl) RecommendByGrades(ctx context.Context, req *dto.WeightedRecommendationRequest) (*dto.RecommendationResponse, error) {
	start := time.Now()
	defer func() {
		metrics.RecommendationDuration.WithLabelValues(metrics.ModeWeighted).Observe(time.Since(start).Seconds())
	}()

	if len(req.ALevelSubjects) == 0 && len(req.OLevelGrades) == 0 {
		s.countOutcome(metrics.ModeWeighted, apperrors.ErrMissingStudentInput)
		return nil, apperrors.ErrMissingStudentInput
	}

	level := models.LevelALevel
	if req.Level != "" {
		parsed, ok := models.ParseEducationLevel(req.Level)
		if !ok {
			return nil, fmt.Errorf("%w: unknown education level %q", apperrors.ErrValidationFailed, req.Level)
		}
		level = parsed
	}

	names := make([]string, len(req.ALevelSubjects))
	for i, sg := range req.ALevelSubjects {
		names[i] = sg.SubjectName
	}
	resolved, unmatched, err := resolveSubjects(ctx, s.subjects, names)
	if err != nil {
		return nil, err
	}

	profile := matching.Profile{Level: level, OLevelGrades: req.OLevelGrades, IsFemale: req.IsFemale}
	for i, sg := range req.ALevelSubjects {
		subject, ok := resolved[i]
		if !ok {
			continue
		}
		profile.Results = append(profile.Results, models.StudentSubjectResult{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
			Level:       level,
			Grade:       sg.Grade,
		})
	}

	catalog, err := s.filteredCatalog(ctx, req.CatalogFilter)
	if err != nil {
		return nil, err
	}

	ranked, err := s.scorer.RankByGrades(profile, catalog)
	if err != nil {
		err = noSubjectsError(err, unmatched)
		s.countOutcome(metrics.ModeWeighted, err)
		return nil, err
	}

	s.countOutcome(metrics.ModeWeighted, nil)
	return s.page(ranked, req.Page, req.Limit, unmatched), nil
}

// TotalPoints sums the grade points of a submission.
func (s *recommendationServiceImpl) TotalPoints(_ context.Context, req *dto.TotalPointsRequest) (*dto.TotalPointsResponse, error) {
	level, ok := models.ParseEducationLevel(req.Level)
	if !ok {
		return nil, fmt.Errorf("%w: unknown education level %q", apperrors.ErrValidationFailed, req.Level)
	}
	return &dto.TotalPointsResponse{Level: level, TotalPoints: matching.TotalPoints(level, req.Grades)}, nil
}

// resolveSubjects maps free-text names to known subjects by normalized name. The result
// is keyed by the position of the name; names that match nothing are returned in order.
func resolveSubjects(ctx context.Context, subjects SubjectStore, names []string) (map[int]models.Subject, []string, error) {
	if len(names) == 0 {
		return map[int]models.Subject{}, nil, nil
	}

	all, err := subjects.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading subjects: %w", err)
	}
	byName := make(map[string]models.Subject, len(all))
	for _, subject := range all {
		key := normalize.Name(subject.Name)
		if _, dup := byName[key]; !dup {
			byName[key] = subject
		}
	}

	resolved := make(map[int]models.Subject, len(names))
	var unmatched []string
	for i, name := range names {
		subject, ok := byName[normalize.Name(name)]
		if !ok {
			unmatched = append(unmatched, name)
			continue
		}
		resolved[i] = subject
	}
	return resolved, unmatched, nil
}

// filteredCatalog narrows the catalog before ranking so totals count only eligible courses.
// coverageSubjects picks the subjects of one sitting: A-Level when the student has any,
// otherwise O-Level. Course requirements are A-Level subjects.
func coverageSubjects(results []models.StudentSubjectResult) []uuid.UUID {
	level := models.LevelOLevel
	for _, r := range results {
		if r.Level == models.LevelALevel {
			level = models.LevelALevel
			break
		}
	}

	var ids []uuid.UUID
	for _, r := range results {
		if r.Level == level {
			ids = append(ids, r.SubjectID)
		}
	}
	return ids
}

func (s *recommendationServiceImpl) filteredCatalog(ctx context.Context, filter dto.CatalogFilter) ([]models.Course, error) {
	var level models.CourseLevel
	if filter.Level != "" {
		parsed, ok := models.ParseCourseLevel(filter.Level)
		if !ok {
			return nil, fmt.Errorf("%w: unknown course level %q", apperrors.ErrValidationFailed, filter.Level)
		}
		level = parsed
	}
	search := normalize.Name(filter.Search)

	catalog, err := s.snapshot.Load(ctx)
	if err != nil {
		return nil, err
	}
	if level == "" && filter.UniversityID == nil && search == "" {
		return catalog, nil
	}

	filtered := make([]models.Course, 0, len(catalog))
	for _, c := range catalog {
		if level != "" && c.Level != level {
			continue
		}
		if filter.UniversityID != nil && c.UniversityID != *filter.UniversityID {
			continue
		}
		if search != "" && !strings.Contains(normalize.Course(c.Name), search) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered, nil
}

func (s *recommendationServiceImpl) page(ranked []matching.Match, page, limit int, unmatched []string) *dto.RecommendationResponse {
	if limit < 1 {
		limit = s.opts.DefaultPageSize
	}
	if limit > s.opts.MaxPageSize {
		limit = s.opts.MaxPageSize
	}

	items, meta := matching.Paginate(ranked, page, limit)
	return &dto.RecommendationResponse{
		Success:           true,
		Data:              dto.FromMatches(items),
		Meta:              meta,
		UnmatchedSubjects: unmatched,
		Timestamp:         time.Now(),
	}
}

func (s *recommendationServiceImpl) countOutcome(mode string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrMissingStudentInput), errors.Is(err, apperrors.ErrNoMatchingSubjects):
		outcome = "rejected"
	case errors.Is(err, apperrors.ErrStudentNotFound):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	metrics.RecommendationsServed.WithLabelValues(mode, outcome).Inc()
}

// noSubjectsError turns the ranker's refusal into the API's "no matching subjects" signal.
func noSubjectsError(err error, unmatched []string) error {
	if !errors.Is(err, matching.ErrNoStudentSubjects) {
		return err
	}
	if len(unmatched) == 0 {
		return apperrors.ErrNoMatchingSubjects
	}
	return apperrors.NewCustomError(apperrors.ErrNoMatchingSubjects,
		fmt.Sprintf("none of the provided subjects are known: %s", strings.Join(unmatched, ", "))).
		WithDetails(map[string]interface{}{"unmatchedSubjects": unmatched})
}
