package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/app/repositories"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
	"github.com/yigit/unimatch/internal/pkg/helpers"
)

// CatalogService defines the interface for browsing and curating the catalog
type CatalogService interface {
	CreateUniversity(ctx context.Context, req *dto.CreateUniversityRequest) (*models.University, error)
	GetUniversity(ctx context.Context, id uuid.UUID) (*models.University, error)
	ListUniversities(ctx context.Context, filter *dto.UniversityFilterRequest) (*dto.UniversityListResponse, error)
	DeleteUniversity(ctx context.Context, id uuid.UUID) error

	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error)
	ListCourses(ctx context.Context, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error

	ListSubjects(ctx context.Context, filter *dto.SubjectFilterRequest) (*dto.SubjectListResponse, error)
}

// catalogServiceImpl implements CatalogService
type catalogServiceImpl struct {
	universities UniversityStore
	courses      CourseStore
	subjects     SubjectStore
	snapshot     *catalogSnapshot
	logger       zerolog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	universities UniversityStore,
	courses CourseStore,
	subjects SubjectStore,
	cache CatalogCache,
	logger zerolog.Logger,
) CatalogService {
	return &catalogServiceImpl{
		universities: universities,
		courses:      courses,
		subjects:     subjects,
		snapshot:     &catalogSnapshot{courses: courses, cache: cache, logger: logger},
		logger:       logger,
	}
}

// CreateUniversity stores a university unless one with the same normalized name exists
func (s *catalogServiceImpl) CreateUniversity(ctx context.Context, req *dto.CreateUniversityRequest) (*models.University, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	w := newCatalogWriter(s.universities, s.courses, s.subjects)
	u, created, err := w.ensureUniversity(ctx, &models.University{
		Name:        req.Name,
		Status:      models.ParseUniversityStatus(req.Status),
		District:    optionalString(req.District),
		Description: optionalString(req.Description),
		Website:     optionalString(req.Website),
		Logo:        optionalString(req.Logo),
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperrors.NewCustomError(apperrors.ErrUniversityAlreadyExists,
			fmt.Sprintf("university %q already exists", u.Name)).
			WithDetails(map[string]interface{}{"id": u.ID.String(), "slug": u.Slug})
	}

	s.logger.Info().Str("universityID", u.ID.String()).Str("slug", u.Slug).Msg("University created")
	return u, nil
}

// GetUniversity retrieves a university by ID
func (s *catalogServiceImpl) GetUniversity(ctx context.Context, id uuid.UUID) (*models.University, error) {
	return s.universities.GetByID(ctx, id)
}

// ListUniversities returns a page of universities
func (s *catalogServiceImpl) ListUniversities(ctx context.Context, filter *dto.UniversityFilterRequest) (*dto.UniversityListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	items, total, err := s.universities.List(ctx, strings.TrimSpace(filter.Search), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing universities: %w", err)
	}
	return &dto.UniversityListResponse{
		Universities:   items,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.Size),
	}, nil
}

// DeleteUniversity removes a university together with its courses
func (s *catalogServiceImpl) DeleteUniversity(ctx context.Context, id uuid.UUID) error {
	if err := s.universities.Delete(ctx, id); err != nil {
		return err
	}
	s.snapshot.Invalidate(ctx)
	return nil
}

// CreateCourse stores a course unless its university already has one with the same
// normalized name. Unknown required subjects are created.
func (s *catalogServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	university, err := s.universities.GetByID(ctx, req.UniversityID)
	if err != nil {
		return nil, err
	}

	course, err := courseFromRequest(req)
	if err != nil {
		return nil, err
	}
	course.UniversityID = university.ID

	w := newCatalogWriter(s.universities, s.courses, s.subjects)
	existing, err := w.findCourse(ctx, university.ID, course.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, courseExistsError(university, existing)
	}

	names := make([]string, len(req.RequiredSubjects))
	categories := make([]string, len(req.RequiredSubjects))
	for i, rs := range req.RequiredSubjects {
		names[i], categories[i] = rs.SubjectName, rs.Category
	}
	if course.RequiredSubjects, err = w.requiredSubjects(ctx, names, categories); err != nil {
		return nil, err
	}

	stored, created, err := w.ensureCourse(ctx, course)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, courseExistsError(university, stored)
	}

	stored.University = university
	s.snapshot.Invalidate(ctx)
	s.logger.Info().Str("courseID", stored.ID.String()).Str("slug", stored.Slug).Msg("Course created")
	return stored, nil
}

func courseExistsError(university *models.University, course *models.Course) error {
	return apperrors.NewCustomError(apperrors.ErrCourseAlreadyExists,
		fmt.Sprintf("%s already offers %q", university.Name, course.Name)).
		WithDetails(map[string]interface{}{"id": course.ID.String(), "slug": course.Slug})
}

func courseFromRequest(req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Name:              strings.TrimSpace(req.Name),
		Code:              optionalString(req.Code),
		Duration:          req.Duration,
		EntryPoints:       req.EntryPoints,
		Description:       optionalString(req.Description),
		OtherRequirements: req.OtherRequirements,
	}

	switch {
	case req.Level != "":
		level, ok := models.ParseCourseLevel(req.Level)
		if !ok {
			return nil, fmt.Errorf("%w: unknown course level %q", apperrors.ErrValidationFailed, req.Level)
		}
		course.Level = level
	case req.Duration != nil:
		course.Level = models.LevelForDuration(*req.Duration)
	default:
		course.Level = models.CourseLevelBachelors
	}

	status, ok := models.ParseCourseStatus(req.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown course status %q", apperrors.ErrValidationFailed, req.Status)
	}
	course.Status = status
	return course, nil
}

// GetCourse retrieves a course with its university and required subjects
func (s *catalogServiceImpl) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// ListCourses returns a page of courses
func (s *catalogServiceImpl) ListCourses(ctx context.Context, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	items, total, err := s.courses.List(ctx, repositories.CourseListFilter{
		Search:       strings.TrimSpace(filter.Search),
		Level:        filter.Level,
		UniversityID: filter.UniversityID,
	}, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return &dto.CourseListResponse{
		Courses:        items,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.Size),
	}, nil
}

// DeleteCourse removes a course
func (s *catalogServiceImpl) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return err
		}
		return fmt.Errorf("error deleting course: %w", err)
	}
	s.snapshot.Invalidate(ctx)
	return nil
}

// ListSubjects returns a page of subjects
func (s *catalogServiceImpl) ListSubjects(ctx context.Context, filter *dto.SubjectFilterRequest) (*dto.SubjectListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	items, total, err := s.subjects.List(ctx, strings.TrimSpace(filter.Search), offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	return &dto.SubjectListResponse{
		Subjects:       items,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.Size),
	}, nil
}
