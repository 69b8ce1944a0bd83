package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/app/repositories"
)

// UniversityStore is the persistence the services need for universities
type UniversityStore interface {
	Create(ctx context.Context, u *models.University) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.University, error)
	List(ctx context.Context, search string, offset, limit uint64) ([]models.University, int64, error)
	ListAll(ctx context.Context) ([]models.University, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CourseStore is the persistence the services need for courses
type CourseStore interface {
	Create(ctx context.Context, c *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context, filter repositories.CourseListFilter, offset, limit uint64) ([]models.Course, int64, error)
	ListByUniversity(ctx context.Context, universityID uuid.UUID) ([]models.Course, error)
	LoadCatalog(ctx context.Context) ([]models.Course, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SubjectStore is the persistence the services need for subjects
type SubjectStore interface {
	List(ctx context.Context, search string, offset, limit uint64) ([]models.Subject, int64, error)
	ListAll(ctx context.Context) ([]models.Subject, error)
	Upsert(ctx context.Context, s *models.Subject) (bool, error)
}

// StudentStore is the persistence the services need for student records
type StudentStore interface {
	GetWithResults(ctx context.Context, id uuid.UUID) (*models.Student, error)
	SaveResults(ctx context.Context, student *models.Student) error
}

// CatalogCache holds a snapshot of the recommendable catalog
type CatalogCache interface {
	Get(ctx context.Context) ([]models.Course, bool, error)
	Set(ctx context.Context, catalog []models.Course) error
	Invalidate(ctx context.Context) error
}

var (
	_ UniversityStore = (*repositories.UniversityRepository)(nil)
	_ CourseStore     = (*repositories.CourseRepository)(nil)
	_ SubjectStore    = (*repositories.SubjectRepository)(nil)
	_ StudentStore    = (*repositories.StudentRepository)(nil)
)
