package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UniversityRepository *UniversityRepository
	CourseRepository     *CourseRepository
	SubjectRepository    *SubjectRepository
	StudentRepository    *StudentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UniversityRepository: NewUniversityRepository(db),
		CourseRepository:     NewCourseRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		StudentRepository:    NewStudentRepository(db),
	}
}
