package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/app/repositories"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
)

var testLogger = zerolog.Nop()

// memStore is an in-memory stand-in for the four repositories.
type memStore struct {
	mu           sync.Mutex
	universities []models.University
	courses      []models.Course
	subjects     []models.Subject
	students     map[uuid.UUID]*models.Student

	catalogLoads int
	failCreate   error
}

func newMemStore() *memStore {
	return &memStore{students: map[uuid.UUID]*models.Student{}}
}

func (m *memStore) addUniversity(name string, status models.UniversityStatus) models.University {
	u := models.University{ID: uuid.New(), Name: name, Slug: strings.ToLower(strings.ReplaceAll(name, " ", "-")), Status: status}
	m.universities = append(m.universities, u)
	return u
}

func (m *memStore) addSubject(name string) models.Subject {
	s := models.Subject{ID: uuid.New(), Name: name, Code: strings.ToLower(name)}
	m.subjects = append(m.subjects, s)
	return s
}

func (m *memStore) addCourse(u models.University, name string, level models.CourseLevel, status models.CourseStatus, required ...models.RequiredSubject) models.Course {
	c := models.Course{
		ID:               uuid.New(),
		UniversityID:     u.ID,
		Name:             name,
		Slug:             strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Level:            level,
		Status:           status,
		RequiredSubjects: required,
	}
	m.courses = append(m.courses, c)
	return c
}

func needs(s models.Subject, category models.SubjectCategory) models.RequiredSubject {
	return models.RequiredSubject{SubjectID: s.ID, SubjectName: s.Name, Category: category}
}

type memUniversities struct{ *memStore }

func (m memUniversities) Create(_ context.Context, u *models.University) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return m.failCreate
	}
	for _, existing := range m.universities {
		if existing.Slug == u.Slug {
			return apperrors.ErrSlugConflict
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	m.universities = append(m.universities, *u)
	return nil
}

func (m memUniversities) GetByID(_ context.Context, id uuid.UUID) (*models.University, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.universities {
		if m.universities[i].ID == id {
			u := m.universities[i]
			return &u, nil
		}
	}
	return nil, apperrors.ErrUniversityNotFound
}

func (m memUniversities) List(_ context.Context, search string, offset, limit uint64) ([]models.University, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.University
	for _, u := range m.universities {
		if search == "" || strings.Contains(strings.ToLower(u.Name), strings.ToLower(search)) {
			matched = append(matched, u)
		}
	}
	return window(matched, offset, limit), int64(len(matched)), nil
}

func (m memUniversities) ListAll(_ context.Context) ([]models.University, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.University(nil), m.universities...), nil
}

func (m memUniversities) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.universities {
		if m.universities[i].ID == id {
			m.universities = append(m.universities[:i], m.universities[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrUniversityNotFound
}

type memCourses struct{ *memStore }

func (m memCourses) Create(_ context.Context, c *models.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return m.failCreate
	}
	for _, existing := range m.courses {
		if existing.UniversityID == c.UniversityID && existing.Slug == c.Slug {
			return apperrors.ErrSlugConflict
		}
	}
	c.ID = uuid.New()
	m.courses = append(m.courses, *c)
	return nil
}

func (m memCourses) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.courses {
		if m.courses[i].ID == id {
			c := m.courses[i]
			return &c, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (m memCourses) List(_ context.Context, filter repositories.CourseListFilter, offset, limit uint64) ([]models.Course, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.Course
	for _, c := range m.courses {
		if filter.Level != nil && c.Level != *filter.Level {
			continue
		}
		if filter.UniversityID != nil && c.UniversityID != *filter.UniversityID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, c)
	}
	return window(matched, offset, limit), int64(len(matched)), nil
}

func (m memCourses) ListByUniversity(_ context.Context, universityID uuid.UUID) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Course
	for _, c := range m.courses {
		if c.UniversityID == universityID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m memCourses) LoadCatalog(_ context.Context) ([]models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catalogLoads++
	byID := make(map[uuid.UUID]*models.University, len(m.universities))
	for i := range m.universities {
		u := m.universities[i]
		byID[u.ID] = &u
	}
	var out []models.Course
	for _, c := range m.courses {
		if c.Status == models.CourseInactive {
			continue
		}
		c.University = byID[c.UniversityID]
		out = append(out, c)
	}
	return out, nil
}

func (m memCourses) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.courses {
		if m.courses[i].ID == id {
			m.courses = append(m.courses[:i], m.courses[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrCourseNotFound
}

type memSubjects struct{ *memStore }

func (m memSubjects) List(_ context.Context, search string, offset, limit uint64) ([]models.Subject, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []models.Subject
	for _, s := range m.subjects {
		if search == "" || strings.Contains(strings.ToLower(s.Name), strings.ToLower(search)) {
			matched = append(matched, s)
		}
	}
	return window(matched, offset, limit), int64(len(matched)), nil
}

func (m memSubjects) ListAll(_ context.Context) ([]models.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Subject(nil), m.subjects...), nil
}

func (m memSubjects) Upsert(_ context.Context, s *models.Subject) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.subjects {
		if existing.Name == s.Name {
			s.ID = existing.ID
			return false, nil
		}
	}
	s.ID = uuid.New()
	m.subjects = append(m.subjects, *s)
	return true, nil
}

type memStudents struct{ *memStore }

func (m memStudents) GetWithResults(_ context.Context, id uuid.UUID) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	out := *s
	out.Results = append([]models.StudentSubjectResult(nil), s.Results...)
	return &out, nil
}

func (m memStudents) SaveResults(_ context.Context, student *models.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *student
	stored.Results = append([]models.StudentSubjectResult(nil), student.Results...)
	m.students[student.ID] = &stored
	return nil
}

func window[T any](items []T, offset, limit uint64) []T {
	if offset > uint64(len(items)) {
		return nil
	}
	end := offset + limit
	if end > uint64(len(items)) {
		end = uint64(len(items))
	}
	return items[offset:end]
}

// memCache records how the services use the catalog cache.
type memCache struct {
	catalog       []models.Course
	hit           bool
	getErr        error
	sets          int
	invalidations int
}

func (c *memCache) Get(_ context.Context) ([]models.Course, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	return c.catalog, c.hit, nil
}

func (c *memCache) Set(_ context.Context, catalog []models.Course) error {
	c.catalog = catalog
	c.hit = true
	c.sets++
	return nil
}

func (c *memCache) Invalidate(_ context.Context) error {
	c.catalog = nil
	c.hit = false
	c.invalidations++
	return nil
}
