package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
	"github.com/yigit/unimatch/internal/pkg/normalize"
)

// catalogWriter creates catalog entities unless an entity with the same normalized name
// already exists. The indexes it keeps are only valid for one request or batch.
type catalogWriter struct {
	universities UniversityStore
	courses      CourseStore
	subjects     SubjectStore

	universityIdx map[string]*models.University
	subjectIdx    map[string]*models.Subject
	courseIdx     map[uuid.UUID]map[string]*models.Course
}

func newCatalogWriter(universities UniversityStore, courses CourseStore, subjects SubjectStore) *catalogWriter {
	return &catalogWriter{
		universities: universities,
		courses:      courses,
		subjects:     subjects,
		courseIdx:    map[uuid.UUID]map[string]*models.Course{},
	}
}

func (w *catalogWriter) loadUniversities(ctx context.Context) error {
	if w.universityIdx != nil {
		return nil
	}
	all, err := w.universities.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("error loading universities: %w", err)
	}
	w.universityIdx = make(map[string]*models.University, len(all))
	for i := range all {
		key := normalize.University(all[i].Name)
		if _, dup := w.universityIdx[key]; !dup {
			w.universityIdx[key] = &all[i]
		}
	}
	return nil
}

// findUniversity resolves a free-text university name.
func (w *catalogWriter) findUniversity(ctx context.Context, name string) (*models.University, error) {
	if err := w.loadUniversities(ctx); err != nil {
		return nil, err
	}
	return w.universityIdx[normalize.University(name)], nil
}

// ensureUniversity returns the existing university with u's normalized name, or stores u.
func (w *catalogWriter) ensureUniversity(ctx context.Context, u *models.University) (*models.University, bool, error) {
	u.Name = strings.TrimSpace(u.Name)
	existing, err := w.findUniversity(ctx, u.Name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	u.Slug = normalize.Slug(u.Name)
	if u.Slug == "" {
		return nil, false, fmt.Errorf("%w: university name %q has no usable characters", apperrors.ErrValidationFailed, u.Name)
	}
	if err := w.universities.Create(ctx, u); err != nil {
		return nil, false, err
	}
	w.universityIdx[normalize.University(u.Name)] = u
	return u, true, nil
}

func (w *catalogWriter) loadSubjects(ctx context.Context) error {
	if w.subjectIdx != nil {
		return nil
	}
	all, err := w.subjects.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("error loading subjects: %w", err)
	}
	w.subjectIdx = make(map[string]*models.Subject, len(all))
	for i := range all {
		key := normalize.Name(all[i].Name)
		if _, dup := w.subjectIdx[key]; !dup {
			w.subjectIdx[key] = &all[i]
		}
	}
	return nil
}

// ensureSubject returns the subject with the given name, creating it when unknown.
func (w *catalogWriter) ensureSubject(ctx context.Context, s *models.Subject) (*models.Subject, bool, error) {
	if err := w.loadSubjects(ctx); err != nil {
		return nil, false, err
	}
	s.Name = strings.TrimSpace(s.Name)
	key := normalize.Name(s.Name)
	if key == "" {
		return nil, false, fmt.Errorf("%w: subject name is empty", apperrors.ErrValidationFailed)
	}
	if existing, ok := w.subjectIdx[key]; ok {
		return existing, false, nil
	}

	if s.Code == "" {
		s.Code = normalize.SubjectCode(s.Name)
	}
	created, err := w.subjects.Upsert(ctx, s)
	if err != nil {
		return nil, false, err
	}
	w.subjectIdx[key] = s
	return s, created, nil
}

func (w *catalogWriter) loadCourses(ctx context.Context, universityID uuid.UUID) (map[string]*models.Course, error) {
	if idx, ok := w.courseIdx[universityID]; ok {
		return idx, nil
	}
	existing, err := w.courses.ListByUniversity(ctx, universityID)
	if err != nil {
		return nil, fmt.Errorf("error loading courses of university: %w", err)
	}
	idx := make(map[string]*models.Course, len(existing))
	for i := range existing {
		idx[normalize.Course(existing[i].Name)] = &existing[i]
	}
	w.courseIdx[universityID] = idx
	return idx, nil
}

// findCourse returns the university's course with the given normalized name, if any.
func (w *catalogWriter) findCourse(ctx context.Context, universityID uuid.UUID, name string) (*models.Course, error) {
	idx, err := w.loadCourses(ctx, universityID)
	if err != nil {
		return nil, err
	}
	return idx[normalize.Course(name)], nil
}

// ensureCourse returns the course of c's university with c's normalized name, or stores c
// along with its required subjects. Callers check findCourse before creating subjects.
func (w *catalogWriter) ensureCourse(ctx context.Context, c *models.Course) (*models.Course, bool, error) {
	c.Name = strings.TrimSpace(c.Name)
	idx, err := w.loadCourses(ctx, c.UniversityID)
	if err != nil {
		return nil, false, err
	}

	key := normalize.Course(c.Name)
	if existing, ok := idx[key]; ok {
		return existing, false, nil
	}

	c.Slug = normalize.Slug(c.Name)
	if c.Slug == "" {
		return nil, false, fmt.Errorf("%w: course name %q has no usable characters", apperrors.ErrValidationFailed, c.Name)
	}
	if c.Code == nil || strings.TrimSpace(*c.Code) == "" {
		code := normalize.CourseCode(c.Name)
		c.Code = &code
	}
	if err := w.courses.Create(ctx, c); err != nil {
		return nil, false, err
	}
	idx[key] = c
	return c, true, nil
}

// requiredSubjects resolves subject names into required subjects, creating unknown subjects.
// Repeated subjects keep their first category.
func (w *catalogWriter) requiredSubjects(ctx context.Context, names []string, categories []string) ([]models.RequiredSubject, error) {
	out := make([]models.RequiredSubject, 0, len(names))
	seen := make(map[uuid.UUID]bool, len(names))
	for i, name := range names {
		subject, _, err := w.ensureSubject(ctx, &models.Subject{Name: name})
		if err != nil {
			return nil, fmt.Errorf("required subject %q: %w", name, err)
		}
		if seen[subject.ID] {
			continue
		}
		seen[subject.ID] = true

		var category string
		if i < len(categories) {
			category = categories[i]
		}
		out = append(out, models.RequiredSubject{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
			Category:    models.ParseSubjectCategory(category),
		})
	}
	return out, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
