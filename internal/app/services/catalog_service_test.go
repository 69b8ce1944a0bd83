package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
)

func newCatalogServiceForTest(store *memStore, cache *memCache) CatalogService {
	return NewCatalogService(memUniversities{store}, memCourses{store}, memSubjects{store}, asCatalogCache(cache), testLogger)
}

// asCatalogCache keeps a nil *memCache from becoming a non-nil interface.
func asCatalogCache(cache *memCache) CatalogCache {
	if cache == nil {
		return nil
	}
	return cache
}

func TestCatalogService_CreateUniversity(t *testing.T) {
	store := newMemStore()
	svc := newCatalogServiceForTest(store, &memCache{})

	u, err := svc.CreateUniversity(context.Background(), &dto.CreateUniversityRequest{
		Name:     "  Gulu University (GU) ",
		Status:   "private",
		District: "Gulu",
	})
	require.NoError(t, err)
	assert.Equal(t, "Gulu University (GU)", u.Name)
	assert.Equal(t, "gulu-university-gu", u.Slug)
	assert.Equal(t, models.UniversityPrivate, u.Status)
	require.NotNil(t, u.District)
	assert.Equal(t, "Gulu", *u.District)
	assert.Nil(t, u.Website)

	_, err = svc.CreateUniversity(context.Background(), &dto.CreateUniversityRequest{Name: "GULU UNIVERSITY"})
	require.ErrorIs(t, err, apperrors.ErrUniversityAlreadyExists)

	var custom *apperrors.CustomError
	require.True(t, errors.As(err, &custom))
	assert.Equal(t, u.ID.String(), custom.Details["id"])
	assert.Len(t, store.universities, 1)
}

func TestCatalogService_CreateUniversity_Blank(t *testing.T) {
	svc := newCatalogServiceForTest(newMemStore(), nil)

	_, err := svc.CreateUniversity(context.Background(), &dto.CreateUniversityRequest{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateUniversity(context.Background(), &dto.CreateUniversityRequest{Name: "(!!)"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCatalogService_CreateCourse(t *testing.T) {
	store := newMemStore()
	maths := store.addSubject("Mathematics")
	university := store.addUniversity("Makerere University", models.UniversityPublic)
	cache := &memCache{}
	svc := newCatalogServiceForTest(store, cache)

	duration := 3
	course, err := svc.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		UniversityID: university.ID,
		Name:         "Bachelor of Statistics",
		Duration:     &duration,
		Status:       "Under Review",
		RequiredSubjects: []dto.RequiredSubjectInput{
			{SubjectName: "mathematics", Category: "essential"},
			{SubjectName: "Economics", Category: "relevant"},
			{SubjectName: "Mathematics", Category: "desirable"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "bachelor-of-statistics", course.Slug)
	require.NotNil(t, course.Code)
	assert.Equal(t, "BOS", *course.Code)
	assert.Equal(t, models.CourseLevelDiploma, course.Level, "level follows the duration")
	assert.Equal(t, models.CourseUnderReview, course.Status)
	assert.Equal(t, university.Name, course.University.Name)

	require.Len(t, course.RequiredSubjects, 2)
	assert.Equal(t, maths.ID, course.RequiredSubjects[0].SubjectID)
	assert.Equal(t, models.CategoryEssential, course.RequiredSubjects[0].Category)
	assert.Equal(t, "Economics", course.RequiredSubjects[1].SubjectName)
	assert.Equal(t, models.CategoryRelevant, course.RequiredSubjects[1].Category)
	assert.Len(t, store.subjects, 2, "unknown subjects are created")
	assert.Equal(t, 1, cache.invalidations)

	_, err = svc.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		UniversityID: university.ID,
		Name:         "bachelor of statistics (evening)",
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)
	assert.Equal(t, 1, cache.invalidations)
}

func TestCatalogService_CreateCourse_DuplicateKeepsSubjects(t *testing.T) {
	store := newMemStore()
	university := store.addUniversity("Makerere University", models.UniversityPublic)
	store.addCourse(university, "Bachelor of Laws", models.CourseLevelBachelors, models.CourseActive)
	store.addSubject("History")
	svc := newCatalogServiceForTest(store, nil)

	tests := []struct {
		name     string
		subjects []dto.RequiredSubjectInput
	}{
		{"new subject", []dto.RequiredSubjectInput{{SubjectName: "Literature", Category: "essential"}}},
		{"known and new subjects", []dto.RequiredSubjectInput{{SubjectName: "history"}, {SubjectName: "Divinity"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCourse(context.Background(), &dto.CreateCourseRequest{
				UniversityID:     university.ID,
				Name:             "BACHELOR OF LAWS",
				RequiredSubjects: tt.subjects,
			})
			assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)
			assert.Len(t, store.subjects, 1)
		})
	}
}

func TestCatalogService_CreateCourse_SameNameElsewhere(t *testing.T) {
	store := newMemStore()
	first := store.addUniversity("Makerere University", models.UniversityPublic)
	second := store.addUniversity("Kyambogo University", models.UniversityPublic)
	store.addCourse(first, "Bachelor of Laws", models.CourseLevelBachelors, models.CourseActive)
	svc := newCatalogServiceForTest(store, nil)

	course, err := svc.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		UniversityID: second.ID,
		Name:         "Bachelor of Laws",
		Level:        "bachelor",
	})
	require.NoError(t, err)
	assert.Equal(t, second.ID, course.UniversityID)
	assert.Equal(t, models.CourseLevelBachelors, course.Level)
}

func TestCatalogService_CreateCourse_Invalid(t *testing.T) {
	store := newMemStore()
	university := store.addUniversity("Makerere University", models.UniversityPublic)
	svc := newCatalogServiceForTest(store, nil)

	tests := []struct {
		name string
		req  *dto.CreateCourseRequest
		want error
	}{
		{"unknown university", &dto.CreateCourseRequest{UniversityID: uuid.New(), Name: "Law"}, apperrors.ErrUniversityNotFound},
		{"blank name", &dto.CreateCourseRequest{UniversityID: university.ID, Name: " "}, apperrors.ErrValidationFailed},
		{"bad level", &dto.CreateCourseRequest{UniversityID: university.ID, Name: "Law", Level: "GRAND"}, apperrors.ErrValidationFailed},
		{"bad status", &dto.CreateCourseRequest{UniversityID: university.ID, Name: "Law", Status: "Archived"}, apperrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCourse(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, store.courses)
}

func TestCatalogService_ListAndDelete(t *testing.T) {
	store := newMemStore()
	mak := store.addUniversity("Makerere University", models.UniversityPublic)
	store.addUniversity("Kyambogo University", models.UniversityPublic)
	store.addUniversity("Gulu University", models.UniversityPublic)
	course := store.addCourse(mak, "Bachelor of Laws", models.CourseLevelBachelors, models.CourseActive)
	cache := &memCache{}
	svc := newCatalogServiceForTest(store, cache)

	list, err := svc.ListUniversities(context.Background(), &dto.UniversityFilterRequest{Page: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, list.Universities, 1)
	assert.Equal(t, "Gulu University", list.Universities[0].Name)
	assert.Equal(t, int64(3), list.TotalItems)
	assert.Equal(t, 2, list.TotalPages)

	courses, err := svc.ListCourses(context.Background(), &dto.CourseFilterRequest{Search: " laws ", Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Len(t, courses.Courses, 1)

	require.NoError(t, svc.DeleteCourse(context.Background(), course.ID))
	assert.ErrorIs(t, svc.DeleteCourse(context.Background(), course.ID), apperrors.ErrCourseNotFound)
	assert.ErrorIs(t, svc.DeleteUniversity(context.Background(), uuid.New()), apperrors.ErrUniversityNotFound)
	assert.Equal(t, 1, cache.invalidations)
}
