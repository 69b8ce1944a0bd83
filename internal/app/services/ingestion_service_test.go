package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/ingest"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
)

func newIngestionServiceForTest(store *memStore, cache *memCache, maxBatch int) IngestionService {
	return NewIngestionService(memUniversities{store}, memCourses{store}, memSubjects{store}, asCatalogCache(cache), maxBatch, testLogger)
}

func parseBatch(t *testing.T, kind ingest.Kind, body string) *ingest.Batch {
	t.Helper()
	batch, err := ingest.ParseJSON(kind, strings.NewReader(body))
	require.NoError(t, err)
	return batch
}

func statuses(resp *dto.IngestResponse) []dto.IngestStatus {
	out := make([]dto.IngestStatus, len(resp.Data))
	for i, o := range resp.Data {
		out[i] = o.Status
	}
	return out
}

func TestIngest_Universities(t *testing.T) {
	store := newMemStore()
	store.addUniversity("Makerere University", models.UniversityPublic)
	cache := &memCache{}
	svc := newIngestionServiceForTest(store, cache, 10)

	batch := parseBatch(t, ingest.KindUniversities, `[
		{"name": "Makerere University (MAK)"},
		{"name": "Uganda Christian University", "type": "private", "district": "Mukono"},
		{"name": "uganda christian university"},
		{"district": "Lira"}
	]`)

	resp, err := svc.Ingest(context.Background(), batch)
	require.NoError(t, err)

	// rejected records are reported first
	assert.Equal(t, []dto.IngestStatus{dto.IngestSkipped, dto.IngestExists, dto.IngestCreated, dto.IngestExists}, statuses(resp))
	assert.Equal(t, dto.IngestSummary{Created: 1, Exists: 2, Skipped: 1}, resp.Summary)
	assert.NotEmpty(t, resp.Data[0].Error)

	require.Len(t, store.universities, 2)
	assert.Equal(t, models.UniversityPrivate, store.universities[1].Status)
	assert.Equal(t, "uganda-christian-university", store.universities[1].Slug)
	assert.Equal(t, 1, cache.invalidations)
}

func TestIngest_Courses(t *testing.T) {
	store := newMemStore()
	maths := store.addSubject("Mathematics")
	mak := store.addUniversity("Makerere University", models.UniversityPublic)
	store.addCourse(mak, "Bachelor of Laws", models.CourseLevelBachelors, models.CourseActive)
	svc := newIngestionServiceForTest(store, nil, 0)

	batch := parseBatch(t, ingest.KindCourses, `[
		{"name": "Bachelor of Science in Statistics", "university": "makerere university", "duration": 4,
		 "required_subjects": ["Mathematics", {"name": "Economics", "category": "Relevant"}]},
		{"name": "Bachelor of Laws (Evening)", "university": "Makerere University"},
		{"name": "Diploma in Nursing", "university": "Mbarara University"},
		{"name": "Certificate in Tailoring", "university": "Makerere University", "type": "Diploma", "status": "Under Review"},
		{"name": "Bachelor of Arts", "university": "Makerere University", "level": "GRAND"}
	]`)

	resp, err := svc.Ingest(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, []dto.IngestStatus{
		dto.IngestCreated, dto.IngestExists, dto.IngestSkipped, dto.IngestCreated, dto.IngestSkipped,
	}, statuses(resp))
	assert.Contains(t, resp.Data[2].Message, "Mbarara University")

	created, ok := resp.Data[0].Data.(*models.Course)
	require.True(t, ok)
	assert.Equal(t, models.CourseLevelBachelors, created.Level)
	require.Len(t, created.RequiredSubjects, 2)
	assert.Equal(t, maths.ID, created.RequiredSubjects[0].SubjectID)
	assert.Equal(t, models.CategoryOther, created.RequiredSubjects[0].Category)
	assert.Equal(t, models.CategoryRelevant, created.RequiredSubjects[1].Category)
	assert.Len(t, store.subjects, 2)

	tailoring, ok := resp.Data[3].Data.(*models.Course)
	require.True(t, ok)
	assert.Equal(t, models.CourseLevelDiploma, tailoring.Level)
	assert.Equal(t, models.CourseUnderReview, tailoring.Status)
}

func TestIngest_IsIdempotent(t *testing.T) {
	store := newMemStore()
	cache := &memCache{}
	svc := newIngestionServiceForTest(store, cache, 0)
	body := `[{"name": "Physics", "category": "Science"}, {"name": "physics"}, {"name": "History"}]`

	first, err := svc.Ingest(context.Background(), parseBatch(t, ingest.KindSubjects, body))
	require.NoError(t, err)
	assert.Equal(t, dto.IngestSummary{Created: 2, Exists: 1}, first.Summary)

	second, err := svc.Ingest(context.Background(), parseBatch(t, ingest.KindSubjects, body))
	require.NoError(t, err)
	assert.Equal(t, dto.IngestSummary{Exists: 3}, second.Summary)

	assert.Len(t, store.subjects, 2)
	assert.Equal(t, "physics", store.subjects[0].Code)
	assert.Equal(t, 1, cache.invalidations, "a batch that creates nothing keeps the cache")
}

func TestIngest_ExistingCourseKeepsSubjects(t *testing.T) {
	store := newMemStore()
	university := store.addUniversity("Makerere University", models.UniversityPublic)
	store.addCourse(university, "Bachelor of Laws", models.CourseLevelBachelors, models.CourseActive)
	cache := &memCache{}
	svc := newIngestionServiceForTest(store, cache, 0)

	resp, err := svc.Ingest(context.Background(), parseBatch(t, ingest.KindCourses, `[
		{"name": "Bachelor of Laws", "university": "makerere university",
		 "required_subjects": ["Literature", {"name": "Divinity", "category": "Relevant"}]}
	]`))
	require.NoError(t, err)

	assert.Equal(t, []dto.IngestStatus{dto.IngestExists}, statuses(resp))
	assert.Empty(t, store.subjects)
	assert.Zero(t, cache.invalidations)
}

func TestIngest_StoreFailure(t *testing.T) {
	store := newMemStore()
	store.failCreate = errors.New("connection reset")
	svc := newIngestionServiceForTest(store, nil, 0)

	resp, err := svc.Ingest(context.Background(), parseBatch(t, ingest.KindUniversities, `[{"name": "Kabale University"}]`))
	require.NoError(t, err)
	assert.Equal(t, dto.IngestSummary{Failed: 1}, resp.Summary)
	assert.Equal(t, "connection reset", resp.Data[0].Error)
}

func TestIngest_BatchTooLarge(t *testing.T) {
	svc := newIngestionServiceForTest(newMemStore(), nil, 2)

	_, err := svc.Ingest(context.Background(), parseBatch(t, ingest.KindSubjects, `[{"name": "A"}, {"name": "B"}, {"name": "C"}]`))
	assert.ErrorIs(t, err, apperrors.ErrBatchTooLarge)
}

func TestIngest_CancelledContext(t *testing.T) {
	svc := newIngestionServiceForTest(newMemStore(), nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Ingest(ctx, parseBatch(t, ingest.KindSubjects, `[{"name": "Art"}]`))
	assert.ErrorIs(t, err, context.Canceled)
}
