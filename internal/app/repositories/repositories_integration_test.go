package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/yigit/unimatch/internal/app/migrations"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("unimatch_test"),
		postgres.WithUsername("unimatch"),
		postgres.WithPassword("unimatch"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator := migrations.NewMigrator(pool, zerolog.Nop())
	require.NoError(t, migrator.MigrateFromDirectory(ctx, "../../../migrations"))
	// applying twice is a no-op
	require.NoError(t, migrator.MigrateFromDirectory(ctx, "../../../migrations"))
	return pool
}

func TestRepositories_CatalogRoundTrip(t *testing.T) {
	pool := setupTestDB(t)
	ctx := t.Context()
	repos := NewRepositories(pool)

	uni := &models.University{Name: "Makerere University", Slug: "makerere-university", Status: models.UniversityPublic}
	require.NoError(t, repos.UniversityRepository.Create(ctx, uni))
	assert.NotEqual(t, uuid.Nil, uni.ID)

	dup := &models.University{Name: "Makerere University", Slug: "makerere-university", Status: models.UniversityPublic}
	assert.ErrorIs(t, repos.UniversityRepository.Create(ctx, dup), apperrors.ErrSlugConflict)

	math := &models.Subject{Name: "Mathematics", Code: "mathematics"}
	created, err := repos.SubjectRepository.Upsert(ctx, math)
	require.NoError(t, err)
	assert.True(t, created)

	again := &models.Subject{Name: "Mathematics", Code: "mathematics"}
	created, err = repos.SubjectRepository.Upsert(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, math.ID, again.ID)

	physics := &models.Subject{Name: "Physics", Code: "physics"}
	_, err = repos.SubjectRepository.Upsert(ctx, physics)
	require.NoError(t, err)

	duration := 3
	course := &models.Course{
		UniversityID: uni.ID,
		Name:         "Bachelor of Science",
		Slug:         "bachelor-of-science",
		Level:        models.CourseLevelBachelors,
		Duration:     &duration,
		Status:       models.CourseActive,
		RequiredSubjects: []models.RequiredSubject{
			{SubjectID: physics.ID, Category: models.CategoryEssential},
			{SubjectID: math.ID, Category: models.CategoryRelevant},
		},
	}
	require.NoError(t, repos.CourseRepository.Create(ctx, course))

	clash := &models.Course{UniversityID: uni.ID, Name: "Bachelor of Science!", Slug: "bachelor-of-science",
		Level: models.CourseLevelBachelors, Status: models.CourseActive}
	assert.ErrorIs(t, repos.CourseRepository.Create(ctx, clash), apperrors.ErrSlugConflict)

	inactive := &models.Course{UniversityID: uni.ID, Name: "Old Diploma", Slug: "old-diploma",
		Level: models.CourseLevelDiploma, Status: models.CourseInactive}
	require.NoError(t, repos.CourseRepository.Create(ctx, inactive))

	got, err := repos.CourseRepository.GetByID(ctx, course.ID)
	require.NoError(t, err)
	require.NotNil(t, got.University)
	assert.Equal(t, "Makerere University", got.University.Name)
	require.Len(t, got.RequiredSubjects, 2)
	assert.Equal(t, "Physics", got.RequiredSubjects[0].SubjectName)
	assert.Equal(t, models.CategoryEssential, got.RequiredSubjects[0].Category)
	assert.Equal(t, []string{}, got.OtherRequirements)

	catalog, err := repos.CourseRepository.LoadCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, course.ID, catalog[0].ID)
	assert.Len(t, catalog[0].RequiredSubjects, 2)

	level := models.CourseLevelDiploma
	page, total, err := repos.CourseRepository.List(ctx, CourseListFilter{Level: &level}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Old Diploma", page[0].Name)

	_, err = repos.CourseRepository.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	require.NoError(t, repos.UniversityRepository.Delete(ctx, uni.ID))
	_, err = repos.CourseRepository.GetByID(ctx, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestStudentRepository_SaveResultsReplaces(t *testing.T) {
	pool := setupTestDB(t)
	ctx := t.Context()
	repos := NewRepositories(pool)

	math := &models.Subject{Name: "Mathematics", Code: "mathematics"}
	_, err := repos.SubjectRepository.Upsert(ctx, math)
	require.NoError(t, err)
	chem := &models.Subject{Name: "Chemistry", Code: "chemistry"}
	_, err = repos.SubjectRepository.Upsert(ctx, chem)
	require.NoError(t, err)

	_, err = repos.StudentRepository.GetWithResults(ctx, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	student := &models.Student{
		ID:       uuid.New(),
		IsFemale: true,
		Results: []models.StudentSubjectResult{
			{SubjectID: math.ID, Level: models.LevelALevel, Grade: "A"},
			{SubjectID: chem.ID, Level: models.LevelALevel, Grade: "C"},
		},
	}
	require.NoError(t, repos.StudentRepository.SaveResults(ctx, student))

	student.IsFemale = false
	student.Results = student.Results[1:]
	require.NoError(t, repos.StudentRepository.SaveResults(ctx, student))

	got, err := repos.StudentRepository.GetWithResults(ctx, student.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFemale)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "Chemistry", got.Results[0].SubjectName)
	assert.Equal(t, "C", got.Results[0].Grade)
}
