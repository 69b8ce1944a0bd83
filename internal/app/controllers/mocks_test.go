package controllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/ingest"
	"github.com/yigit/unimatch/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterWithGin(); err != nil {
		panic(err)
	}
}

type mockRecommendationService struct {
	mock.Mock
}

func (m *mockRecommendationService) RecommendByCoverage(ctx context.Context, req *dto.CoverageRecommendationRequest) (*dto.RecommendationResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.RecommendationResponse)
	return resp, args.Error(1)
}

func (m *mockRecommendationService) RecommendByGrades(ctx context.Context, req *dto.WeightedRecommendationRequest) (*dto.RecommendationResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.RecommendationResponse)
	return resp, args.Error(1)
}

func (m *mockRecommendationService) TotalPoints(ctx context.Context, req *dto.TotalPointsRequest) (*dto.TotalPointsResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.TotalPointsResponse)
	return resp, args.Error(1)
}

type mockStudentService struct {
	mock.Mock
}

func (m *mockStudentService) SaveResults(ctx context.Context, id uuid.UUID, req *dto.SaveStudentResultsRequest) (*dto.StudentResultsResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.StudentResultsResponse)
	return resp, args.Error(1)
}

func (m *mockStudentService) GetStudent(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	args := m.Called(ctx, id)
	student, _ := args.Get(0).(*models.Student)
	return student, args.Error(1)
}

type mockIngestionService struct {
	mock.Mock
}

func (m *mockIngestionService) Ingest(ctx context.Context, batch *ingest.Batch) (*dto.IngestResponse, error) {
	args := m.Called(ctx, batch)
	resp, _ := args.Get(0).(*dto.IngestResponse)
	return resp, args.Error(1)
}

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) CreateUniversity(ctx context.Context, req *dto.CreateUniversityRequest) (*models.University, error) {
	args := m.Called(ctx, req)
	university, _ := args.Get(0).(*models.University)
	return university, args.Error(1)
}

func (m *mockCatalogService) GetUniversity(ctx context.Context, id uuid.UUID) (*models.University, error) {
	args := m.Called(ctx, id)
	university, _ := args.Get(0).(*models.University)
	return university, args.Error(1)
}

func (m *mockCatalogService) ListUniversities(ctx context.Context, filter *dto.UniversityFilterRequest) (*dto.UniversityListResponse, error) {
	args := m.Called(ctx, filter)
	resp, _ := args.Get(0).(*dto.UniversityListResponse)
	return resp, args.Error(1)
}

func (m *mockCatalogService) DeleteUniversity(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCatalogService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	args := m.Called(ctx, req)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *mockCatalogService) GetCourse(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	args := m.Called(ctx, id)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *mockCatalogService) ListCourses(ctx context.Context, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error) {
	args := m.Called(ctx, filter)
	resp, _ := args.Get(0).(*dto.CourseListResponse)
	return resp, args.Error(1)
}

func (m *mockCatalogService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCatalogService) ListSubjects(ctx context.Context, filter *dto.SubjectFilterRequest) (*dto.SubjectListResponse, error) {
	args := m.Called(ctx, filter)
	resp, _ := args.Get(0).(*dto.SubjectListResponse)
	return resp, args.Error(1)
}
