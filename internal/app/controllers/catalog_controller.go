package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/app/services"
	"github.com/yigit/unimatch/internal/middleware"
	"github.com/yigit/unimatch/internal/pkg/helpers"
)

// CatalogController handles university, course and subject endpoints
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// parseID reads a UUID path parameter, writing a 400 response when it is malformed
func parseID(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID").
			WithField(name).
			WithDetails(label + " ID must be a valid UUID")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// CreateUniversity handles university creation
// POST /universities
func (c *CatalogController) CreateUniversity(ctx *gin.Context) {
	var req dto.CreateUniversityRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	university, err := c.catalogService.CreateUniversity(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(university, "University created successfully"))
}

// GetUniversity retrieves a university by ID
// GET /universities/:id
func (c *CatalogController) GetUniversity(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "University")
	if !ok {
		return
	}

	university, err := c.catalogService.GetUniversity(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(university, ""))
}

// ListUniversities returns a page of universities
// GET /universities?search=&page=&size=
func (c *CatalogController) ListUniversities(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.catalogService.ListUniversities(ctx.Request.Context(), &dto.UniversityFilterRequest{
		Search: ctx.Query("search"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// DeleteUniversity removes a university and its courses
// DELETE /universities/:id
func (c *CatalogController) DeleteUniversity(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "University")
	if !ok {
		return
	}

	if err := c.catalogService.DeleteUniversity(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "University deleted successfully"))
}

// CreateCourse handles course creation
// POST /courses
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.catalogService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course, "Course created successfully"))
}

// GetCourse retrieves a course with its university and required subjects
// GET /courses/:id
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Course")
	if !ok {
		return
	}

	course, err := c.catalogService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, ""))
}

// ListCourses returns a page of courses
// GET /courses?search=&level=&universityId=&page=&size=
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	filter := &dto.CourseFilterRequest{
		Search: ctx.Query("search"),
		Page:   page,
		Size:   size,
	}

	if raw := strings.TrimSpace(ctx.Query("level")); raw != "" {
		level, ok := models.ParseCourseLevel(raw)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course level").
				WithField("level").
				WithDetails("level must be one of: CERTIFICATE DIPLOMA BACHELORS MASTERS PHD")
			ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.Level = &level
	}

	if raw := strings.TrimSpace(ctx.Query("universityId")); raw != "" {
		universityID, err := uuid.Parse(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid university ID").
				WithField("universityId").
				WithDetails("universityId must be a valid UUID")
			ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.UniversityID = &universityID
	}

	resp, err := c.catalogService.ListCourses(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// DeleteCourse removes a course
// DELETE /courses/:id
func (c *CatalogController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Course")
	if !ok {
		return
	}

	if err := c.catalogService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Course deleted successfully"))
}

// ListSubjects returns a page of subjects
// GET /subjects?search=&page=&size=
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	resp, err := c.catalogService.ListSubjects(ctx.Request.Context(), &dto.SubjectFilterRequest{
		Search: ctx.Query("search"),
		Page:   page,
		Size:   size,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
