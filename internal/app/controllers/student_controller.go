package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/app/services"
	"github.com/yigit/unimatch/internal/middleware"
)

// StudentController handles stored student records
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// SaveResults replaces the graded subjects of a student
// PUT /students/:id/results
func (c *StudentController) SaveResults(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Student")
	if !ok {
		return
	}

	var req dto.SaveStudentResultsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.studentService.SaveResults(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Student results saved"))
}

// GetStudent retrieves a student with their stored results
// GET /students/:id
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseID(ctx, "id", "Student")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student, ""))
}
