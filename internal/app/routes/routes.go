package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/unimatch/internal/app/controllers"
	"github.com/yigit/unimatch/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	recommendationController *controllers.RecommendationController,
	catalogController *controllers.CatalogController,
	studentController *controllers.StudentController,
	ingestionController *controllers.IngestionController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public recommendation routes ---
	recommendations := v1.Group("/recommendations")
	{
		recommendations.POST("", recommendationController.RecommendByCoverage)
		recommendations.POST("/weighted", recommendationController.RecommendByGrades)
		recommendations.POST("/points", recommendationController.TotalPoints)
	}

	// --- Public catalog routes ---
	v1.GET("/universities", catalogController.ListUniversities)
	v1.GET("/universities/:id", catalogController.GetUniversity)
	v1.GET("/courses", catalogController.ListCourses)
	v1.GET("/courses/:id", catalogController.GetCourse)
	v1.GET("/subjects", catalogController.ListSubjects)

	// --- Admin routes ---
	admin := v1.Group("")
	admin.Use(authMiddleware.AdminOnly()...)
	{
		admin.POST("/universities", catalogController.CreateUniversity)
		admin.DELETE("/universities/:id", catalogController.DeleteUniversity)
		admin.POST("/courses", catalogController.CreateCourse)
		admin.DELETE("/courses/:id", catalogController.DeleteCourse)

		admin.GET("/students/:id", studentController.GetStudent)
		admin.PUT("/students/:id/results", studentController.SaveResults)

		admin.POST("/ingest/:kind", ingestionController.Ingest)
	}
}
