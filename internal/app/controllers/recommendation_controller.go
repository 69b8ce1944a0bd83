package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/app/services"
	"github.com/yigit/unimatch/internal/middleware"
)

// RecommendationController serves ranked course recommendations
type RecommendationController struct {
	recommendationService services.RecommendationService
}

// NewRecommendationController creates a new RecommendationController
func NewRecommendationController(recommendationService services.RecommendationService) *RecommendationController {
	return &RecommendationController{
		recommendationService: recommendationService,
	}
}

// RecommendByCoverage ranks courses by the share of required subjects the student holds.
// POST /recommendations
func (c *RecommendationController) RecommendByCoverage(ctx *gin.Context) {
	var req dto.CoverageRecommendationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.recommendationService.RecommendByCoverage(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// RecommendByGrades ranks courses by weighted grade points.
// POST /recommendations/weighted
func (c *RecommendationController) RecommendByGrades(ctx *gin.Context) {
	var req dto.WeightedRecommendationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.recommendationService.RecommendByGrades(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// TotalPoints sums the grade points of a submission.
// POST /recommendations/points
func (c *RecommendationController) TotalPoints(ctx *gin.Context) {
	var req dto.TotalPointsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.recommendationService.TotalPoints(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}
