package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/domain/matching"
)

// CatalogFilter narrows the catalog before ranking
type CatalogFilter struct {
	Level        string     `json:"courseLevel,omitempty" example:"BACHELORS"`
	UniversityID *uuid.UUID `json:"universityId,omitempty"`
	Search       string     `json:"search,omitempty" example:"science"`
}

// CoverageRecommendationRequest asks for courses ranked by subject coverage. Either
// StudentID or SubjectGrades must be present; StudentID wins when both are.
type CoverageRecommendationRequest struct {
	StudentID     *uuid.UUID        `json:"studentId,omitempty"`
	SubjectGrades map[string]string `json:"subjectGrades,omitempty" example:"Mathematics:A,Physics:B"`
	Page          int               `json:"page" binding:"omitempty,min=1" example:"1"`
	Limit         int               `json:"limit" binding:"omitempty,min=1" example:"4"`
	CatalogFilter
}

// SubjectGradeInput is a subject named by the student with the grade obtained
type SubjectGradeInput struct {
	SubjectName string `json:"subjectName" binding:"required" example:"Mathematics"`
	Grade       string `json:"grade" binding:"required" example:"A"`
}

// WeightedRecommendationRequest asks for courses ranked by weighted grade points
type WeightedRecommendationRequest struct {
	Level          string              `json:"level,omitempty" binding:"omitempty,edulevel" example:"a-level"`
	ALevelSubjects []SubjectGradeInput `json:"aLevelSubjects" binding:"dive"`
	OLevelGrades   []int               `json:"oLevelGrades"`
	IsFemale       bool                `json:"isFemale"`
	Page           int                 `json:"page" binding:"omitempty,min=1" example:"1"`
	Limit          int                 `json:"limit" binding:"omitempty,min=1" example:"4"`
	CatalogFilter
}

// TotalPointsRequest sums a submission's grade points
type TotalPointsRequest struct {
	Level  string   `json:"level" binding:"required,edulevel" example:"a-level"`
	Grades []string `json:"grades" binding:"required,min=1"`
}

// TotalPointsResponse is the aggregate weight of a submission
type TotalPointsResponse struct {
	Level       models.EducationLevel `json:"level"`
	TotalPoints float64               `json:"totalPoints"`
}

// RecommendedUniversity is the university part of a ranked result
type RecommendedUniversity struct {
	ID     uuid.UUID               `json:"id"`
	Name   string                  `json:"name"`
	Status models.UniversityStatus `json:"status"`
}

// RecommendedCourse is the course part of a ranked result
type RecommendedCourse struct {
	ID     uuid.UUID           `json:"id"`
	Name   string              `json:"name"`
	Slug   string              `json:"slug"`
	Status models.CourseStatus `json:"status"`
	Level  models.CourseLevel  `json:"level"`
}

// RecommendationItem is one ranked course
type RecommendationItem struct {
	University RecommendedUniversity `json:"university"`
	Course     RecommendedCourse     `json:"course"`
	MatchScore float64               `json:"matchScore"`
}

// RecommendationResponse is one page of ranked courses
type RecommendationResponse struct {
	Success           bool                 `json:"success"`
	Data              []RecommendationItem `json:"data"`
	Meta              matching.PageMeta    `json:"meta"`
	UnmatchedSubjects []string             `json:"unmatchedSubjects,omitempty"`
	Timestamp         time.Time            `json:"timestamp"`
}

// FromMatches converts ranked matches into response items
func FromMatches(matches []matching.Match) []RecommendationItem {
	items := make([]RecommendationItem, 0, len(matches))
	for _, m := range matches {
		item := RecommendationItem{MatchScore: m.MatchScore}
		if m.University != nil {
			item.University = RecommendedUniversity{ID: m.University.ID, Name: m.University.Name, Status: m.University.Status}
		}
		if m.Course != nil {
			item.Course = RecommendedCourse{
				ID:     m.Course.ID,
				Name:   m.Course.Name,
				Slug:   m.Course.Slug,
				Status: m.Course.Status,
				Level:  m.Course.Level,
			}
		}
		items = append(items, item)
	}
	return items
}
