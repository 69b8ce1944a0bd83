package dto

import "github.com/yigit/unimatch/internal/app/models"

// StudentResultInput is one graded subject to store for a student
type StudentResultInput struct {
	SubjectName string `json:"subjectName" binding:"required" example:"Mathematics"`
	Level       string `json:"level" binding:"required,edulevel" example:"a-level"`
	Grade       string `json:"grade" binding:"required" example:"B"`
}

// SaveStudentResultsRequest replaces a student's stored results
type SaveStudentResultsRequest struct {
	IsFemale bool                 `json:"isFemale"`
	Results  []StudentResultInput `json:"results" binding:"required,min=1,dive"`
}

// StudentResultsResponse echoes what was stored and what was dropped
type StudentResultsResponse struct {
	Student         *models.Student `json:"student"`
	UnknownSubjects []string        `json:"unknownSubjects,omitempty"`
}
