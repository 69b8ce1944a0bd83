package dto

import (
	"github.com/google/uuid"
	"github.com/yigit/unimatch/internal/app/models"
)

// --- Request DTOs ---

// CreateUniversityRequest represents university creation data
type CreateUniversityRequest struct {
	Name        string `json:"name" binding:"required,max=255" example:"Makerere University"`
	Status      string `json:"status" binding:"omitempty,oneof=Public Private public private" example:"Public"`
	District    string `json:"district,omitempty" example:"Kampala"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty" binding:"omitempty,url"`
	Logo        string `json:"logo,omitempty" binding:"omitempty,url"`
}

// RequiredSubjectInput names a subject a course requires
type RequiredSubjectInput struct {
	SubjectName string `json:"subjectName" binding:"required" example:"Mathematics"`
	Category    string `json:"category,omitempty" example:"Essential"`
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	UniversityID      uuid.UUID              `json:"universityId" binding:"required"`
	Name              string                 `json:"name" binding:"required,max=255" example:"Bachelor of Science in Computer Science"`
	Code              string                 `json:"code,omitempty" example:"BSCS"`
	Level             string                 `json:"level,omitempty" binding:"omitempty,courselevel" example:"BACHELORS"`
	Duration          *int                   `json:"duration,omitempty" binding:"omitempty,min=0,max=10" example:"3"`
	EntryPoints       *int                   `json:"entryPoints,omitempty" binding:"omitempty,min=0"`
	Status            string                 `json:"status,omitempty" example:"Active"`
	Description       string                 `json:"description,omitempty"`
	OtherRequirements []string               `json:"otherRequirements,omitempty"`
	RequiredSubjects  []RequiredSubjectInput `json:"requiredSubjects" binding:"dive"`
}

// UniversityFilterRequest holds listing query parameters
type UniversityFilterRequest struct {
	Search string
	Page   int
	Size   int
}

// CourseFilterRequest holds listing query parameters
type CourseFilterRequest struct {
	Search       string
	Level        *models.CourseLevel
	UniversityID *uuid.UUID
	Page         int
	Size         int
}

// SubjectFilterRequest holds listing query parameters
type SubjectFilterRequest struct {
	Search string
	Page   int
	Size   int
}

// --- Response DTOs ---

// UniversityListResponse represents a page of universities
type UniversityListResponse struct {
	Universities []models.University `json:"universities"`
	PaginationInfo
}

// CourseListResponse represents a page of courses
type CourseListResponse struct {
	Courses []models.Course `json:"courses"`
	PaginationInfo
}

// SubjectListResponse represents a page of subjects
type SubjectListResponse struct {
	Subjects []models.Subject `json:"subjects"`
	PaginationInfo
}
