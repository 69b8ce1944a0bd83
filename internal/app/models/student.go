package models

import (
	"time"

	"github.com/google/uuid"
)

// Student holds what the matcher needs to know about a learner; identity lives elsewhere.
type Student struct {
	ID        uuid.UUID `json:"id" db:"id"`
	IsFemale  bool      `json:"isFemale" db:"is_female"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Results []StudentSubjectResult `json:"results,omitempty"`
}

// StudentSubjectResult is one graded subject. Grade is kept as written
// ("A".."F", "O" for A-Level; "1".."9", "X", "Y", "Z" for O-Level).
type StudentSubjectResult struct {
	SubjectID   uuid.UUID      `json:"subjectId" db:"subject_id"`
	SubjectName string         `json:"subjectName" db:"subject_name"`
	Level       EducationLevel `json:"level" db:"level"`
	Grade       string         `json:"grade" db:"grade"`
}
