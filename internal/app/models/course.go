package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CourseLevel is the award a course leads to
type CourseLevel string

const (
	CourseLevelCertificate CourseLevel = "CERTIFICATE"
	CourseLevelDiploma     CourseLevel = "DIPLOMA"
	CourseLevelBachelors   CourseLevel = "BACHELORS"
	CourseLevelMasters     CourseLevel = "MASTERS"
	CourseLevelPhD         CourseLevel = "PHD"
)

// ParseCourseLevel reports false for unknown levels.
func ParseCourseLevel(s string) (CourseLevel, bool) {
	switch CourseLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case CourseLevelCertificate:
		return CourseLevelCertificate, true
	case CourseLevelDiploma:
		return CourseLevelDiploma, true
	case CourseLevelBachelors, "BACHELOR":
		return CourseLevelBachelors, true
	case CourseLevelMasters, "MASTER":
		return CourseLevelMasters, true
	case CourseLevelPhD:
		return CourseLevelPhD, true
	default:
		return "", false
	}
}

// LevelForDuration derives a level from a course length in years.
func LevelForDuration(years int) CourseLevel {
	switch {
	case years >= 4:
		return CourseLevelBachelors
	case years >= 2:
		return CourseLevelDiploma
	default:
		return CourseLevelCertificate
	}
}

// CourseStatus is the publication state of a course
type CourseStatus string

const (
	CourseActive      CourseStatus = "Active"
	CourseUnderReview CourseStatus = "UnderReview"
	CourseInactive    CourseStatus = "Inactive"
)

// ParseCourseStatus accepts "Under Review" as written by catalog exports; empty means Active.
func ParseCourseStatus(s string) (CourseStatus, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	switch key {
	case "", "active":
		return CourseActive, true
	case "underreview":
		return CourseUnderReview, true
	case "inactive":
		return CourseInactive, true
	default:
		return "", false
	}
}

// RequiredSubject is one subject a course asks for, tagged with its importance.
type RequiredSubject struct {
	SubjectID   uuid.UUID       `json:"subjectId" db:"subject_id"`
	SubjectName string          `json:"subjectName" db:"subject_name"`
	Category    SubjectCategory `json:"category" db:"category"`
}

// Course is a program offered by a university.
type Course struct {
	ID                uuid.UUID    `json:"id" db:"id"`
	UniversityID      uuid.UUID    `json:"universityId" db:"university_id"`
	Name              string       `json:"name" db:"name"`
	Slug              string       `json:"slug" db:"slug"`
	Code              *string      `json:"code,omitempty" db:"code"`
	Level             CourseLevel  `json:"level" db:"level"`
	Duration          *int         `json:"duration,omitempty" db:"duration"`
	EntryPoints       *int         `json:"entryPoints,omitempty" db:"entry_points"`
	Status            CourseStatus `json:"status" db:"status"`
	Description       *string      `json:"description,omitempty" db:"description"`
	OtherRequirements []string     `json:"otherRequirements" db:"other_requirements"`
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time    `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	RequiredSubjects []RequiredSubject `json:"requiredSubjects"`
	University       *University       `json:"university,omitempty"`
}
