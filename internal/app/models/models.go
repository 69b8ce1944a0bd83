package models

import "strings"

// RoleType is the role claim carried by tokens from the identity provider
type RoleType string

const (
	RoleAdmin RoleType = "ADMIN"
)

// EducationLevel identifies the grading scale a set of results belongs to
type EducationLevel string

const (
	LevelALevel EducationLevel = "a-level"
	LevelOLevel EducationLevel = "o-level"
)

// ParseEducationLevel accepts "a-level", "A Level", "alevel" and the like.
func ParseEducationLevel(s string) (EducationLevel, bool) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "alevel", "uace":
		return LevelALevel, true
	case "olevel", "uce":
		return LevelOLevel, true
	default:
		return "", false
	}
}

// SubjectCategory expresses how strongly a course depends on a subject
type SubjectCategory string

const (
	CategoryEssential SubjectCategory = "Essential"
	CategoryRelevant  SubjectCategory = "Relevant"
	CategoryDesirable SubjectCategory = "Desirable"
	CategoryOther     SubjectCategory = "Other"
)

// ParseSubjectCategory maps free text onto a category; anything unrecognized is Other.
func ParseSubjectCategory(s string) SubjectCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "essential":
		return CategoryEssential
	case "relevant":
		return CategoryRelevant
	case "desirable":
		return CategoryDesirable
	default:
		return CategoryOther
	}
}
