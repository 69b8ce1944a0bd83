package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UniversityStatus is the ownership type of an institution
type UniversityStatus string

const (
	UniversityPublic  UniversityStatus = "Public"
	UniversityPrivate UniversityStatus = "Private"
)

// ParseUniversityStatus defaults to Public for anything that is not "private".
func ParseUniversityStatus(s string) UniversityStatus {
	if strings.EqualFold(strings.TrimSpace(s), "private") {
		return UniversityPrivate
	}
	return UniversityPublic
}

// University is an institution owning zero or more courses.
type University struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Slug        string           `json:"slug" db:"slug"`
	Status      UniversityStatus `json:"status" db:"status"`
	District    *string          `json:"district,omitempty" db:"district"`
	Description *string          `json:"description,omitempty" db:"description"`
	Website     *string          `json:"website,omitempty" db:"website"`
	Logo        *string          `json:"logo,omitempty" db:"logo"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`
}
