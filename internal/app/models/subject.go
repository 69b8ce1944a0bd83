package models

import (
	"github.com/google/uuid"
)

// Subject is a school subject a student can sit and a course can require.
type Subject struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	Category    *string   `json:"category,omitempty" db:"category"`
	Description *string   `json:"description,omitempty" db:"description"`
}
