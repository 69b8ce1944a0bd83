package dto

import (
	"encoding/json"
	"fmt"
)

// UniversityRecord is one university from an ingestion source
type UniversityRecord struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	District    string `json:"district,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Logo        string `json:"logo,omitempty"`
}

// RequiredSubjectRecord is a subject a course record asks for. Sources write it either as
// a bare name or as {"name": ..., "category": ...}.
type RequiredSubjectRecord struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// UnmarshalJSON accepts both the string and the object form.
func (r *RequiredSubjectRecord) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*r = RequiredSubjectRecord{Name: name}
		return nil
	}

	type plain RequiredSubjectRecord
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("required subject must be a string or an object: %w", err)
	}
	*r = RequiredSubjectRecord(obj)
	return nil
}

// CourseRecord is one course from an ingestion source; University names its owner.
type CourseRecord struct {
	Name              string                  `json:"name"`
	University        string                  `json:"university"`
	Type              string                  `json:"type,omitempty"`
	Code              string                  `json:"code,omitempty"`
	Level             string                  `json:"level,omitempty"`
	Status            string                  `json:"status,omitempty"`
	Duration          int                     `json:"duration,omitempty"`
	EntryPoints       int                     `json:"entry_points,omitempty"`
	Description       string                  `json:"description,omitempty"`
	RequiredSubjects  []RequiredSubjectRecord `json:"required_subjects,omitempty"`
	OtherRequirements []string                `json:"other_requirements,omitempty"`
}

// SubjectRecord is one subject from an ingestion source
type SubjectRecord struct {
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// IngestStatus is what happened to one record
type IngestStatus string

const (
	IngestCreated IngestStatus = "created"
	IngestExists  IngestStatus = "exists"
	IngestSkipped IngestStatus = "skipped"
	IngestFailed  IngestStatus = "failed"
)

// IngestOutcome reports the fate of a single record
type IngestOutcome struct {
	Input   interface{}  `json:"input"`
	Status  IngestStatus `json:"status"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// IngestSummary counts outcomes by status
type IngestSummary struct {
	Created int `json:"created"`
	Exists  int `json:"exists"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// IngestResponse is the result of a batch
type IngestResponse struct {
	Data    []IngestOutcome `json:"data"`
	Summary IngestSummary   `json:"summary"`
}

// Add appends an outcome and updates the summary.
func (r *IngestResponse) Add(o IngestOutcome) {
	r.Data = append(r.Data, o)
	switch o.Status {
	case IngestCreated:
		r.Summary.Created++
	case IngestExists:
		r.Summary.Exists++
	case IngestSkipped:
		r.Summary.Skipped++
	case IngestFailed:
		r.Summary.Failed++
	}
}
