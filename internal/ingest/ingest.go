// Package ingest turns catalog exports (JSON, XLSX, HTML pages and Firestore dumps) into
// typed ingestion records. Every record passes a JSON Schema check before it is typed;
// records that fail are returned as rejections, never dropped silently.
package ingest

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
)

// Kind is the entity a batch describes
type Kind string

const (
	KindUniversities Kind = "universities"
	KindCourses      Kind = "courses"
	KindSubjects     Kind = "subjects"
)

// ParseKind accepts singular and plural spellings.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "university", "universities":
		return KindUniversities, nil
	case "course", "courses":
		return KindCourses, nil
	case "subject", "subjects":
		return KindSubjects, nil
	default:
		return "", fmt.Errorf("%w: unknown record kind %q", apperrors.ErrUnsupportedFormat, s)
	}
}

// Format is the encoding of a source
type Format string

const (
	FormatJSON      Format = "json"
	FormatXLSX      Format = "xlsx"
	FormatHTML      Format = "html"
	FormatFirestore Format = "firestore"
)

// ParseFormat reports an error for unknown formats.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatXLSX, FormatHTML, FormatFirestore:
		return f, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, s)
	}
}

// DetectFormat guesses a format from a file extension; dumps saved as .js are Firestore.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	case ".html", ".htm":
		return FormatHTML
	case ".js", ".dump":
		return FormatFirestore
	default:
		return FormatJSON
	}
}

// Rejected is a source record that could not be turned into a typed record
type Rejected struct {
	Index  int    `json:"index"`
	Input  any    `json:"input"`
	Reason string `json:"reason"`
}

// Batch holds the records parsed from one source. Only the slice matching Kind is filled.
type Batch struct {
	Kind         Kind
	Universities []dto.UniversityRecord
	Courses      []dto.CourseRecord
	Subjects     []dto.SubjectRecord
	Rejected     []Rejected
}

// Len counts typed records plus rejections.
func (b *Batch) Len() int {
	return len(b.Universities) + len(b.Courses) + len(b.Subjects) + len(b.Rejected)
}

//go:embed schemas/*.json
var schemaFS embed.FS

var schemas = map[Kind]*gojsonschema.Schema{}

func init() {
	files := map[Kind]string{
		KindUniversities: "schemas/university.schema.json",
		KindCourses:      "schemas/course.schema.json",
		KindSubjects:     "schemas/subject.schema.json",
	}
	for kind, file := range files {
		raw, err := schemaFS.ReadFile(file)
		if err != nil {
			panic(fmt.Sprintf("ingest: missing embedded schema %s: %v", file, err))
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			panic(fmt.Sprintf("ingest: invalid embedded schema %s: %v", file, err))
		}
		schemas[kind] = schema
	}
}

// validate checks one raw record against the schema of kind. The returned reason is
// empty when the record is valid.
func validate(kind Kind, loader gojsonschema.JSONLoader) (string, error) {
	result, err := schemas[kind].Validate(loader)
	if err != nil {
		return "", fmt.Errorf("validation error: %w", err)
	}
	if result.Valid() {
		return "", nil
	}
	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return strings.Join(errs, "; "), nil
}

// add validates a raw JSON record and appends it to the batch as a typed record or a
// rejection.
func (b *Batch) add(index int, raw json.RawMessage) {
	var input any
	if err := json.Unmarshal(raw, &input); err != nil {
		b.Rejected = append(b.Rejected, Rejected{Index: index, Input: string(raw), Reason: err.Error()})
		return
	}

	reason, err := validate(b.Kind, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		reason = err.Error()
	}
	if reason != "" {
		b.Rejected = append(b.Rejected, Rejected{Index: index, Input: input, Reason: reason})
		return
	}

	switch b.Kind {
	case KindUniversities:
		var rec dto.UniversityRecord
		err = json.Unmarshal(raw, &rec)
		if err == nil {
			b.Universities = append(b.Universities, rec)
		}
	case KindCourses:
		var rec dto.CourseRecord
		err = json.Unmarshal(raw, &rec)
		if err == nil {
			b.Courses = append(b.Courses, rec)
		}
	case KindSubjects:
		var rec dto.SubjectRecord
		err = json.Unmarshal(raw, &rec)
		if err == nil {
			b.Subjects = append(b.Subjects, rec)
		}
	}
	if err != nil {
		b.Rejected = append(b.Rejected, Rejected{Index: index, Input: input, Reason: err.Error()})
	}
}

// addRecord runs an already typed record (from a spreadsheet or page) through the same
// schema check as JSON input.
func (b *Batch) addRecord(index int, rec any) {
	raw, err := json.Marshal(rec)
	if err != nil {
		b.Rejected = append(b.Rejected, Rejected{Index: index, Input: rec, Reason: err.Error()})
		return
	}
	b.add(index, raw)
}

// Parse reads every record of kind from r.
func Parse(kind Kind, format Format, r io.Reader) (*Batch, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(kind, r)
	case FormatXLSX:
		return ParseXLSX(kind, r)
	case FormatHTML:
		return ParseHTML(kind, r)
	case FormatFirestore:
		return ParseFirestoreDump(kind, r)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, format)
	}
}

// ParseJSON reads a JSON array of records. A single object is accepted as a batch of one.
func ParseJSON(kind Kind, r io.Reader) (*Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON source: %w", err)
	}

	var raws []json.RawMessage
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		raws = []json.RawMessage{json.RawMessage(trimmed)}
	} else if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: expected a JSON array of records: %w", apperrors.ErrInvalidFormat, err)
	}

	batch := &Batch{Kind: kind}
	for i, raw := range raws {
		batch.add(i, raw)
	}
	return batch, nil
}
