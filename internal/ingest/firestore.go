package ingest

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
	"github.com/yigit/unimatch/internal/pkg/normalize"
)

// firestoreValue is a typed value as written by the Firestore listen channel.
type firestoreValue struct {
	StringValue  *string      `json:"stringValue"`
	IntegerValue *json.Number `json:"integerValue"`
	MapValue     *struct {
		Fields map[string]firestoreValue `json:"fields"`
	} `json:"mapValue"`
	ArrayValue *struct {
		Values []firestoreValue `json:"values"`
	} `json:"arrayValue"`
}

func (v firestoreValue) asString() string {
	if v.StringValue == nil {
		return ""
	}
	return *v.StringValue
}

func (v firestoreValue) asInt() int {
	if v.IntegerValue == nil {
		return 0
	}
	n, err := v.IntegerValue.Int64()
	if err != nil {
		return 0
	}
	return int(n)
}

func (v firestoreValue) field(name string) firestoreValue {
	if v.MapValue == nil {
		return firestoreValue{}
	}
	return v.MapValue.Fields[name]
}

func (v firestoreValue) asStrings() []string {
	if v.ArrayValue == nil {
		return nil
	}
	out := make([]string, 0, len(v.ArrayValue.Values))
	for _, item := range v.ArrayValue.Values {
		out = append(out, item.asString())
	}
	return out
}

type firestoreItem struct {
	DocumentChange *struct {
		Document struct {
			Name   string                    `json:"name"`
			Fields map[string]firestoreValue `json:"fields"`
		} `json:"document"`
	} `json:"documentChange"`
	TargetChange json.RawMessage `json:"targetChange"`
}

// FirestoreStats counts what a dump contained.
type FirestoreStats struct {
	Blocks         int
	Courses        int
	TargetChanges  int
	MissingFields  int
	NonCourseDocs  int
	UnknownObjects int
}

// ParseFirestoreDump reads a captured Firestore listen stream: a sequence of
// [[n,[item,...]]] blocks, optionally separated by length prefixes. Documents whose
// university map carries a name are courses; the universities are collected from those
// maps, once per normalized name.
func ParseFirestoreDump(kind Kind, r io.Reader) (*Batch, error) {
	batch, _, err := ReadFirestoreDump(kind, r)
	return batch, err
}

// ReadFirestoreDump is ParseFirestoreDump that also reports what the dump held.
func ReadFirestoreDump(kind Kind, r io.Reader) (*Batch, FirestoreStats, error) {
	var stats FirestoreStats
	if kind == KindSubjects {
		return nil, stats, fmt.Errorf("%w: Firestore dumps carry courses and universities only", apperrors.ErrUnsupportedFormat)
	}

	batch := &Batch{Kind: kind}
	seenUniversities := map[string]bool{}
	index := 0

	dec := json.NewDecoder(bufio.NewReader(r))
	for {
		var block json.RawMessage
		err := dec.Decode(&block)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("%w: reading Firestore dump: %w", apperrors.ErrInvalidFormat, err)
		}
		// length prefixes between blocks
		if !strings.HasPrefix(string(block), "[") {
			continue
		}

		var entries [][]json.RawMessage
		if err := json.Unmarshal(block, &entries); err != nil {
			return nil, stats, fmt.Errorf("%w: malformed Firestore block: %w", apperrors.ErrInvalidFormat, err)
		}
		for _, entry := range entries {
			stats.Blocks++
			if len(entry) < 2 {
				continue
			}
			var items []firestoreItem
			if err := json.Unmarshal(entry[1], &items); err != nil {
				stats.UnknownObjects++
				continue
			}

			for _, item := range items {
				switch {
				case item.DocumentChange != nil:
					fields := item.DocumentChange.Document.Fields
					if len(fields) == 0 {
						stats.MissingFields++
						continue
					}
					university := fields["university"]
					uniName := university.field("name").asString()
					if uniName == "" {
						stats.NonCourseDocs++
						continue
					}
					stats.Courses++

					switch kind {
					case KindCourses:
						batch.addRecord(index, dto.CourseRecord{
							Name:              fields["name"].asString(),
							University:        uniName,
							Type:              university.field("type").asString(),
							Duration:          fields["duration"].asInt(),
							Description:       fields["description"].asString(),
							RequiredSubjects:  subjectRecords(fields["required_subjects"].asStrings()),
							OtherRequirements: nonEmpty(fields["other_requirements"].asStrings()),
						})
						index++
					case KindUniversities:
						key := normalize.University(uniName)
						if seenUniversities[key] {
							continue
						}
						seenUniversities[key] = true
						batch.addRecord(index, dto.UniversityRecord{
							Name:        uniName,
							Type:        university.field("type").asString(),
							District:    university.field("district").asString(),
							Description: university.field("description").asString(),
							Website:     university.field("website").asString(),
							Logo:        university.field("logo").asString(),
						})
						index++
					}
				case item.TargetChange != nil:
					stats.TargetChanges++
				default:
					stats.UnknownObjects++
				}
			}
		}
	}
	return batch, stats, nil
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func subjectRecords(names []string) []dto.RequiredSubjectRecord {
	names = nonEmpty(names)
	if len(names) == 0 {
		return nil
	}
	out := make([]dto.RequiredSubjectRecord, len(names))
	for i, n := range names {
		out[i] = dto.RequiredSubjectRecord{Name: strings.TrimSpace(n)}
	}
	return out
}
