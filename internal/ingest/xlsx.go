package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
)

// listSeparator splits multi-valued spreadsheet and page cells.
const listSeparator = ";"

// ParseXLSX reads the first sheet of a workbook. The first row names the columns; header
// names are matched case-insensitively and spaces count as underscores.
func ParseXLSX(kind Kind, r io.Reader) (*Batch, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook: %w", apperrors.ErrInvalidFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", apperrors.ErrInvalidFormat)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	batch := &Batch{Kind: kind}
	if len(rows) == 0 {
		return batch, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
		if key != "" {
			header[key] = i
		}
	}
	if _, ok := header["name"]; !ok {
		return nil, fmt.Errorf("%w: sheet %q has no name column", apperrors.ErrInvalidFormat, sheets[0])
	}

	for i, row := range rows[1:] {
		cell := func(col string) string {
			idx, ok := header[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		if isBlankRow(row) {
			continue
		}
		// index counts data rows; the header is row 0 of the sheet
		index := i + 1

		switch kind {
		case KindUniversities:
			batch.addRecord(index, dto.UniversityRecord{
				Name:        cell("name"),
				Type:        firstNonEmpty(cell("type"), cell("status")),
				District:    cell("district"),
				Description: cell("description"),
				Website:     cell("website"),
				Logo:        cell("logo"),
			})
		case KindCourses:
			rec := dto.CourseRecord{
				Name:              cell("name"),
				University:        cell("university"),
				Type:              cell("type"),
				Code:              cell("code"),
				Level:             cell("level"),
				Status:            cell("status"),
				Description:       cell("description"),
				RequiredSubjects:  subjectList(cell("required_subjects")),
				OtherRequirements: splitList(cell("other_requirements")),
			}
			var convErr error
			rec.Duration, convErr = optionalInt(cell("duration"))
			if convErr == nil {
				rec.EntryPoints, convErr = optionalInt(cell("entry_points"))
			}
			if convErr != nil {
				batch.Rejected = append(batch.Rejected, Rejected{Index: index, Input: row, Reason: convErr.Error()})
				continue
			}
			batch.addRecord(index, rec)
		case KindSubjects:
			batch.addRecord(index, dto.SubjectRecord{
				Name:        cell("name"),
				Category:    cell("category"),
				Description: cell("description"),
			})
		}
	}
	return batch, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, listSeparator) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func subjectList(s string) []dto.RequiredSubjectRecord {
	names := splitList(s)
	if len(names) == 0 {
		return nil
	}
	out := make([]dto.RequiredSubjectRecord, len(names))
	for i, n := range names {
		out[i] = dto.RequiredSubjectRecord{Name: n}
	}
	return out
}
