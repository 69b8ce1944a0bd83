package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
)

// Selectors of a published course catalog page.
const (
	courseRowSelector        = "table.courses tr.course"
	courseNameSelector       = "td.name"
	courseUniversitySelector = "td.university"
	courseDurationSelector   = "td.duration"
	courseSubjectsSelector   = "td.subjects"
	courseDescSelector       = "td.description"
)

// ParseHTML scrapes course rows from a catalog page. Only courses are published this way.
func ParseHTML(kind Kind, r io.Reader) (*Batch, error) {
	if kind != KindCourses {
		return nil, fmt.Errorf("%w: HTML sources only carry courses", apperrors.ErrUnsupportedFormat)
	}

	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing HTML: %w", apperrors.ErrInvalidFormat, err)
	}

	batch := &Batch{Kind: kind}
	document.Find(courseRowSelector).Each(func(i int, row *goquery.Selection) {
		text := func(sel string) string {
			return strings.Join(strings.Fields(row.Find(sel).First().Text()), " ")
		}

		rec := dto.CourseRecord{
			Name:             text(courseNameSelector),
			University:       text(courseUniversitySelector),
			Description:      text(courseDescSelector),
			RequiredSubjects: subjectList(subjectCell(row.Find(courseSubjectsSelector).First())),
		}
		duration, err := durationCell(text(courseDurationSelector))
		if err != nil {
			batch.Rejected = append(batch.Rejected, Rejected{Index: i, Input: rec, Reason: err.Error()})
			return
		}
		rec.Duration = duration
		batch.addRecord(i, rec)
	})
	return batch, nil
}

// subjectCell reads a subjects cell written either as list items or as separated text.
func subjectCell(cell *goquery.Selection) string {
	items := cell.Find("li")
	if items.Length() == 0 {
		return strings.ReplaceAll(cell.Text(), ",", listSeparator)
	}
	names := make([]string, 0, items.Length())
	items.Each(func(_ int, li *goquery.Selection) {
		names = append(names, strings.TrimSpace(li.Text()))
	})
	return strings.Join(names, listSeparator)
}

// durationCell reads "3", "3 years" or "3y".
func durationCell(s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, nil
	}
	return optionalInt(strings.TrimSuffix(strings.ToLower(fields[0]), "y"))
}
