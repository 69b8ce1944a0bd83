package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/pkg/normalize"
)

// SubjectUpserter stores a subject unless one with the same name exists
type SubjectUpserter interface {
	Upsert(ctx context.Context, s *models.Subject) (bool, error)
}

type defaultSubject struct {
	name     string
	category string
}

// DefaultSubjects are the A-level subjects every catalog starts with.
var DefaultSubjects = []defaultSubject{
	{"Mathematics", "Sciences"},
	{"Physics", "Sciences"},
	{"Chemistry", "Sciences"},
	{"Biology", "Sciences"},
	{"Agriculture", "Sciences"},
	{"Economics", "Arts"},
	{"Geography", "Arts"},
	{"History", "Arts"},
	{"Literature in English", "Arts"},
	{"Divinity", "Arts"},
	{"Islamic Religious Education", "Arts"},
	{"Entrepreneurship", "Arts"},
	{"Fine Art", "Arts"},
	{"General Paper", "Subsidiary"},
	{"Subsidiary Mathematics", "Subsidiary"},
	{"Subsidiary ICT", "Subsidiary"},
}

// CreateDefaultData creates the default subjects if they don't exist. It keeps going past
// individual failures and returns them joined.
func CreateDefaultData(ctx context.Context, subjects SubjectUpserter, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default subjects...")

	var finalErr error
	created := 0
	for _, d := range DefaultSubjects {
		category := d.category
		subject := &models.Subject{
			Name:     d.name,
			Code:     normalize.SubjectCode(d.name),
			Category: &category,
		}
		isNew, err := subjects.Upsert(ctx, subject)
		if err != nil {
			lgr.Error().Err(err).Str("subject", d.name).Msg("Error creating default subject")
			finalErr = errors.Join(finalErr, fmt.Errorf("subject %q: %w", d.name, err))
			continue
		}
		if isNew {
			created++
		}
	}

	lgr.Info().Int("created", created).Int("total", len(DefaultSubjects)).Msg("Default subjects checked")
	return finalErr
}
