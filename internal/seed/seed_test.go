package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unimatch/internal/app/models"
)

type recordingUpserter struct {
	seen   map[string]models.Subject
	failOn string
}

func (r *recordingUpserter) Upsert(_ context.Context, s *models.Subject) (bool, error) {
	if s.Name == r.failOn {
		return false, errors.New("connection reset")
	}
	if _, ok := r.seen[s.Name]; ok {
		return false, nil
	}
	r.seen[s.Name] = *s
	return true, nil
}

func TestCreateDefaultData(t *testing.T) {
	store := &recordingUpserter{seen: map[string]models.Subject{}}

	require.NoError(t, CreateDefaultData(context.Background(), store, zerolog.Nop()))
	require.Len(t, store.seen, len(DefaultSubjects))

	literature := store.seen["Literature in English"]
	assert.Equal(t, "literature_in_english", literature.Code)
	require.NotNil(t, literature.Category)
	assert.Equal(t, "Arts", *literature.Category)

	// second run is a no-op
	require.NoError(t, CreateDefaultData(context.Background(), store, zerolog.Nop()))
	assert.Len(t, store.seen, len(DefaultSubjects))
}

func TestCreateDefaultData_CollectsErrors(t *testing.T) {
	store := &recordingUpserter{seen: map[string]models.Subject{}, failOn: "Physics"}

	err := CreateDefaultData(context.Background(), store, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `subject "Physics"`)
	assert.Len(t, store.seen, len(DefaultSubjects)-1)
}
