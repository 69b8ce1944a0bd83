package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unimatch/internal/app/models"
	"github.com/yigit/unimatch/internal/app/models/dto"
	"github.com/yigit/unimatch/internal/pkg/apperrors"
)

func TestStudentService_SaveResults(t *testing.T) {
	store := newMemStore()
	maths := store.addSubject("Mathematics")
	english := store.addSubject("English Language")
	svc := NewStudentService(memStudents{store}, memSubjects{store}, testLogger)
	id := uuid.New()

	resp, err := svc.SaveResults(context.Background(), id, &dto.SaveStudentResultsRequest{
		IsFemale: true,
		Results: []dto.StudentResultInput{
			{SubjectName: "Mathematics", Level: "a-level", Grade: "B"},
			{SubjectName: "mathematics", Level: "A Level", Grade: "A"},
			{SubjectName: "Mathematics", Level: "o-level", Grade: "2"},
			{SubjectName: "English Language (Paper 1)", Level: "uce", Grade: "x"},
			{SubjectName: "Latin", Level: "a-level", Grade: "C"},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Student.IsFemale)
	assert.Equal(t, []string{"Latin"}, resp.UnknownSubjects)
	require.Len(t, resp.Student.Results, 3)
	assert.Equal(t, models.StudentSubjectResult{SubjectID: maths.ID, SubjectName: "Mathematics", Level: models.LevelALevel, Grade: "B"}, resp.Student.Results[0])
	assert.Equal(t, models.LevelOLevel, resp.Student.Results[1].Level)
	assert.Equal(t, english.ID, resp.Student.Results[2].SubjectID)

	// a second save replaces the first
	_, err = svc.SaveResults(context.Background(), id, &dto.SaveStudentResultsRequest{
		Results: []dto.StudentResultInput{{SubjectName: "English Language", Level: "a-level", Grade: "E"}},
	})
	require.NoError(t, err)

	student, err := svc.GetStudent(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, student.IsFemale)
	require.Len(t, student.Results, 1)
	assert.Equal(t, "E", student.Results[0].Grade)
}

func TestStudentService_SaveResults_Invalid(t *testing.T) {
	store := newMemStore()
	store.addSubject("Mathematics")
	svc := NewStudentService(memStudents{store}, memSubjects{store}, testLogger)

	tests := []struct {
		name   string
		result dto.StudentResultInput
		want   error
	}{
		{"unknown level", dto.StudentResultInput{SubjectName: "Mathematics", Level: "degree", Grade: "A"}, apperrors.ErrValidationFailed},
		{"grade off the A-Level scale", dto.StudentResultInput{SubjectName: "Mathematics", Level: "a-level", Grade: "7"}, apperrors.ErrValidationFailed},
		{"grade off the O-Level scale", dto.StudentResultInput{SubjectName: "Mathematics", Level: "o-level", Grade: "A"}, apperrors.ErrValidationFailed},
		{"no known subject", dto.StudentResultInput{SubjectName: "Latin", Level: "a-level", Grade: "A"}, apperrors.ErrNoMatchingSubjects},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveResults(context.Background(), uuid.New(), &dto.SaveStudentResultsRequest{
				Results: []dto.StudentResultInput{tt.result},
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, store.students)
}

func TestStudentService_GetStudent_NotFound(t *testing.T) {
	svc := NewStudentService(memStudents{newMemStore()}, memSubjects{newMemStore()}, testLogger)

	_, err := svc.GetStudent(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
