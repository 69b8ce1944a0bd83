package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	type payload struct {
		Level       string `validate:"required,edulevel"`
		CourseLevel string `validate:"omitempty,courselevel"`
	}

	tests := []struct {
		name    string
		in      payload
		wantErr string
	}{
		{"a-level", payload{Level: "a-level"}, ""},
		{"spelled out", payload{Level: "O Level", CourseLevel: "bachelors"}, ""},
		{"unknown level", payload{Level: "university"}, TagEducationLevel},
		{"unknown course level", payload{Level: "uace", CourseLevel: "postdoc"}, TagCourseLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.wantErr, verrs[0].Tag())
		})
	}
}

func TestRegisterWithGin(t *testing.T) {
	assert.NoError(t, RegisterWithGin())
}
