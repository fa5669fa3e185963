package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
)

type sample struct {
	Name   string `json:"name" validate:"required"`
	Age    *int   `json:"age,omitempty" validate:"omitempty,min=1,max=120"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Status string `json:"status" validate:"omitempty,oneof=available busy"`
}

func intPtr(v int) *int { return &v }

func TestValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		in      sample
		field   string
		message string
	}{
		{"missing name", sample{Date: "2024-05-01"}, "name", "name is required"},
		{"age too low", sample{Name: "Ali", Age: intPtr(0), Date: "2024-05-01"}, "age", "age must be at least 1"},
		{"age too high", sample{Name: "Ali", Age: intPtr(121), Date: "2024-05-01"}, "age", "age must be at most 120"},
		{"bad date", sample{Name: "Ali", Date: "01/05/2024"}, "date", "date must match the layout 2006-01-02"},
		{"bad status", sample{Name: "Ali", Date: "2024-05-01", Status: "asleep"}, "status", "status must be one of [available busy]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))

			appErr := err.(*apperrors.AppError)
			assert.Equal(t, tt.field, appErr.Field)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestValidateAcceptsValidInput(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(sample{Name: "Ali", Age: intPtr(30), Date: "2024-05-01", Status: "busy"}))
	assert.NoError(t, v.Validate(&sample{Name: "Ali", Date: "2024-05-01"}))
}
