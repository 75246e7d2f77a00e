package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	apperrors "facility-cleaning-backend/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestSentinelMatchingSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading aggregate: %w", apperrors.ErrWorkOrderNotFound)

	assert.ErrorIs(t, wrapped, apperrors.ErrWorkOrderNotFound)
	assert.NotErrorIs(t, wrapped, apperrors.ErrTaskNotFound)
	assert.True(t, apperrors.IsNotFound(wrapped))
}

func TestErrorClassHelpers(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{"not found", apperrors.ErrFrequencyNotFound, "not_found"},
		{"already exists", apperrors.ErrWorkOrderExists, "already_exists"},
		{"configuration", apperrors.ErrDayStepExceedsRange, "configuration"},
		{"precondition", apperrors.ErrRosterEmpty, "precondition"},
		{"validation", apperrors.NewValidationError("name", "is required"), "validation"},
		{"storage", apperrors.WrapStorage(stderrors.New("connection reset")), "storage"},
	}

	classify := func(err error) string {
		switch {
		case apperrors.IsNotFound(err):
			return "not_found"
		case apperrors.IsAlreadyExists(err):
			return "already_exists"
		case apperrors.IsConfiguration(err):
			return "configuration"
		case apperrors.IsPrecondition(err):
			return "precondition"
		case apperrors.IsValidation(err):
			return "validation"
		case apperrors.IsStorage(err):
			return "storage"
		}
		return "unknown"
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(tc.err))
		})
	}
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := stderrors.New("deadlock detected")
	err := apperrors.WrapStorage(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "storage error")
}

func TestWrapStorageNil(t *testing.T) {
	assert.NoError(t, apperrors.WrapStorage(nil))
}

func TestNotFoundErrorMessages(t *testing.T) {
	assert.Equal(t, "work order not found", apperrors.ErrWorkOrderNotFound.Error())
	assert.Equal(t, "cleaning task not found", apperrors.ErrTaskNotFound.Error())
}
