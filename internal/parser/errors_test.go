package parser

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manav03panchal/crewboard/internal/errors"
)

func TestParseErrorError(t *testing.T) {
	err := &ParseError{
		Input:   "someday",
		Field:   "due date",
		Message: "could not parse date",
	}
	result := err.Error()
	assert.Contains(t, result, "invalid due date")
	assert.Contains(t, result, "someday")
	assert.Contains(t, result, "could not parse date")
}

func TestNewParseError(t *testing.T) {
	err := NewParseError("date", "xyz", "invalid format", "today", "tomorrow")
	assert.Equal(t, "date", err.Field)
	assert.Equal(t, "xyz", err.Input)
	assert.Len(t, err.Examples, 2)
	assert.Nil(t, err.Unwrap())
}

func TestFormatWithExamples(t *testing.T) {
	t.Run("with_examples", func(t *testing.T) {
		result := NewDateError("due date", "someday").FormatWithExamples()
		assert.Contains(t, result, "invalid due date")
		assert.Contains(t, result, "Valid examples:")
		assert.Contains(t, result, "  - tomorrow")
		assert.Contains(t, result, "YYYY-MM-DD")
	})

	t.Run("without_examples", func(t *testing.T) {
		result := NewParseError("date", "x", "bad").FormatWithExamples()
		assert.NotContains(t, result, "Valid examples:")
	})
}

func TestDateErrorMatchesSentinel(t *testing.T) {
	err := NewDateError("start date", "blah")
	assert.True(t, stderrors.Is(err, errors.ErrInvalidDate))
}

func TestToUserError(t *testing.T) {
	t.Run("keeps_suggestion", func(t *testing.T) {
		ue := NewDateError("due date", "blah").ToUserError()
		assert.Equal(t, "due date", ue.Field)
		assert.Equal(t, "blah", ue.Value)
		assert.Equal(t, errors.Suggestions[errors.ErrInvalidDate], ue.Suggestion)
	})

	t.Run("suggestion_from_examples", func(t *testing.T) {
		ue := NewParseError("date", "x", "bad", "a", "b", "c", "d").ToUserError()
		assert.Equal(t, "Try: a, b, c", ue.Suggestion)
	})
}
