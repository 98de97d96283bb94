package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/crewboard/internal/errors"
)

// ParseError represents an input parsing error with helpful suggestions.
type ParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
	sentinel   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

// Unwrap returns the sentinel for the field, so errors.Is matches
// ErrInvalidDate and friends.
func (e *ParseError) Unwrap() error {
	return e.sentinel
}

// NewParseError creates a new parse error with examples.
func NewParseError(field, input, message string, examples ...string) *ParseError {
	return &ParseError{
		Input:    input,
		Field:    field,
		Message:  message,
		Examples: examples,
	}
}

// FormatWithExamples returns the error message with example suggestions.
func (e *ParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// DateExamples provides example date formats.
var DateExamples = []string{
	"2025-09-06",
	"today",
	"tomorrow",
	"+3d",
	"+2w",
	"next friday",
	"in 10 days",
}

// NewDateError creates a date parse error with standard examples.
func NewDateError(field, input string) *ParseError {
	return &ParseError{
		Input:      input,
		Field:      field,
		Message:    "could not parse date",
		Examples:   DateExamples,
		Suggestion: errors.Suggestions[errors.ErrInvalidDate],
		sentinel:   errors.ErrInvalidDate,
	}
}

// ToUserError converts a ParseError to a UserError for consistent handling.
func (e *ParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	ue := errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
	ue.Reason = e.Error()
	return ue
}
