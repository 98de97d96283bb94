package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// UserError Tests
// =============================================================================

func TestUserErrorError(t *testing.T) {
	t.Run("without_field", func(t *testing.T) {
		err := NewUserError("invalid input", "try again")
		assert.Equal(t, "invalid input", err.Error())
		assert.Equal(t, "try again", err.Suggestion)
	})

	t.Run("with_field", func(t *testing.T) {
		err := NewUserErrorWithField("color", "red", "invalid color", "")
		assert.Equal(t, "invalid color: 'red'", err.Error())
	})
}

func TestNewUserErrorFrom(t *testing.T) {
	err := NewUserErrorFrom(ErrInvalidStatus, "status", "done")

	assert.Equal(t, "invalid status: 'done'", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidStatus))
	assert.True(t, IsUserError(fmt.Errorf("task edit: %w", err)))
	assert.Equal(t, Suggestions[ErrInvalidStatus], GetSuggestion(err))
}

func TestAsUserError(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", NewUserError("bad", "fix it"))
	ue, ok := AsUserError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "fix it", ue.Suggestion)

	_, ok = AsUserError(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsUserError(nil))
}

// =============================================================================
// SystemError Tests
// =============================================================================

func TestSystemError(t *testing.T) {
	cause := errors.New("io error")

	t.Run("without_op", func(t *testing.T) {
		err := NewSystemError("system failure", cause)
		assert.Equal(t, "system failure", err.Error())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("with_op", func(t *testing.T) {
		err := NewSystemErrorWithOp("save project", "write failed", cause)
		assert.Equal(t, "write failed during save project", err.Error())
		se, ok := AsSystemError(fmt.Errorf("x: %w", err))
		require.True(t, ok)
		assert.Equal(t, "save project", se.Op)
	})

	assert.False(t, IsSystemError(errors.New("plain")))
}

// =============================================================================
// RecoverableError Tests
// =============================================================================

func TestRecoverableError(t *testing.T) {
	cause := errors.New("status 502")
	err := NewRecoverableError("webhook failed", cause, 3)

	assert.Equal(t, "webhook failed", err.Error())
	assert.True(t, err.CanRetry)
	assert.True(t, errors.Is(err, cause))

	err.IncrementRetry()
	err.IncrementRetry()
	assert.Equal(t, "webhook failed (attempt 2/3)", err.Error())
	assert.True(t, err.CanRetry)

	err.IncrementRetry()
	assert.False(t, err.CanRetry)

	re, ok := AsRecoverableError(err)
	require.True(t, ok)
	assert.Equal(t, 3, re.MaxRetries)
	assert.False(t, IsRecoverableError(cause))
}

// =============================================================================
// Wrap Tests
// =============================================================================

func TestWrap(t *testing.T) {
	original := errors.New("original error")

	wrapped := Wrap(original, "context")
	assert.Equal(t, "context: original error", wrapped.Error())
	assert.True(t, Is(wrapped, original))

	wrapped = Wrapf(original, "operation %s failed", "save")
	assert.Equal(t, "operation save failed: original error", wrapped.Error())

	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "format %s", "arg"))
}

// =============================================================================
// Suggestion Tests
// =============================================================================

func TestSentinelsHaveSuggestions(t *testing.T) {
	sentinels := []error{
		ErrProjectNotInitialized,
		ErrProjectExists,
		ErrMemberNotFound,
		ErrTaskNotFound,
		ErrReportNotFound,
		ErrWebhookNotConfigured,
		ErrWebhookNotFound,
		ErrNothingToUndo,
		ErrInvalidDate,
		ErrInvalidStatus,
		ErrInvalidPriority,
		ErrInvalidProgress,
		ErrInvalidColor,
		ErrInvalidURL,
		ErrInvalidImport,
		ErrInvalidSchedule,
		ErrNoAssignee,
		ErrDiskFull,
		ErrNetworkUnavailable,
		ErrTimeout,
		ErrPermissionDenied,
	}

	for _, sentinel := range sentinels {
		t.Run(sentinel.Error(), func(t *testing.T) {
			assert.NotEmpty(t, GetSuggestion(sentinel))
			assert.NotEmpty(t, GetSuggestion(Wrap(sentinel, "context")))
		})
	}
}

func TestGetSuggestion(t *testing.T) {
	assert.Empty(t, GetSuggestion(nil))
	assert.Empty(t, GetSuggestion(errors.New("unknown")))

	t.Run("user_error_wins", func(t *testing.T) {
		err := &UserError{Message: "x", Suggestion: "specific", cause: ErrTaskNotFound}
		assert.Equal(t, "specific", GetSuggestion(err))
	})
}

func TestGetCategorySuggestion(t *testing.T) {
	assert.Contains(t, GetCategorySuggestion(NewUserError("x", "")), "--help")
	assert.Contains(t, GetCategorySuggestion(NewSystemError("x", nil)), "system error")
	assert.Contains(t, GetCategorySuggestion(NewRecoverableError("x", nil, 1)), "Try the command again")
	assert.Empty(t, GetCategorySuggestion(errors.New("plain")))
}

func TestGetExamples(t *testing.T) {
	assert.NotEmpty(t, GetExamples(ErrProjectNotInitialized))
	assert.NotEmpty(t, GetExamples(Wrap(ErrInvalidDate, "due")))
	assert.Nil(t, GetExamples(errors.New("other")))
}

// =============================================================================
// Format Tests
// =============================================================================

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Category
	}{
		{"nil", nil, CategoryUnknown},
		{"user", NewUserError("x", ""), CategoryUser},
		{"system", NewSystemError("x", nil), CategorySystem},
		{"recoverable", NewRecoverableError("x", nil, 1), CategoryRecoverable},
		{"disk_full", Wrap(ErrDiskFull, "write"), CategorySystem},
		{"timeout", ErrTimeout, CategoryRecoverable},
		{"plain", errors.New("x"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.err))
		})
	}

	assert.Equal(t, "user", CategoryUser.String())
	assert.Equal(t, "unknown", Category(99).String())
}

func TestChainAndRootCause(t *testing.T) {
	root := errors.New("root")
	err := Wrap(Wrap(root, "middle"), "outer")

	assert.Equal(t, []string{"outer: middle: root", "middle: root", "root"}, Chain(err))
	assert.Equal(t, root, RootCause(err))
	assert.Nil(t, Chain(nil))
}

func TestFormatUserError(t *testing.T) {
	assert.Empty(t, FormatUserError(nil))

	out := FormatUserError(ErrProjectNotInitialized)
	assert.Contains(t, out, "no project has been set up")
	assert.Contains(t, out, "crewboard project init")
	assert.Contains(t, out, "Examples:")

	assert.Equal(t, "plain", FormatUserError(errors.New("plain")))
}

func TestFormatDebugError(t *testing.T) {
	err := Wrap(NewSystemError("write failed", ErrDiskFull), "save")
	out := FormatDebugError(err)

	assert.Contains(t, out, "Error: save: write failed")
	assert.Contains(t, out, "Error chain:")
	assert.Contains(t, out, "Category: system")
	assert.Contains(t, out, "Root cause: disk full")
}
