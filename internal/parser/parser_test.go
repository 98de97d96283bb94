package parser

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
)

// Wednesday
var now = time.Date(2025, 8, 6, 15, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"2025-09-06", "2025-09-06"},
		{"2025-09-06T10:00:00Z", "2025-09-06"},
		{"today", "2025-08-06"},
		{"Tomorrow", "2025-08-07"},
		{"yesterday", "2025-08-05"},
		{"+3d", "2025-08-09"},
		{"+3", "2025-08-09"},
		{"-2d", "2025-08-04"},
		{"+2w", "2025-08-20"},
		{"10 August 2025", "2025-08-10"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDate("date", tt.input, now)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.String())
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	_, err := ParseDate("due date", "not a date at all xyz", now)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidDate))

	var pe *ParseError
	require.True(t, stderrors.As(err, &pe))
	assert.Equal(t, "due date", pe.Field)
}

func TestParseDateRange(t *testing.T) {
	t.Run("defaults_start_to_today", func(t *testing.T) {
		s, d, err := ParseDateRange("", "2025-08-10", now)
		require.NoError(t, err)
		assert.Equal(t, "2025-08-06", s.String())
		assert.Equal(t, "2025-08-10", d.String())
	})

	t.Run("same_day_is_allowed", func(t *testing.T) {
		s, d, err := ParseDateRange("2025-08-10", "2025-08-10", now)
		require.NoError(t, err)
		assert.True(t, s.Equal(d))
	})

	t.Run("due_before_start", func(t *testing.T) {
		_, _, err := ParseDateRange("2025-08-10", "2025-08-01", now)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "before the start date")
	})

	t.Run("missing_due", func(t *testing.T) {
		_, _, err := ParseDateRange("", "", now)
		assert.True(t, stderrors.Is(err, errors.ErrInvalidDate))
	})
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected model.Status
	}{
		{"not_started", model.StatusNotStarted},
		{"not-started", model.StatusNotStarted},
		{"todo", model.StatusNotStarted},
		{"In Progress", model.StatusInProgress},
		{"wip", model.StatusInProgress},
		{"done", model.StatusCompleted},
		{"COMPLETED", model.StatusCompleted},
		{"blocked", model.StatusBlocked},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := ParseStatus(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}

	_, err := ParseStatus("paused")
	assert.True(t, stderrors.Is(err, errors.ErrInvalidStatus))
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("High")
	require.NoError(t, err)
	assert.Equal(t, model.PriorityHigh, p)

	p, err = ParsePriority("m")
	require.NoError(t, err)
	assert.Equal(t, model.PriorityMedium, p)

	_, err = ParsePriority("urgent")
	assert.True(t, stderrors.Is(err, errors.ErrInvalidPriority))
}

func TestParseProgress(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"0", 0},
		{"40", 40},
		{"75%", 75},
		{" 100 ", 100},
		{"150", 100},
		{"-5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := ParseProgress(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}

	_, err := ParseProgress("half")
	assert.True(t, stderrors.Is(err, errors.ErrInvalidProgress))
}

func TestParseSortField(t *testing.T) {
	f, err := ParseSortField("dueDate")
	require.NoError(t, err)
	assert.Equal(t, metrics.SortField("dueDate"), f)

	f, err = ParseSortField("")
	require.NoError(t, err)
	assert.Equal(t, metrics.SortNone, f)

	_, err = ParseSortField("color")
	require.Error(t, err)
	assert.Contains(t, errors.GetSuggestion(err), "title")
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ParseList("a, b", "c,a", " ,"))
	assert.Nil(t, ParseList())
}

func testProject() *model.Project {
	p := model.NewProject("Expo", "", model.Date{})
	p.AddMember(model.Member{ID: "aaaa1111", Name: "Aki"})
	p.AddMember(model.Member{ID: "aaaa2222", Name: "Ben"})
	p.AddTask(model.Task{ID: "task-0001", Title: "Stage"})
	p.AddTask(model.Task{ID: "task-0002", Title: "Flyers"})
	return p
}

func TestResolveMember(t *testing.T) {
	p := testProject()

	m, err := ResolveMember(p, "aaaa1111")
	require.NoError(t, err)
	assert.Equal(t, "Aki", m.Name)

	m, err = ResolveMember(p, "ben")
	require.NoError(t, err)
	assert.Equal(t, "aaaa2222", m.ID)

	_, err = ResolveMember(p, "aaaa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = ResolveMember(p, "Cleo")
	assert.True(t, stderrors.Is(err, errors.ErrMemberNotFound))
}

func TestResolveMembers(t *testing.T) {
	p := testProject()

	ids, err := ResolveMembers(p, []string{"Aki", "aaaa2222"})
	require.NoError(t, err)
	assert.Equal(t, []string{"aaaa1111", "aaaa2222"}, ids)

	_, err = ResolveMembers(p, []string{"Aki", "nobody"})
	assert.Error(t, err)
}

func TestResolveTask(t *testing.T) {
	p := testProject()

	task, err := ResolveTask(p, "task-0002")
	require.NoError(t, err)
	assert.Equal(t, "Flyers", task.Title)

	_, err = ResolveTask(p, "task")
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = ResolveTask(p, "zzzz")
	assert.True(t, stderrors.Is(err, errors.ErrTaskNotFound))
}
