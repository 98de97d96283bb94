package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/crewboard/internal/model"
)

var now = time.Date(2025, time.August, 10, 9, 0, 0, 0, time.UTC)

func date(s string) model.Date {
	return model.MustParseDate(s)
}

func task(id string, status model.Status, progress int, due string, assignees ...string) model.Task {
	return model.Task{
		ID:          id,
		Title:       "Task " + id,
		AssigneeIDs: assignees,
		Status:      status,
		Priority:    model.PriorityMedium,
		Progress:    progress,
		StartDate:   date("2025-08-01"),
		DueDate:     date(due),
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

// scenario is the three-task project: A completed, B in progress due in two
// days, C blocked and due yesterday.
func scenario() *model.Project {
	return &model.Project{
		Name:       "Launch",
		TargetDate: date("2025-08-31"),
		Members: []model.Member{
			{ID: "m1", Name: "Aki"},
			{ID: "m2", Name: "Ren"},
		},
		Tasks: []model.Task{
			task("A", model.StatusCompleted, 100, "2025-08-05", "m1"),
			task("B", model.StatusInProgress, 40, "2025-08-12", "m1", "m2"),
			task("C", model.StatusBlocked, 0, "2025-08-09", "m2"),
		},
	}
}

// =============================================================================
// Breakdown Tests
// =============================================================================

func TestStatusBreakdown(t *testing.T) {
	p := scenario()
	c := StatusBreakdown(p.Tasks)
	assert.Equal(t, StatusCounts{Completed: 1, InProgress: 1, Blocked: 1, NotStarted: 0}, c)
	assert.Equal(t, len(p.Tasks), c.Total())

	t.Run("count_covers_every_status", func(t *testing.T) {
		var tasks []model.Task
		for i, s := range model.AllStatuses() {
			for j := 0; j <= i; j++ {
				tasks = append(tasks, model.Task{Status: s})
			}
		}
		c := StatusBreakdown(tasks)
		for i, s := range model.AllStatuses() {
			assert.Equal(t, i+1, c.Count(s), s)
		}
		assert.Equal(t, len(tasks), c.Total())
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, StatusCounts{}, StatusBreakdown(nil))
	})
}

func TestPriorityBreakdown(t *testing.T) {
	tasks := []model.Task{
		{Priority: model.PriorityHigh},
		{Priority: model.PriorityHigh},
		{Priority: model.PriorityLow},
	}
	c := PriorityBreakdown(tasks)
	assert.Equal(t, 2, c.Count(model.PriorityHigh))
	assert.Equal(t, 0, c.Count(model.PriorityMedium))
	assert.Equal(t, 1, c.Count(model.PriorityLow))
	assert.Equal(t, 3, c.Total())
}

func TestPriorityStatusMatrix(t *testing.T) {
	tasks := []model.Task{
		{Priority: model.PriorityHigh, Status: model.StatusBlocked},
		{Priority: model.PriorityHigh, Status: model.StatusCompleted},
		{Priority: model.PriorityLow, Status: model.StatusNotStarted},
	}
	rows := PriorityStatusMatrix(tasks)
	require.Len(t, rows, 3)
	assert.Equal(t, PriorityRow{Priority: model.PriorityHigh, Total: 2, Completed: 1, Blocked: 1}, rows[0])
	assert.Equal(t, PriorityRow{Priority: model.PriorityMedium}, rows[1])
	assert.Equal(t, PriorityRow{Priority: model.PriorityLow, Total: 1, NotStarted: 1}, rows[2])
}

// =============================================================================
// Progress Tests
// =============================================================================

func TestOverallProgress(t *testing.T) {
	assert.Equal(t, 0, OverallProgress(nil))
	assert.Equal(t, 47, OverallProgress(scenario().Tasks))

	full := []model.Task{{Progress: 100}, {Progress: 100}, {Progress: 100}}
	assert.Equal(t, 100, OverallProgress(full))

	assert.Equal(t, 51, OverallProgress([]model.Task{{Progress: 50}, {Progress: 51}}))
}

func TestMemberProgress(t *testing.T) {
	tasks := []model.Task{
		task("1", model.StatusInProgress, 20, "2025-08-20", "m1"),
		task("2", model.StatusCompleted, 60, "2025-08-20", "m1", "m2"),
	}
	members := []model.Member{
		{ID: "m1", Name: "Aki", Role: "Dev"},
		{ID: "m2", Name: "Ren"},
		{ID: "m3", Name: "Idle"},
	}

	stats := MemberProgress(tasks, members)
	require.Len(t, stats, 3)

	assert.Equal(t, "m1", stats[0].MemberID)
	assert.Equal(t, 2, stats[0].TaskCount)
	assert.Equal(t, 40, stats[0].Progress)
	assert.Equal(t, 1, stats[0].Completed)
	assert.Equal(t, 1, stats[0].InProgress)

	assert.Equal(t, 1, stats[1].TaskCount)
	assert.Equal(t, 60, stats[1].Progress)

	t.Run("no_tasks_is_zero", func(t *testing.T) {
		assert.Equal(t, 0, stats[2].TaskCount)
		assert.Equal(t, 0, stats[2].Progress)
	})
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(nil))
	assert.Equal(t, 33, CompletionRate(scenario().Tasks))
	assert.Equal(t, 67, CompletionRate([]model.Task{
		{Status: model.StatusCompleted},
		{Status: model.StatusCompleted},
		{Status: model.StatusBlocked},
	}))
}

// =============================================================================
// Due Date Tests
// =============================================================================

func TestOverdueAndUrgent(t *testing.T) {
	p := scenario()
	assert.Equal(t, []string{"C"}, ids(OverdueTasks(p.Tasks, now)))
	assert.Equal(t, []string{"B", "C"}, ids(UrgentTasks(p.Tasks, now)))

	t.Run("completed_past_due_excluded", func(t *testing.T) {
		tasks := []model.Task{task("X", model.StatusCompleted, 100, "2025-07-01")}
		assert.Empty(t, OverdueTasks(tasks, now))
		assert.Empty(t, UrgentTasks(tasks, now))
	})

	t.Run("empty_not_nil", func(t *testing.T) {
		assert.NotNil(t, OverdueTasks(nil, now))
		assert.NotNil(t, UrgentTasks(nil, now))
	})
}

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		due      string
		expected int
	}{
		{"2025-08-09", -1},
		{"2025-08-10", 0},
		{"2025-08-11", 1},
		{"2025-08-13", 3},
		{"2025-08-14", 4},
	}

	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysUntil(date(tt.due), now))
		})
	}

	t.Run("uses_local_midnight", func(t *testing.T) {
		loc := time.FixedZone("JST", 9*60*60)
		local := time.Date(2025, time.August, 10, 12, 0, 0, 0, loc)
		assert.Equal(t, 1, DaysUntil(date("2025-08-11"), local))
	})
}

func TestDaysOverdue(t *testing.T) {
	assert.Equal(t, 2, DaysOverdue(date("2025-08-09"), now))
	assert.Equal(t, 1, DaysOverdue(date("2025-08-10"), now))
}

func TestUrgencyBucket(t *testing.T) {
	tests := []struct {
		due      string
		expected Urgency
	}{
		{"2025-08-01", UrgencyOverdue},
		{"2025-08-09", UrgencyOverdue},
		{"2025-08-10", UrgencyCritical},
		{"2025-08-11", UrgencyCritical},
		{"2025-08-12", UrgencyWarning},
		{"2025-08-13", UrgencyWarning},
		{"2025-08-14", UrgencyNormal},
	}

	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			assert.Equal(t, tt.expected, UrgencyBucket(date(tt.due), now))
		})
	}
}

func TestUrgencyNames(t *testing.T) {
	seen := map[string]bool{}
	for _, u := range AllUrgencies() {
		assert.NotEqual(t, "unknown", u.String())
		seen[u.String()] = true
	}
	assert.Len(t, seen, len(AllUrgencies()))
}

// =============================================================================
// List Tests
// =============================================================================

func TestUpcomingTasks(t *testing.T) {
	tasks := []model.Task{
		task("late", model.StatusNotStarted, 0, "2025-09-01"),
		task("done", model.StatusCompleted, 100, "2025-08-01"),
		task("soon", model.StatusInProgress, 10, "2025-08-11"),
		task("mid", model.StatusBlocked, 0, "2025-08-20"),
	}
	assert.Equal(t, []string{"soon", "mid", "late"}, ids(UpcomingTasks(tasks, 5)))
	assert.Equal(t, []string{"soon"}, ids(UpcomingTasks(tasks, 1)))
}

func TestFilterTasks(t *testing.T) {
	p := scenario()
	assert.Len(t, FilterTasks(p.Tasks, Filter{}), 3)
	assert.Equal(t, []string{"C"}, ids(FilterTasks(p.Tasks, Filter{Status: model.StatusBlocked})))
	assert.Equal(t, []string{"A", "B"}, ids(FilterTasks(p.Tasks, Filter{MemberID: "m1"})))
	assert.Equal(t, []string{"B"}, ids(FilterTasks(p.Tasks, Filter{Status: model.StatusInProgress, MemberID: "m2"})))
}

func TestSortTasks(t *testing.T) {
	members := []model.Member{{ID: "m1", Name: "zed"}, {ID: "m2", Name: "Amy"}}
	tasks := []model.Task{
		{ID: "1", Title: "beta", AssigneeIDs: []string{"m1"}, Status: model.StatusBlocked, Priority: model.PriorityLow, Progress: 50, DueDate: date("2025-08-03")},
		{ID: "2", Title: "Alpha", AssigneeIDs: []string{"m2"}, Status: model.StatusCompleted, Priority: model.PriorityHigh, Progress: 10, DueDate: date("2025-08-02")},
		{ID: "3", Title: "gamma", AssigneeIDs: []string{"m2", "m1"}, Status: model.StatusNotStarted, Priority: model.PriorityMedium, Progress: 90, DueDate: date("2025-08-01")},
	}

	tests := []struct {
		field    SortField
		desc     bool
		expected []string
	}{
		{SortNone, false, []string{"1", "2", "3"}},
		{SortTitle, false, []string{"2", "1", "3"}},
		{SortAssignee, false, []string{"2", "3", "1"}},
		{SortStatus, false, []string{"3", "2", "1"}},
		{SortProgress, true, []string{"3", "1", "2"}},
		{SortDueDate, false, []string{"3", "2", "1"}},
		{SortPriority, false, []string{"2", "3", "1"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(SortTasks(tasks, members, tt.field, tt.desc)))
		})
	}

	assert.Equal(t, "1", tasks[0].ID, "input must not be reordered")
	assert.True(t, SortDueDate.IsValid())
	assert.False(t, SortField("size").IsValid())
}

// =============================================================================
// Snapshot Tests
// =============================================================================

func TestCompute(t *testing.T) {
	s := Compute(scenario(), now)
	assert.Equal(t, "Launch", s.ProjectName)
	assert.Equal(t, 3, s.TotalTasks)
	assert.Equal(t, 2, s.MemberCount)
	assert.Equal(t, 47, s.OverallProgress)
	assert.Equal(t, 33, s.CompletionRate)
	assert.Equal(t, 21, s.DaysRemaining)
	assert.Equal(t, []string{"C"}, ids(s.Overdue))
	assert.Equal(t, []string{"B", "C"}, ids(s.Urgent))
	assert.Equal(t, []string{"C", "B"}, ids(s.Upcoming))

	t.Run("empty_project", func(t *testing.T) {
		s := Compute(&model.Project{Name: "Empty"}, now)
		assert.Equal(t, 0, s.OverallProgress)
		assert.Equal(t, 0, s.CompletionRate)
		assert.Empty(t, s.Overdue)
		assert.Len(t, s.PriorityMatrix, 3)
	})

	t.Run("nil_project", func(t *testing.T) {
		assert.NotPanics(t, func() { Compute(nil, now) })
	})
}
