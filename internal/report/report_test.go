package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
)

var now = time.Date(2025, time.August, 10, 9, 0, 0, 0, time.UTC)

func sampleProject() *model.Project {
	d := model.MustParseDate
	done := d("2025-08-04")
	return &model.Project{
		Name:        "Expo booth",
		Description: "Summer exhibition",
		TargetDate:  d("2025-08-31"),
		Members: []model.Member{
			{ID: "m1", Name: "Aki", Role: "Dev"},
			{ID: "m2", Name: "Ren", Role: "Design"},
		},
		Tasks: []model.Task{
			{ID: "A", Title: "Order panels", AssigneeIDs: []string{"m1"}, Status: model.StatusCompleted,
				Priority: model.PriorityLow, Progress: 100, StartDate: d("2025-08-01"), DueDate: d("2025-08-05"),
				CompletedDate: &done},
			{ID: "B", Title: "Build stage", AssigneeIDs: []string{"m1", "m2"}, Status: model.StatusInProgress,
				Priority: model.PriorityHigh, Progress: 40, StartDate: d("2025-08-01"), DueDate: d("2025-08-12"),
				Description: "Main stage"},
			{ID: "C", Title: "Print flyers", AssigneeIDs: []string{"m2"}, Status: model.StatusBlocked,
				Priority: model.PriorityMedium, StartDate: d("2025-08-01"), DueDate: d("2025-08-09")},
			{ID: "D", Title: "Book venue", AssigneeIDs: []string{"gone"}, Status: model.StatusNotStarted,
				Priority: model.PriorityMedium, StartDate: d("2025-08-15"), DueDate: d("2025-08-25")},
			{ID: "E", Title: "Pick colors", AssigneeIDs: []string{"m2"}, Status: model.StatusCompleted,
				Priority: model.PriorityLow, Progress: 100, StartDate: d("2025-08-01"), DueDate: d("2025-08-02")},
		},
	}
}

func titles(rows []TaskRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Title)
	}
	return out
}

// =============================================================================
// Render Tests
// =============================================================================

func TestRenderHeaderAndStats(t *testing.T) {
	doc := Render(sampleProject(), now)

	assert.Equal(t, "Expo booth", doc.Header.ProjectName)
	assert.Equal(t, 21, doc.Header.DaysRemaining)
	assert.Equal(t, 2, doc.Header.MemberCount)
	assert.Equal(t, 48, doc.Header.OverallProgress)

	assert.Equal(t, Stats{Total: 5, Completed: 2, InProgress: 1, Blocked: 1, CompletionRate: 40}, doc.Stats)
	assert.Equal(t, Alerts{Overdue: 1, Urgent: 2, Blocked: 1}, doc.Alerts)
	assert.True(t, doc.Alerts.Any())
	assert.Len(t, doc.Priorities, 3)
	require.Len(t, doc.Members, 2)
	assert.Equal(t, 3, doc.Members[1].TaskCount)
}

func TestRenderDueTables(t *testing.T) {
	doc := Render(sampleProject(), now)

	require.Len(t, doc.Overdue, 1)
	assert.Equal(t, "Print flyers", doc.Overdue[0].Title)
	assert.Equal(t, "Ren", doc.Overdue[0].Assignees)
	assert.Equal(t, 2, doc.Overdue[0].Days)

	require.Len(t, doc.Urgent, 2)
	assert.Equal(t, "Build stage", doc.Urgent[0].Title)
	assert.Equal(t, "Aki, Ren", doc.Urgent[0].Assignees)
	assert.Equal(t, 2, doc.Urgent[0].Days)
	assert.Equal(t, -1, doc.Urgent[1].Days)
}

func TestRenderAllTasks(t *testing.T) {
	doc := Render(sampleProject(), now)

	assert.Equal(t,
		[]string{"Print flyers", "Build stage", "Book venue", "Pick colors", "Order panels"},
		titles(doc.AllTasks))

	rows := map[string]TaskRow{}
	for _, r := range doc.AllTasks {
		rows[r.Title] = r
	}

	assert.Equal(t, "1 day overdue", rows["Print flyers"].DueNote)
	assert.Equal(t, metrics.UrgencyOverdue, rows["Print flyers"].Urgency)
	assert.Equal(t, "2 days remaining", rows["Build stage"].DueNote)
	assert.Empty(t, rows["Book venue"].DueNote)
	assert.Empty(t, rows["Pick colors"].DueNote, "completed tasks carry no note")

	t.Run("placeholders", func(t *testing.T) {
		assert.Equal(t, Unassigned, rows["Book venue"].Assignees)
		assert.Equal(t, NoDescription, rows["Book venue"].Description)
		assert.Equal(t, "Main stage", rows["Build stage"].Description)
	})
}

func TestRenderCompleted(t *testing.T) {
	doc := Render(sampleProject(), now)
	require.Len(t, doc.Completed, 2)
	assert.Equal(t, "Aug 4", doc.Completed[0].CompletedDate)
	assert.Equal(t, NotSet, doc.Completed[1].CompletedDate)
}

func TestRenderEmptyProject(t *testing.T) {
	p := &model.Project{Name: "Empty"}

	var doc *Document
	require.NotPanics(t, func() { doc = Render(p, now) })

	assert.False(t, doc.Alerts.Any())
	assert.Equal(t, 0, doc.Stats.CompletionRate)
	assert.Equal(t, 0, doc.Header.OverallProgress)
	assert.Empty(t, doc.AllTasks)
	assert.Empty(t, doc.Members)

	text := doc.Text()
	assert.Equal(t, 3, strings.Count(text, NoTasks+"\n"))
	assert.Contains(t, text, NoCompleted)
	assert.Contains(t, text, "Completion 0%")
	assert.Contains(t, text, "Target: "+NotSet)

	html, err := doc.HTML()
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(html), ">"+NoTasks+"<"))
	assert.Contains(t, string(html), NoCompleted)
	assert.NotContains(t, string(html), "Needs attention")
}

func TestRenderNilProject(t *testing.T) {
	assert.NotPanics(t, func() { Render(nil, now).Text() })
}

func TestRenderIdempotent(t *testing.T) {
	p := sampleProject()
	assert.Equal(t, Render(p, now), Render(p, now))
	assert.Equal(t, "A", p.Tasks[0].ID, "project must not be reordered")
}

// =============================================================================
// Output Tests
// =============================================================================

func TestText(t *testing.T) {
	text := Render(sampleProject(), now).Text()

	assert.True(t, strings.HasPrefix(text, "# Expo booth progress report\n"))
	assert.Contains(t, text, "Target: Aug 31, 2025 (21 days remaining)")
	assert.Contains(t, text, "- Overdue: 1 task past due")
	assert.Contains(t, text, "- Urgent: 2 tasks due within 3 days")
	assert.Contains(t, text, "- Aki (Dev): 2 tasks, 1 done, 1 in progress")
	assert.Contains(t, text, "[Blocked] Print flyers: Ren, 0%, due Aug 9 (1 day overdue)")
	assert.Contains(t, text, "Pick colors: Ren, completed not set")

	assert.Less(t, strings.Index(text, "## Summary"), strings.Index(text, "## All tasks"))
}

func TestHTML(t *testing.T) {
	p := sampleProject()
	p.Tasks[1].Title = "<script>alert(1)</script>"

	html, err := Render(p, now).HTML()
	require.NoError(t, err)
	out := string(html)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Expo booth progress report")
	assert.Contains(t, out, "Needs attention")
	assert.Contains(t, out, `class="due-overdue"`)
	assert.Contains(t, out, "(1 day overdue)")
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestBar(t *testing.T) {
	tests := []struct {
		progress int
		filled   int
	}{
		{0, 0},
		{47, 9},
		{48, 10},
		{100, 20},
		{150, 20},
		{-5, 0},
	}

	for _, tt := range tests {
		bar := Bar(tt.progress)
		assert.Equal(t, BarCells, len([]rune(bar)))
		assert.Equal(t, tt.filled, strings.Count(bar, "■"), "progress %d", tt.progress)
	}
}

func TestFilename(t *testing.T) {
	p := &model.Project{Name: "Expo/Booth"}
	assert.Equal(t, "Expo_Booth_report_20250810_0900.html", Filename(p, now))
	assert.Equal(t, "project_report_20250810_0900.html", Filename(&model.Project{}, now))
}
