package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Date Tests
// =============================================================================

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-09-06")
	require.NoError(t, err)
	assert.Equal(t, "2025-09-06", d.String())
	assert.Equal(t, time.Saturday, d.Weekday())

	t.Run("iso_timestamp_truncated", func(t *testing.T) {
		d, err := ParseDate("2025-09-06T12:30:00.000Z")
		require.NoError(t, err)
		assert.Equal(t, "2025-09-06", d.String())
	})

	t.Run("empty_is_zero", func(t *testing.T) {
		d, err := ParseDate("")
		require.NoError(t, err)
		assert.True(t, d.IsZero())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseDate("06/09/2025")
		assert.Error(t, err)
	})
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		expected int
	}{
		{"same_day", "2025-01-10", "2025-01-10", 0},
		{"next_day", "2025-01-10", "2025-01-11", 1},
		{"backwards", "2025-01-10", "2025-01-03", -7},
		{"month_boundary", "2025-01-31", "2025-02-01", 1},
		{"leap_year", "2024-02-28", "2024-03-01", 2},
		{"across_dst", "2025-03-08", "2025-03-10", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysBetween(MustParseDate(tt.from), MustParseDate(tt.to)))
		})
	}
}

func TestDateIn(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	d := NewDate(2025, time.July, 1)
	local := d.In(loc)
	assert.Equal(t, 0, local.Hour())
	assert.Equal(t, loc, local.Location())
	assert.Equal(t, d, DateOf(local))
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		D Date  `json:"d"`
		P *Date `json:"p,omitempty"`
	}

	data, err := json.Marshal(wrapper{D: NewDate(2025, time.March, 4)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2025-03-04"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2025-12-31","p":"2026-01-01"}`), &w))
	assert.Equal(t, "2025-12-31", w.D.String())
	require.NotNil(t, w.P)
	assert.Equal(t, "2026-01-01", w.P.String())

	assert.Error(t, json.Unmarshal([]byte(`{"d":"tomorrow"}`), &w))
}

// =============================================================================
// Enum Tests
// =============================================================================

func TestStatusExhaustive(t *testing.T) {
	seenRanks := map[int]bool{}
	for _, s := range AllStatuses() {
		assert.True(t, s.IsValid(), s)
		assert.NotEqual(t, string(s), s.Label(), "status %s has no label", s)
		assert.Less(t, s.Rank(), 4, "status %s has no rank", s)
		seenRanks[s.Rank()] = true
	}
	assert.Len(t, seenRanks, len(AllStatuses()))
	assert.False(t, Status("done").IsValid())
	assert.Equal(t, 4, Status("done").Rank())
}

func TestStatusRankOrder(t *testing.T) {
	assert.Less(t, StatusBlocked.Rank(), StatusInProgress.Rank())
	assert.Less(t, StatusInProgress.Rank(), StatusNotStarted.Rank())
	assert.Less(t, StatusNotStarted.Rank(), StatusCompleted.Rank())
}

func TestPriorityExhaustive(t *testing.T) {
	for _, p := range AllPriorities() {
		assert.True(t, p.IsValid(), p)
		assert.NotEqual(t, string(p), p.Label())
		assert.Less(t, p.Rank(), 3)
	}
	assert.Equal(t, []Priority{PriorityHigh, PriorityMedium, PriorityLow}, AllPriorities())
	assert.False(t, Priority("urgent").IsValid())
}

// =============================================================================
// Project Tests
// =============================================================================

func sampleProject() *Project {
	p := NewProject("Expo booth", "Summer exhibition", NewDate(2025, time.September, 6))
	p.AddMember(Member{ID: "m1", Name: "Aki", Role: "Dev", Color: "#FF6B6B"})
	p.AddMember(Member{ID: "m2", Name: "Ren", Role: "Design", Color: "#4ECDC4"})
	p.AddTask(Task{
		ID:          "t1",
		Title:       "Build stage",
		AssigneeIDs: []string{"m1", "m2"},
		Status:      StatusInProgress,
		Priority:    PriorityHigh,
		Progress:    40,
		StartDate:   NewDate(2025, time.August, 1),
		DueDate:     NewDate(2025, time.August, 20),
		Category:    "Development",
	})
	return p
}

func TestNewProject(t *testing.T) {
	p := NewProject("Name", "Desc", NewDate(2025, time.January, 1))
	assert.Equal(t, KeyProject, p.GetKey())
	assert.NotEmpty(t, p.ID)
	assert.Empty(t, p.Members)
	assert.Empty(t, p.Tasks)
	assert.Equal(t, DefaultCategories, p.Categories)
}

func TestProjectMemberCRUD(t *testing.T) {
	p := sampleProject()

	name := "Akira"
	assert.True(t, p.UpdateMember("m1", MemberPatch{Name: &name}))
	m, ok := p.FindMember("m1")
	require.True(t, ok)
	assert.Equal(t, "Akira", m.Name)
	assert.Equal(t, "Dev", m.Role)

	assert.False(t, p.UpdateMember("missing", MemberPatch{Name: &name}))

	t.Run("delete_does_not_cascade", func(t *testing.T) {
		assert.True(t, p.DeleteMember("m2"))
		assert.False(t, p.DeleteMember("m2"))
		task, ok := p.FindTask("t1")
		require.True(t, ok)
		assert.Equal(t, []string{"m1", "m2"}, task.AssigneeIDs)
		assert.Equal(t, []string{"Akira"}, p.AssigneeNames(task))
	})
}

func TestProjectTaskCRUD(t *testing.T) {
	p := sampleProject()

	progress := 100
	assert.True(t, p.UpdateTask("t1", TaskPatch{Progress: &progress}))
	task, _ := p.FindTask("t1")
	assert.Equal(t, 100, task.Progress)
	// Progress and status stay independent.
	assert.Equal(t, StatusInProgress, task.Status)

	completed := NewDate(2025, time.August, 19)
	status := StatusCompleted
	assert.True(t, p.UpdateTask("t1", TaskPatch{Status: &status, CompletedDate: &completed}))
	require.NotNil(t, task.CompletedDate)
	assert.Equal(t, completed, *task.CompletedDate)

	assert.Len(t, p.TasksByMember("m1"), 1)
	assert.Empty(t, p.TasksByMember("nobody"))

	assert.True(t, p.DeleteTask("t1"))
	assert.False(t, p.DeleteTask("t1"))
	_, ok := p.FindTask("t1")
	assert.False(t, ok)
}

func TestTaskPatchClearsCompletedDate(t *testing.T) {
	d := NewDate(2025, time.May, 5)
	task := Task{CompletedDate: &d}
	TaskPatch{CompletedDate: &Date{}}.Apply(&task)
	assert.Nil(t, task.CompletedDate)
}

func TestProjectJSONRoundTrip(t *testing.T) {
	p := sampleProject()
	done := NewDate(2025, time.August, 2)
	p.AddTask(Task{
		ID:            "t2",
		Title:         "Order lights",
		AssigneeIDs:   []string{"m2"},
		Status:        StatusCompleted,
		Priority:      PriorityLow,
		Progress:      100,
		StartDate:     NewDate(2025, time.July, 28),
		DueDate:       NewDate(2025, time.August, 2),
		CompletedDate: &done,
		Category:      "Design",
		Dependencies:  []string{"t1"},
	})

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"assigneeIds":["m1","m2"]`)
	assert.Contains(t, string(data), `"dueDate":"2025-08-20"`)
	assert.NotContains(t, string(data), `"Key"`)

	var decoded Project
	require.NoError(t, json.Unmarshal(data, &decoded))
	decoded.Key = p.Key
	assert.Equal(t, *p, decoded)
}

func TestProjectClone(t *testing.T) {
	p := sampleProject()
	c := p.Clone()
	assert.Equal(t, p, c)

	c.Tasks[0].AssigneeIDs[0] = "changed"
	c.Members[0].Name = "changed"
	assert.Equal(t, "m1", p.Tasks[0].AssigneeIDs[0])
	assert.Equal(t, "Aki", p.Members[0].Name)

	var nilProject *Project
	assert.Nil(t, nilProject.Clone())
}

// =============================================================================
// WeeklyReport Tests
// =============================================================================

func TestWeeklyReportFromProject(t *testing.T) {
	p := sampleProject()
	p.AddTask(Task{ID: "t2", Status: StatusBlocked})
	p.AddTask(Task{ID: "t3", Status: StatusNotStarted})
	p.AddTask(Task{ID: "t4", Status: StatusCompleted})

	r := NewWeeklyReport(p.ID, NewDate(2025, time.August, 6))
	assert.Equal(t, GenerateWeeklyKey(r.ID), r.GetKey())

	r.FromProject(p)
	assert.Equal(t, []string{"t4"}, r.CompletedTasks)
	assert.Equal(t, []string{"t1"}, r.InProgressTasks)
	assert.Equal(t, []string{"t2"}, r.BlockedTasks)
	assert.Equal(t, []string{"t3"}, r.NextWeekTasks)
}

// =============================================================================
// Webhook Tests
// =============================================================================

func TestDetectWebhookType(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://discord.com/api/webhooks/123/abc", WebhookTypeDiscord},
		{"https://discordapp.com/api/webhooks/123/abc", WebhookTypeDiscord},
		{"https://hooks.slack.com/services/T000/B000/XXX", WebhookTypeSlack},
		{"https://contoso.webhook.office.com/webhookb2/abc", WebhookTypeTeams},
		{"https://example.com/hook", WebhookTypeGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectWebhookType(tt.url))
		})
	}
}

func TestWebhookMaskedURL(t *testing.T) {
	wh := NewWebhook("default", "https://discord.com/api/webhooks/123456789/secret-token")
	assert.Equal(t, "https://discord.com/api/webhoo***", wh.MaskedURL())
	assert.Equal(t, GenerateWebhookKey("default"), wh.Key)

	short := NewWebhook("x", "https://example.com/h")
	assert.Equal(t, "https://example.com/h", short.MaskedURL())
}

func TestIsValidWebhookName(t *testing.T) {
	assert.True(t, IsValidWebhookName("default"))
	assert.True(t, IsValidWebhookName("team_chat-2"))
	assert.False(t, IsValidWebhookName(""))
	assert.False(t, IsValidWebhookName("-leading"))
	assert.False(t, IsValidWebhookName("has space"))
}

func TestValidateColor(t *testing.T) {
	assert.True(t, ValidateColor(""))
	assert.True(t, ValidateColor("#45B7D1"))
	assert.False(t, ValidateColor("45B7D1"))
	assert.False(t, ValidateColor("#45B7D"))
}
