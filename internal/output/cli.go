package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#3B82F6") // Blue
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorUrgent  = lipgloss.Color("#F97316") // Orange

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)
)

// StatusColors maps each status to its display color.
var StatusColors = map[model.Status]lipgloss.Color{
	model.StatusNotStarted: colorMuted,
	model.StatusInProgress: colorPrimary,
	model.StatusCompleted:  colorSuccess,
	model.StatusBlocked:    colorError,
}

// PriorityColors maps each priority to its display color.
var PriorityColors = map[model.Priority]lipgloss.Color{
	model.PriorityHigh:   colorError,
	model.PriorityMedium: colorWarning,
	model.PriorityLow:    colorMuted,
}

// UrgencyColors maps each due-date bucket to its display color.
var UrgencyColors = map[metrics.Urgency]lipgloss.Color{
	metrics.UrgencyNormal:   colorMuted,
	metrics.UrgencyWarning:  colorWarning,
	metrics.UrgencyCritical: colorUrgent,
	metrics.UrgencyOverdue:  colorError,
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

func (c *CLIFormatter) colored(color lipgloss.Color, text string) string {
	return c.render(lipgloss.NewStyle().Foreground(color), text)
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Status renders a status label in its color.
func (c *CLIFormatter) Status(s model.Status) string {
	return c.colored(StatusColors[s], s.Label())
}

// Priority renders a priority label in its color.
func (c *CLIFormatter) Priority(p model.Priority) string {
	return c.colored(PriorityColors[p], p.Label())
}

// Member renders a member name in the member's color.
func (c *CLIFormatter) Member(m model.Member) string {
	if m.Color == "" {
		return m.Name
	}
	return c.colored(lipgloss.Color(m.Color), m.Name)
}

// Due renders a task's due date with a countdown colored by urgency.
// Completed tasks get the plain date.
func (c *CLIFormatter) Due(t *model.Task, now time.Time) string {
	if t.DueDate.IsZero() {
		return "not set"
	}
	if t.IsCompleted() {
		return t.DueDate.String()
	}
	days := metrics.DaysUntil(t.DueDate, now)
	bucket := metrics.UrgencyBucket(t.DueDate, now)
	return fmt.Sprintf("%s (%s)", t.DueDate.String(), c.colored(UrgencyColors[bucket], DueNote(days)))
}

// ProgressBar creates a simple progress bar for a 0-100 value.
func ProgressBar(percentage, width int) string {
	percentage = max(0, min(percentage, 100))
	filled := width * percentage / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table. Widths are measured in cells so colored
// and wide characters line up.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", max(0, w-lipgloss.Width(s))) + "  "
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]))
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]))
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}

// PrintProject prints the project header with its headline numbers.
func (c *CLIFormatter) PrintProject(p *model.Project, snap metrics.Snapshot) {
	c.Title(p.Name)
	if p.Description != "" {
		c.Muted(p.Description)
	}
	c.Println()
	target := FormatDate(p.TargetDate)
	if !p.TargetDate.IsZero() {
		target = fmt.Sprintf("%s (%s)", target, DueNote(snap.DaysRemaining))
	}
	c.Printf("  Target:    %s\n", target)
	c.Printf("  Members:   %d\n", snap.MemberCount)
	c.Printf("  Tasks:     %d (%d completed)\n", snap.TotalTasks, snap.Status.Completed)
	c.Printf("  Progress:  %s %d%%\n", ProgressBar(snap.OverallProgress, 20), snap.OverallProgress)
	if len(p.Categories) > 0 {
		c.Printf("  Categories: %s\n", strings.Join(p.Categories, ", "))
	}
}

// PrintMembers prints the member table.
func (c *CLIFormatter) PrintMembers(p *model.Project, stats []metrics.MemberStat) {
	if len(p.Members) == 0 {
		c.Muted("No members yet. Add one with 'crewboard member add <name>'.")
		return
	}

	rows := make([]TableRow, 0, len(stats))
	for i, s := range stats {
		rows = append(rows, TableRow{Columns: []string{
			shortID(s.MemberID),
			c.Member(p.Members[i]),
			s.Role,
			fmt.Sprintf("%d", s.TaskCount),
			fmt.Sprintf("%d", s.Completed),
			fmt.Sprintf("%s %3d%%", ProgressBar(s.Progress, 10), s.Progress),
		}})
	}
	c.PrintTable([]string{"ID", "NAME", "ROLE", "TASKS", "DONE", "PROGRESS"}, rows)
}

// PrintTasks prints a task table.
func (c *CLIFormatter) PrintTasks(p *model.Project, tasks []model.Task, now time.Time) {
	if len(tasks) == 0 {
		c.Muted("No tasks found.")
		return
	}

	rows := make([]TableRow, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		rows = append(rows, TableRow{Columns: []string{
			shortID(t.ID),
			t.Title,
			assigneeList(p, t),
			c.Status(t.Status),
			c.Priority(t.Priority),
			fmt.Sprintf("%3d%%", t.Progress),
			c.Due(t, now),
		}})
	}
	c.PrintTable([]string{"ID", "TITLE", "ASSIGNEES", "STATUS", "PRIORITY", "PROGRESS", "DUE"}, rows)
}

// PrintTask prints one task in detail.
func (c *CLIFormatter) PrintTask(p *model.Project, t *model.Task, now time.Time) {
	c.Title(t.Title)
	c.Printf("  ID:          %s\n", t.ID)
	c.Printf("  Assignees:   %s\n", assigneeList(p, t))
	c.Printf("  Status:      %s\n", c.Status(t.Status))
	c.Printf("  Priority:    %s\n", c.Priority(t.Priority))
	c.Printf("  Progress:    %s %d%%\n", ProgressBar(t.Progress, 20), t.Progress)
	c.Printf("  Start:       %s\n", FormatDate(t.StartDate))
	c.Printf("  Due:         %s\n", c.Due(t, now))
	if t.CompletedDate != nil {
		c.Printf("  Completed:   %s\n", t.CompletedDate.String())
	}
	if t.Category != "" {
		c.Printf("  Category:    %s\n", t.Category)
	}
	if len(t.Dependencies) > 0 {
		c.Printf("  Depends on:  %s\n", strings.Join(t.Dependencies, ", "))
	}
	if t.Description != "" {
		c.Println()
		c.Println(t.Description)
	}
}

// PrintStats prints the metrics snapshot.
func (c *CLIFormatter) PrintStats(snap metrics.Snapshot) {
	c.Title(snap.ProjectName + " stats")
	c.Printf("  Overall progress:  %s %d%%\n", ProgressBar(snap.OverallProgress, 20), snap.OverallProgress)
	c.Printf("  Completion rate:   %d%%\n", snap.CompletionRate)
	if !snap.TargetDate.IsZero() {
		c.Printf("  Target date:       %s (%s)\n", snap.TargetDate, DueNote(snap.DaysRemaining))
	}
	c.Println()

	c.Println(c.render(styleBold, "By status"))
	for _, s := range model.AllStatuses() {
		c.Printf("  %-12s %d\n", s.Label(), snap.Status.Count(s))
	}
	c.Println()

	c.Println(c.render(styleBold, "By priority"))
	rows := make([]TableRow, 0, len(snap.PriorityMatrix))
	for _, r := range snap.PriorityMatrix {
		rows = append(rows, TableRow{Columns: []string{
			c.Priority(r.Priority),
			fmt.Sprintf("%d", r.Total),
			fmt.Sprintf("%d", r.Completed),
			fmt.Sprintf("%d", r.InProgress),
			fmt.Sprintf("%d", r.NotStarted),
			fmt.Sprintf("%d", r.Blocked),
		}})
	}
	c.PrintTable([]string{"PRIORITY", "TOTAL", "DONE", "IN PROGRESS", "NOT STARTED", "BLOCKED"}, rows)
	c.Println()

	if len(snap.Members) > 0 {
		c.Println(c.render(styleBold, "Members"))
		for _, m := range snap.Members {
			name := m.Name
			if m.Color != "" {
				name = c.colored(lipgloss.Color(m.Color), m.Name)
			}
			c.Printf("  %s %s %3d%%  (%d/%d done)\n",
				name+strings.Repeat(" ", max(0, 16-lipgloss.Width(m.Name))),
				ProgressBar(m.Progress, 10), m.Progress, m.Completed, m.TaskCount)
		}
		c.Println()
	}

	if len(snap.Overdue) > 0 {
		c.Println(c.colored(colorError, fmt.Sprintf("Overdue (%d)", len(snap.Overdue))))
		for _, t := range snap.Overdue {
			c.Printf("  %s  %s\n", t.Title, DueNote(metrics.DaysUntil(t.DueDate, snap.GeneratedAt)))
		}
	}
	if len(snap.Urgent) > 0 {
		c.Println(c.colored(colorUrgent, fmt.Sprintf("Due within %d days (%d)", metrics.UrgentWindowDays, len(snap.Urgent))))
		for _, t := range snap.Urgent {
			c.Printf("  %s  %s\n", t.Title, t.DueDate)
		}
	}
}

// PrintWeeklyReports prints the weekly report list.
func (c *CLIFormatter) PrintWeeklyReports(reports []*model.WeeklyReport) {
	if len(reports) == 0 {
		c.Muted("No weekly reports yet. Add one with 'crewboard weekly add'.")
		return
	}
	rows := make([]TableRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, TableRow{Columns: []string{
			shortID(r.ID),
			r.Date.String(),
			fmt.Sprintf("%d", len(r.CompletedTasks)),
			fmt.Sprintf("%d", len(r.InProgressTasks)),
			fmt.Sprintf("%d", len(r.BlockedTasks)),
			fmt.Sprintf("%d", len(r.NextWeekTasks)),
			firstLine(r.Notes, 40),
		}})
	}
	c.PrintTable([]string{"ID", "DATE", "DONE", "IN PROGRESS", "BLOCKED", "NEXT WEEK", "NOTES"}, rows)
}

// PrintWeeklyReport prints one weekly report, resolving task ids to titles.
func (c *CLIFormatter) PrintWeeklyReport(r *model.WeeklyReport, p *model.Project) {
	c.Title("Weekly report " + r.Date.String())
	c.Printf("  ID: %s\n", r.ID)
	sections := []struct {
		name string
		ids  []string
	}{
		{"Completed", r.CompletedTasks},
		{"In progress", r.InProgressTasks},
		{"Blocked", r.BlockedTasks},
		{"Next week", r.NextWeekTasks},
	}
	for _, s := range sections {
		c.Println()
		c.Println(c.render(styleBold, fmt.Sprintf("%s (%d)", s.name, len(s.ids))))
		for _, id := range s.ids {
			title := id
			if p != nil {
				if t, ok := p.FindTask(id); ok {
					title = t.Title
				}
			}
			c.Printf("  - %s\n", title)
		}
	}
	if r.Notes != "" {
		c.Println()
		c.Println(c.render(styleBold, "Notes"))
		c.Println(r.Notes)
	}
}

// PrintWebhooks prints saved webhooks with masked URLs.
func (c *CLIFormatter) PrintWebhooks(webhooks []*model.Webhook) {
	if len(webhooks) == 0 {
		c.Muted("No webhook configured. Save one with 'crewboard webhook set <url>'.")
		return
	}
	rows := make([]TableRow, 0, len(webhooks))
	for _, w := range webhooks {
		lastErr := w.LastError
		if lastErr != "" {
			lastErr = c.colored(colorError, firstLine(lastErr, 40))
		}
		rows = append(rows, TableRow{Columns: []string{
			w.Name, w.Type, w.MaskedURL(), FormatTimestamp(w.LastUsed), lastErr,
		}})
	}
	c.PrintTable([]string{"NAME", "TYPE", "URL", "LAST SENT", "LAST ERROR"}, rows)
}

// assigneeList joins a task's assignee names, or "unassigned".
func assigneeList(p *model.Project, t *model.Task) string {
	names := p.AssigneeNames(t)
	if len(names) == 0 {
		return "unassigned"
	}
	return strings.Join(names, ", ")
}

// shortID returns the first 8 characters of an id, enough to pick it out.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(s string, limit int) string {
	line, _, cut := strings.Cut(s, "\n")
	if r := []rune(line); len(r) > limit {
		return string(r[:limit-1]) + "…"
	} else if cut {
		return line + "…"
	}
	return line
}
