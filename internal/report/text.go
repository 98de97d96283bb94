package report

import (
	"fmt"
	"strings"
)

// Text renders the report as plain text with light markdown, suitable for
// chat webhooks and the terminal. The summary comes first so truncation
// drops detail rather than headline numbers.
func (d *Document) Text() string {
	var b strings.Builder
	h := d.Header

	fmt.Fprintf(&b, "# %s progress report\n", orDefault(h.ProjectName, "Project"))
	fmt.Fprintf(&b, "Generated %s\n\n", h.GeneratedAt.Format(Timestamp))
	if h.Description != "" {
		fmt.Fprintf(&b, "%s\n", h.Description)
	}
	fmt.Fprintf(&b, "Target: %s\n", d.targetLine())
	fmt.Fprintf(&b, "Members: %d\n", h.MemberCount)
	fmt.Fprintf(&b, "Overall: %s %d%%\n", Bar(h.OverallProgress), h.OverallProgress)

	if d.Alerts.Any() {
		b.WriteString("\n## Needs attention\n")
		if d.Alerts.Overdue > 0 {
			fmt.Fprintf(&b, "- Overdue: %s past due\n", plural(d.Alerts.Overdue, "task"))
		}
		if d.Alerts.Urgent > 0 {
			fmt.Fprintf(&b, "- Urgent: %s due within 3 days\n", plural(d.Alerts.Urgent, "task"))
		}
		if d.Alerts.Blocked > 0 {
			fmt.Fprintf(&b, "- Blocked: %s stalled\n", plural(d.Alerts.Blocked, "task"))
		}
	}

	s := d.Stats
	b.WriteString("\n## Summary\n")
	fmt.Fprintf(&b, "Total %d | Completed %d | In progress %d | Blocked %d | Completion %d%%\n",
		s.Total, s.Completed, s.InProgress, s.Blocked, s.CompletionRate)

	b.WriteString("\n## Members\n")
	if len(d.Members) == 0 {
		b.WriteString("no members\n")
	}
	for _, m := range d.Members {
		name := m.Name
		if m.Role != "" {
			name += " (" + m.Role + ")"
		}
		fmt.Fprintf(&b, "- %s: %s, %d done, %d in progress, %s %d%%\n",
			name, plural(m.TaskCount, "task"), m.Completed, m.InProgress, Bar(m.Progress), m.Progress)
	}

	b.WriteString("\n## By priority\n")
	for _, p := range d.Priorities {
		fmt.Fprintf(&b, "- %s: %d total, %d done, %d in progress, %d not started, %d blocked\n",
			p.Priority.Label(), p.Total, p.Completed, p.InProgress, p.NotStarted, p.Blocked)
	}

	b.WriteString("\n## Overdue\n")
	writeDueRows(&b, d.Overdue, "overdue")

	b.WriteString("\n## Due within 3 days\n")
	writeDueRows(&b, d.Urgent, "left")

	b.WriteString("\n## All tasks\n")
	if len(d.AllTasks) == 0 {
		b.WriteString(NoTasks + "\n")
	}
	for _, t := range d.AllTasks {
		due := t.Due.Format(ShortDate)
		if t.DueNote != "" {
			due += " (" + t.DueNote + ")"
		}
		fmt.Fprintf(&b, "- [%s] %s: %s, %d%%, due %s, %s priority\n",
			t.Status.Label(), t.Title, t.Assignees, t.Progress, due, strings.ToLower(t.Priority.Label()))
	}

	b.WriteString("\n## Completed\n")
	if len(d.Completed) == 0 {
		b.WriteString(NoCompleted + "\n")
	}
	for _, t := range d.Completed {
		fmt.Fprintf(&b, "- %s: %s, completed %s, due %s\n",
			t.Title, t.Assignees, t.CompletedDate, t.Due.Format(ShortDate))
	}

	return b.String()
}

func writeDueRows(b *strings.Builder, rows []DueRow, suffix string) {
	if len(rows) == 0 {
		b.WriteString(NoTasks + "\n")
		return
	}
	for _, r := range rows {
		fmt.Fprintf(b, "- %s: %s, due %s (%s %s), %d%%, %s priority\n",
			r.Title, r.Assignees, r.Due.Format(ShortDate), plural(r.Days, "day"), suffix,
			r.Progress, strings.ToLower(r.Priority.Label()))
	}
}

func (d *Document) targetLine() string {
	h := d.Header
	if h.TargetDate.IsZero() {
		return NotSet
	}
	if h.DaysRemaining < 0 {
		return fmt.Sprintf("%s (%s past)", h.TargetDate.Format(LongDate), plural(-h.DaysRemaining, "day"))
	}
	return fmt.Sprintf("%s (%s remaining)", h.TargetDate.Format(LongDate), plural(h.DaysRemaining, "day"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
