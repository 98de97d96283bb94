// Package report renders a project progress report. Render builds the
// structured document; Text and HTML turn it into plain text for chat
// webhooks and a printable standalone page.
package report

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/validate"
)

// Placeholders used when a value is missing.
const (
	Unassigned    = "unassigned"
	NoDescription = "no description"
	NotSet        = "not set"
	NoTasks       = "no tasks"
	NoCompleted   = "no completed tasks yet"
)

// Date and time layouts used in rendered output.
const (
	LongDate  = "Jan 2, 2006"
	ShortDate = "Jan 2"
	Timestamp = "2006-01-02 15:04"
)

// BarCells is the number of cells in a text progress bar, one per 5%.
const BarCells = 20

// Header is the report heading.
type Header struct {
	ProjectName     string
	Description     string
	TargetDate      model.Date
	DaysRemaining   int
	MemberCount     int
	OverallProgress int
	GeneratedAt     time.Time
}

// Alerts counts the tasks needing attention.
type Alerts struct {
	Overdue int
	Urgent  int
	Blocked int
}

// Any reports whether the alert block has anything to show.
func (a Alerts) Any() bool {
	return a.Overdue > 0 || a.Urgent > 0 || a.Blocked > 0
}

// Stats are the aggregate cards.
type Stats struct {
	Total          int
	Completed      int
	InProgress     int
	Blocked        int
	CompletionRate int
}

// DueRow is a line in the overdue or urgent table. Days is days overdue in
// the former and days remaining in the latter.
type DueRow struct {
	Title     string
	Assignees string
	Due       model.Date
	Days      int
	Progress  int
	Priority  model.Priority
}

// TaskRow is a line in the full task table.
type TaskRow struct {
	Title       string
	Assignees   string
	Status      model.Status
	Progress    int
	Start       model.Date
	Due         model.Date
	Urgency     metrics.Urgency
	// DueNote is "N days overdue" or "N days remaining" for open tasks that
	// are overdue or due soon, empty otherwise.
	DueNote     string
	Priority    model.Priority
	Description string
}

// CompletedRow is a line in the completed task table.
type CompletedRow struct {
	Title         string
	Assignees     string
	CompletedDate string
	Due           model.Date
	Priority      model.Priority
	Description   string
}

// Document is a rendered report.
type Document struct {
	Header     Header
	Alerts     Alerts
	Stats      Stats
	Members    []metrics.MemberStat
	Priorities []metrics.PriorityRow
	Overdue    []DueRow
	Urgent     []DueRow
	AllTasks   []TaskRow
	Completed  []CompletedRow
}

// Render builds the report for p at now. It never fails: a nil or empty
// project yields a document with empty tables.
func Render(p *model.Project, now time.Time) *Document {
	if p == nil {
		p = &model.Project{}
	}
	snap := metrics.Compute(p, now)

	doc := &Document{
		Header: Header{
			ProjectName:     p.Name,
			Description:     p.Description,
			TargetDate:      p.TargetDate,
			DaysRemaining:   snap.DaysRemaining,
			MemberCount:     snap.MemberCount,
			OverallProgress: snap.OverallProgress,
			GeneratedAt:     now,
		},
		Alerts: Alerts{
			Overdue: len(snap.Overdue),
			Urgent:  len(snap.Urgent),
			Blocked: snap.Status.Blocked,
		},
		Stats: Stats{
			Total:          snap.TotalTasks,
			Completed:      snap.Status.Completed,
			InProgress:     snap.Status.InProgress,
			Blocked:        snap.Status.Blocked,
			CompletionRate: snap.CompletionRate,
		},
		Members:    snap.Members,
		Priorities: snap.PriorityMatrix,
		Overdue:    []DueRow{},
		Urgent:     []DueRow{},
		AllTasks:   []TaskRow{},
		Completed:  []CompletedRow{},
	}

	for i := range snap.Overdue {
		t := &snap.Overdue[i]
		doc.Overdue = append(doc.Overdue, dueRow(p, t, metrics.DaysOverdue(t.DueDate, now)))
	}
	for i := range snap.Urgent {
		t := &snap.Urgent[i]
		doc.Urgent = append(doc.Urgent, dueRow(p, t, metrics.DaysUntil(t.DueDate, now)))
	}

	for _, t := range byStatusThenDue(p.Tasks) {
		doc.AllTasks = append(doc.AllTasks, taskRow(p, &t, now))
	}

	for i := range p.Tasks {
		t := &p.Tasks[i]
		if !t.IsCompleted() {
			continue
		}
		row := CompletedRow{
			Title:         t.Title,
			Assignees:     assignees(p, t),
			CompletedDate: NotSet,
			Due:           t.DueDate,
			Priority:      t.Priority,
			Description:   describe(t),
		}
		if t.CompletedDate != nil && !t.CompletedDate.IsZero() {
			row.CompletedDate = t.CompletedDate.Format(ShortDate)
		}
		doc.Completed = append(doc.Completed, row)
	}

	return doc
}

// byStatusThenDue orders tasks blocked, in progress, not started, completed,
// then by ascending due date.
func byStatusThenDue(tasks []model.Task) []model.Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b model.Task) int {
		if c := cmp.Compare(a.Status.Rank(), b.Status.Rank()); c != 0 {
			return c
		}
		return a.DueDate.Time().Compare(b.DueDate.Time())
	})
	return sorted
}

func dueRow(p *model.Project, t *model.Task, days int) DueRow {
	return DueRow{
		Title:     t.Title,
		Assignees: assignees(p, t),
		Due:       t.DueDate,
		Days:      days,
		Progress:  t.Progress,
		Priority:  t.Priority,
	}
}

func taskRow(p *model.Project, t *model.Task, now time.Time) TaskRow {
	row := TaskRow{
		Title:       t.Title,
		Assignees:   assignees(p, t),
		Status:      t.Status,
		Progress:    t.Progress,
		Start:       t.StartDate,
		Due:         t.DueDate,
		Urgency:     metrics.UrgencyNormal,
		Priority:    t.Priority,
		Description: describe(t),
	}
	if t.IsCompleted() {
		return row
	}
	row.Urgency = metrics.UrgencyBucket(t.DueDate, now)
	days := metrics.DaysUntil(t.DueDate, now)
	switch {
	case days < 0:
		row.DueNote = plural(-days, "day") + " overdue"
	case days <= metrics.UrgentWindowDays:
		row.DueNote = plural(days, "day") + " remaining"
	}
	return row
}

func assignees(p *model.Project, t *model.Task) string {
	names := p.AssigneeNames(t)
	if len(names) == 0 {
		return Unassigned
	}
	return strings.Join(names, ", ")
}

func describe(t *model.Task) string {
	if strings.TrimSpace(t.Description) == "" {
		return NoDescription
	}
	return t.Description
}

// Bar renders progress as BarCells filled and empty squares.
func Bar(progress int) string {
	filled := (max(0, min(progress, 100)) + 2) / 5
	return strings.Repeat("■", filled) + strings.Repeat("□", BarCells-filled)
}

// Filename returns the download name for the HTML report.
func Filename(p *model.Project, now time.Time) string {
	name := ""
	if p != nil {
		name = p.Name
	}
	return validate.SafeFilename(name, "project") + "_report_" + now.Format("20060102_1504") + ".html"
}
