package metrics

import (
	"cmp"
	"slices"
	"strings"

	"github.com/manav03panchal/crewboard/internal/model"
)

// DashboardUpcoming is the number of upcoming tasks the dashboard shows.
const DashboardUpcoming = 5

// UpcomingTasks returns up to n open tasks ordered by due date.
func UpcomingTasks(tasks []model.Task, n int) []model.Task {
	open := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		if !tasks[i].IsCompleted() {
			open = append(open, tasks[i])
		}
	}
	slices.SortStableFunc(open, func(a, b model.Task) int {
		return a.DueDate.Time().Compare(b.DueDate.Time())
	})
	if n >= 0 && len(open) > n {
		open = open[:n]
	}
	return open
}

// Filter narrows a task list. Zero fields match everything.
type Filter struct {
	Status   model.Status
	MemberID string
}

// FilterTasks returns the tasks matching f in input order.
func FilterTasks(tasks []model.Task, f Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.MemberID != "" && !t.HasAssignee(f.MemberID) {
			continue
		}
		out = append(out, *t)
	}
	return out
}

// SortField names a task list column.
type SortField string

const (
	SortNone     SortField = ""
	SortTitle    SortField = "title"
	SortAssignee SortField = "assignee"
	SortStatus   SortField = "status"
	SortProgress SortField = "progress"
	SortDueDate  SortField = "dueDate"
	SortPriority SortField = "priority"
)

// SortFields returns the sortable columns.
func SortFields() []SortField {
	return []SortField{SortTitle, SortAssignee, SortStatus, SortProgress, SortDueDate, SortPriority}
}

// IsValid reports whether f is a known column or SortNone.
func (f SortField) IsValid() bool {
	return f == SortNone || slices.Contains(SortFields(), f)
}

// listStatusOrder is the task list's own status order, which differs from the
// report's precedence.
func listStatusOrder(s model.Status) int {
	switch s {
	case model.StatusNotStarted:
		return 0
	case model.StatusInProgress:
		return 1
	case model.StatusCompleted:
		return 2
	case model.StatusBlocked:
		return 3
	}
	return 4
}

// SortTasks returns a sorted copy of tasks. Members resolve assignee names
// for SortAssignee. Ties keep input order; SortNone returns the input order.
func SortTasks(tasks []model.Task, members []model.Member, field SortField, desc bool) []model.Task {
	out := slices.Clone(tasks)
	if field == SortNone {
		return out
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}
	assignees := func(t model.Task) string {
		parts := make([]string, 0, len(t.AssigneeIDs))
		for _, id := range t.AssigneeIDs {
			parts = append(parts, names[id])
		}
		return strings.ToLower(strings.Join(parts, ", "))
	}

	compare := func(a, b model.Task) int {
		switch field {
		case SortTitle:
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		case SortAssignee:
			return strings.Compare(assignees(a), assignees(b))
		case SortStatus:
			return cmp.Compare(listStatusOrder(a.Status), listStatusOrder(b.Status))
		case SortProgress:
			return cmp.Compare(a.Progress, b.Progress)
		case SortDueDate:
			return a.DueDate.Time().Compare(b.DueDate.Time())
		case SortPriority:
			return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
		}
		return 0
	}

	slices.SortStableFunc(out, func(a, b model.Task) int {
		if desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}
