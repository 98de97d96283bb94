// Package metrics computes aggregate counts and percentages over a project's
// tasks. Every function here is pure: the caller passes the tasks and the
// current time, nothing is read from storage or the clock.
package metrics

import (
	"math"

	"github.com/manav03panchal/crewboard/internal/model"
)

// StatusCounts holds the number of tasks in each status. All four statuses are
// always present, including zero counts.
type StatusCounts struct {
	NotStarted int `json:"not_started"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Blocked    int `json:"blocked"`
}

// Count returns the count for status s.
func (c StatusCounts) Count(s model.Status) int {
	switch s {
	case model.StatusNotStarted:
		return c.NotStarted
	case model.StatusInProgress:
		return c.InProgress
	case model.StatusCompleted:
		return c.Completed
	case model.StatusBlocked:
		return c.Blocked
	}
	return 0
}

// Total returns the sum of all counts.
func (c StatusCounts) Total() int {
	return c.NotStarted + c.InProgress + c.Completed + c.Blocked
}

func (c *StatusCounts) add(s model.Status) {
	switch s {
	case model.StatusNotStarted:
		c.NotStarted++
	case model.StatusInProgress:
		c.InProgress++
	case model.StatusCompleted:
		c.Completed++
	case model.StatusBlocked:
		c.Blocked++
	}
}

// PriorityCounts holds the number of tasks at each priority.
type PriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Count returns the count for priority p.
func (c PriorityCounts) Count(p model.Priority) int {
	switch p {
	case model.PriorityHigh:
		return c.High
	case model.PriorityMedium:
		return c.Medium
	case model.PriorityLow:
		return c.Low
	}
	return 0
}

// Total returns the sum of all counts.
func (c PriorityCounts) Total() int {
	return c.High + c.Medium + c.Low
}

// StatusBreakdown counts tasks per status.
func StatusBreakdown(tasks []model.Task) StatusCounts {
	var c StatusCounts
	for i := range tasks {
		c.add(tasks[i].Status)
	}
	return c
}

// PriorityBreakdown counts tasks per priority.
func PriorityBreakdown(tasks []model.Task) PriorityCounts {
	var c PriorityCounts
	for i := range tasks {
		switch tasks[i].Priority {
		case model.PriorityHigh:
			c.High++
		case model.PriorityMedium:
			c.Medium++
		case model.PriorityLow:
			c.Low++
		}
	}
	return c
}

// MemberStat is the per-member row shown on the dashboard and in the report.
type MemberStat struct {
	MemberID   string `json:"member_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Color      string `json:"color"`
	TaskCount  int    `json:"task_count"`
	Completed  int    `json:"completed"`
	InProgress int    `json:"in_progress"`
	// Progress is the rounded mean progress of the member's tasks, 0 when
	// the member has none.
	Progress int `json:"progress"`
}

// MemberProgress returns one row per member, in member order.
func MemberProgress(tasks []model.Task, members []model.Member) []MemberStat {
	stats := make([]MemberStat, 0, len(members))
	for _, m := range members {
		stat := MemberStat{
			MemberID: m.ID,
			Name:     m.Name,
			Role:     m.Role,
			Color:    m.Color,
		}
		sum := 0
		for i := range tasks {
			t := &tasks[i]
			if !t.HasAssignee(m.ID) {
				continue
			}
			stat.TaskCount++
			sum += t.Progress
			switch t.Status {
			case model.StatusCompleted:
				stat.Completed++
			case model.StatusInProgress:
				stat.InProgress++
			}
		}
		stat.Progress = mean(sum, stat.TaskCount)
		stats = append(stats, stat)
	}
	return stats
}

// OverallProgress returns the rounded mean progress of all tasks, 0 when empty.
func OverallProgress(tasks []model.Task) int {
	sum := 0
	for i := range tasks {
		sum += tasks[i].Progress
	}
	return mean(sum, len(tasks))
}

// CompletionRate returns the rounded percentage of completed tasks, 0 when empty.
func CompletionRate(tasks []model.Task) int {
	completed := StatusBreakdown(tasks).Completed
	return mean(completed*100, len(tasks))
}

// PriorityRow is one line of the priority by status table.
type PriorityRow struct {
	Priority   model.Priority `json:"priority"`
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	InProgress int            `json:"in_progress"`
	NotStarted int            `json:"not_started"`
	Blocked    int            `json:"blocked"`
}

// PriorityStatusMatrix returns a row per priority, high first.
func PriorityStatusMatrix(tasks []model.Task) []PriorityRow {
	priorities := model.AllPriorities()
	rows := make([]PriorityRow, 0, len(priorities))
	for _, p := range priorities {
		var c StatusCounts
		for i := range tasks {
			if tasks[i].Priority == p {
				c.add(tasks[i].Status)
			}
		}
		rows = append(rows, PriorityRow{
			Priority:   p,
			Total:      c.Total(),
			Completed:  c.Completed,
			InProgress: c.InProgress,
			NotStarted: c.NotStarted,
			Blocked:    c.Blocked,
		})
	}
	return rows
}

func mean(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
