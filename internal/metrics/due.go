package metrics

import (
	"math"
	"time"

	"github.com/manav03panchal/crewboard/internal/model"
)

// UrgentWindowDays is the inclusive number of days before a due date at which
// an open task counts as urgent.
const UrgentWindowDays = 3

const day = 24 * time.Hour

// DaysUntil returns the whole days from now until local midnight of due,
// rounded up. Twelve hours remaining counts as one day; a date already passed
// yields zero or a negative number.
func DaysUntil(due model.Date, now time.Time) int {
	delta := due.In(now.Location()).Sub(now)
	return int(math.Ceil(float64(delta) / float64(day)))
}

// DaysOverdue returns the whole days since local midnight of due, rounded up.
func DaysOverdue(due model.Date, now time.Time) int {
	delta := now.Sub(due.In(now.Location()))
	return int(math.Ceil(float64(delta) / float64(day)))
}

// IsOverdue reports whether t is open and its due date lies strictly before now.
func IsOverdue(t *model.Task, now time.Time) bool {
	return !t.IsCompleted() && t.DueDate.In(now.Location()).Before(now)
}

// IsUrgent reports whether t is open and due within UrgentWindowDays.
// Tasks already past due also satisfy this.
func IsUrgent(t *model.Task, now time.Time) bool {
	return !t.IsCompleted() && DaysUntil(t.DueDate, now) <= UrgentWindowDays
}

// OverdueTasks returns the overdue tasks in input order.
func OverdueTasks(tasks []model.Task, now time.Time) []model.Task {
	out := []model.Task{}
	for i := range tasks {
		if IsOverdue(&tasks[i], now) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// UrgentTasks returns the urgent tasks in input order. Overdue tasks are
// included, so a task may appear in both this set and OverdueTasks.
func UrgentTasks(tasks []model.Task, now time.Time) []model.Task {
	out := []model.Task{}
	for i := range tasks {
		if IsUrgent(&tasks[i], now) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// Urgency is the due-date color bucket.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyWarning
	UrgencyCritical
	UrgencyOverdue
)

// AllUrgencies returns every urgency bucket, least urgent first.
func AllUrgencies() []Urgency {
	return []Urgency{UrgencyNormal, UrgencyWarning, UrgencyCritical, UrgencyOverdue}
}

// String returns the bucket name.
func (u Urgency) String() string {
	switch u {
	case UrgencyNormal:
		return "normal"
	case UrgencyWarning:
		return "warning"
	case UrgencyCritical:
		return "critical"
	case UrgencyOverdue:
		return "overdue"
	}
	return "unknown"
}

// UrgencyBucket classifies a due date: overdue below zero days, critical at
// 0-1 days, warning at 2-3 days, normal beyond.
func UrgencyBucket(due model.Date, now time.Time) Urgency {
	days := DaysUntil(due, now)
	switch {
	case days < 0:
		return UrgencyOverdue
	case days <= 1:
		return UrgencyCritical
	case days <= UrgentWindowDays:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}
