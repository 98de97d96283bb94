package metrics

import (
	"time"

	"github.com/manav03panchal/crewboard/internal/model"
)

// Snapshot is everything the dashboard and the stats command show, computed
// in one pass from a project.
type Snapshot struct {
	ProjectName     string         `json:"project_name"`
	TargetDate      model.Date     `json:"target_date"`
	DaysRemaining   int            `json:"days_remaining"`
	MemberCount     int            `json:"member_count"`
	TotalTasks      int            `json:"total_tasks"`
	Status          StatusCounts   `json:"status"`
	Priority        PriorityCounts `json:"priority"`
	OverallProgress int            `json:"overall_progress"`
	CompletionRate  int            `json:"completion_rate"`
	Members         []MemberStat   `json:"members"`
	PriorityMatrix  []PriorityRow  `json:"priority_matrix"`
	Overdue         []model.Task   `json:"overdue"`
	Urgent          []model.Task   `json:"urgent"`
	Upcoming        []model.Task   `json:"upcoming"`
	GeneratedAt     time.Time      `json:"generated_at"`
}

// Compute builds a Snapshot of p at now. A nil project yields an empty snapshot.
func Compute(p *model.Project, now time.Time) Snapshot {
	if p == nil {
		p = &model.Project{}
	}
	s := Snapshot{
		ProjectName:     p.Name,
		TargetDate:      p.TargetDate,
		MemberCount:     len(p.Members),
		TotalTasks:      len(p.Tasks),
		Status:          StatusBreakdown(p.Tasks),
		Priority:        PriorityBreakdown(p.Tasks),
		OverallProgress: OverallProgress(p.Tasks),
		CompletionRate:  CompletionRate(p.Tasks),
		Members:         MemberProgress(p.Tasks, p.Members),
		PriorityMatrix:  PriorityStatusMatrix(p.Tasks),
		Overdue:         OverdueTasks(p.Tasks, now),
		Urgent:          UrgentTasks(p.Tasks, now),
		Upcoming:        UpcomingTasks(p.Tasks, DashboardUpcoming),
		GeneratedAt:     now,
	}
	if !p.TargetDate.IsZero() {
		s.DaysRemaining = DaysUntil(p.TargetDate, now)
	}
	return s
}
