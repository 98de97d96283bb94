package model

import "fmt"

// WeeklyReport is a hand-written weekly status note. It is not linked to
// the computed metrics.
type WeeklyReport struct {
	Key             string   `json:"-"`
	ID              string   `json:"id"`
	Date            Date     `json:"date"`
	ProjectID       string   `json:"projectId"`
	CompletedTasks  []string `json:"completedTasks"`
	InProgressTasks []string `json:"inProgressTasks"`
	BlockedTasks    []string `json:"blockedTasks"`
	NextWeekTasks   []string `json:"nextWeekTasks"`
	Notes           string   `json:"notes"`
}

// SetKey sets the database key for this report.
func (r *WeeklyReport) SetKey(key string) {
	r.Key = key
}

// GetKey returns the database key for this report.
func (r *WeeklyReport) GetKey() string {
	return r.Key
}

// GenerateWeeklyKey generates a database key for a weekly report.
func GenerateWeeklyKey(id string) string {
	return fmt.Sprintf("%s:%s", PrefixWeekly, id)
}

// NewWeeklyReport creates an empty report for the given date.
func NewWeeklyReport(projectID string, date Date) *WeeklyReport {
	id := NewID()
	return &WeeklyReport{
		Key:             GenerateWeeklyKey(id),
		ID:              id,
		Date:            date,
		ProjectID:       projectID,
		CompletedTasks:  []string{},
		InProgressTasks: []string{},
		BlockedTasks:    []string{},
		NextWeekTasks:   []string{},
	}
}

// FromProject fills the task buckets from the project's current task statuses.
// Next-week tasks are the not-started ones.
func (r *WeeklyReport) FromProject(p *Project) {
	r.CompletedTasks = []string{}
	r.InProgressTasks = []string{}
	r.BlockedTasks = []string{}
	r.NextWeekTasks = []string{}
	for _, t := range p.Tasks {
		switch t.Status {
		case StatusCompleted:
			r.CompletedTasks = append(r.CompletedTasks, t.ID)
		case StatusInProgress:
			r.InProgressTasks = append(r.InProgressTasks, t.ID)
		case StatusBlocked:
			r.BlockedTasks = append(r.BlockedTasks, t.ID)
		case StatusNotStarted:
			r.NextWeekTasks = append(r.NextWeekTasks, t.ID)
		}
	}
}
