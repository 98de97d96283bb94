package model

// Status is the lifecycle state of a task.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusBlocked    Status = "blocked"
)

// AllStatuses returns every status in display order.
func AllStatuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked}
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked:
		return true
	}
	return false
}

// Label returns the human-readable status name.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusBlocked:
		return "Blocked"
	}
	return string(s)
}

// Rank orders statuses by how much attention they need:
// blocked, in progress, not started, completed. Unknown values sort last.
func (s Status) Rank() int {
	switch s {
	case StatusBlocked:
		return 0
	case StatusInProgress:
		return 1
	case StatusNotStarted:
		return 2
	case StatusCompleted:
		return 3
	}
	return 4
}

// Priority is the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities returns every priority from highest to lowest.
func AllPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label returns the human-readable priority name.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return string(p)
}

// Rank orders priorities high, medium, low. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Task is a unit of work tracked on the project.
//
// Status and Progress are independent: reaching 100% does not complete a task
// and completing a task does not touch its progress.
type Task struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	AssigneeIDs   []string `json:"assigneeIds"`
	Status        Status   `json:"status"`
	Priority      Priority `json:"priority"`
	Progress      int      `json:"progress"`
	StartDate     Date     `json:"startDate"`
	DueDate       Date     `json:"dueDate"`
	CompletedDate *Date    `json:"completedDate,omitempty"`
	Category      string   `json:"category"`
	Dependencies  []string `json:"dependencies,omitempty"`
}

// IsCompleted reports whether the task is in the completed state.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// HasAssignee reports whether memberID is among the task's assignees.
func (t *Task) HasAssignee(memberID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// NewTask creates a not-started, medium priority task with a fresh ID.
func NewTask(title string, assigneeIDs []string, start, due Date) *Task {
	return &Task{
		ID:          NewID(),
		Title:       title,
		AssigneeIDs: assigneeIDs,
		Status:      StatusNotStarted,
		Priority:    PriorityMedium,
		StartDate:   start,
		DueDate:     due,
	}
}

// TaskPatch holds the fields to change on a task. Nil fields are left as-is.
type TaskPatch struct {
	Title         *string
	Description   *string
	AssigneeIDs   []string
	Status        *Status
	Priority      *Priority
	Progress      *int
	StartDate     *Date
	DueDate       *Date
	CompletedDate *Date
	Category      *string
	Dependencies  []string
}

// Apply copies the set fields of the patch onto t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.AssigneeIDs != nil {
		t.AssigneeIDs = append([]string(nil), p.AssigneeIDs...)
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.CompletedDate != nil {
		d := *p.CompletedDate
		if d.IsZero() {
			t.CompletedDate = nil
		} else {
			t.CompletedDate = &d
		}
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Dependencies != nil {
		t.Dependencies = append([]string(nil), p.Dependencies...)
	}
}
