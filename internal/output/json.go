package output

import (
	"time"

	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ProjectOutput represents a project in JSON output.
type ProjectOutput struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	TargetDate      string   `json:"target_date"`
	DaysRemaining   int      `json:"days_remaining"`
	Categories      []string `json:"categories"`
	MemberCount     int      `json:"member_count"`
	TaskCount       int      `json:"task_count"`
	OverallProgress int      `json:"overall_progress"`
}

// NewProjectOutput creates a ProjectOutput from a Project.
func NewProjectOutput(p *model.Project, snap metrics.Snapshot) *ProjectOutput {
	return &ProjectOutput{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		TargetDate:      p.TargetDate.String(),
		DaysRemaining:   snap.DaysRemaining,
		Categories:      p.Categories,
		MemberCount:     len(p.Members),
		TaskCount:       len(p.Tasks),
		OverallProgress: snap.OverallProgress,
	}
}

// MemberOutput represents a member with its task numbers.
type MemberOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Color     string `json:"color"`
	TaskCount int    `json:"task_count"`
	Completed int    `json:"completed"`
	Progress  int    `json:"progress"`
}

// NewMemberOutputs pairs members with their stats rows. Both slices are in
// member order.
func NewMemberOutputs(members []model.Member, stats []metrics.MemberStat) []*MemberOutput {
	out := make([]*MemberOutput, 0, len(members))
	for i, m := range members {
		mo := &MemberOutput{
			ID:    m.ID,
			Name:  m.Name,
			Role:  m.Role,
			Color: m.Color,
		}
		if i < len(stats) {
			mo.TaskCount = stats[i].TaskCount
			mo.Completed = stats[i].Completed
			mo.Progress = stats[i].Progress
		}
		out = append(out, mo)
	}
	return out
}

// TaskOutput represents a task in JSON output.
type TaskOutput struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	AssigneeIDs   []string `json:"assignee_ids"`
	Assignees     []string `json:"assignees"`
	Status        string   `json:"status"`
	Priority      string   `json:"priority"`
	Progress      int      `json:"progress"`
	StartDate     string   `json:"start_date"`
	DueDate       string   `json:"due_date"`
	CompletedDate string   `json:"completed_date,omitempty"`
	Category      string   `json:"category"`
	Dependencies  []string `json:"dependencies,omitempty"`
	DaysUntilDue  int      `json:"days_until_due"`
	Overdue       bool     `json:"overdue"`
	Urgency       string   `json:"urgency"`
}

// NewTaskOutput creates a TaskOutput from a Task.
func NewTaskOutput(p *model.Project, t *model.Task, now time.Time) *TaskOutput {
	out := &TaskOutput{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		AssigneeIDs:  t.AssigneeIDs,
		Assignees:    p.AssigneeNames(t),
		Status:       string(t.Status),
		Priority:     string(t.Priority),
		Progress:     t.Progress,
		StartDate:    t.StartDate.String(),
		DueDate:      t.DueDate.String(),
		Category:     t.Category,
		Dependencies: t.Dependencies,
		Overdue:      metrics.IsOverdue(t, now),
	}
	if out.AssigneeIDs == nil {
		out.AssigneeIDs = []string{}
	}
	if out.Assignees == nil {
		out.Assignees = []string{}
	}
	if t.CompletedDate != nil {
		out.CompletedDate = t.CompletedDate.String()
	}
	if !t.DueDate.IsZero() {
		out.DaysUntilDue = metrics.DaysUntil(t.DueDate, now)
		out.Urgency = metrics.UrgencyBucket(t.DueDate, now).String()
	}
	return out
}

// NewTaskOutputs converts a task list.
func NewTaskOutputs(p *model.Project, tasks []model.Task, now time.Time) []*TaskOutput {
	out := make([]*TaskOutput, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskOutput(p, &tasks[i], now))
	}
	return out
}

// WebhookOutput represents a saved webhook. The URL is always masked.
type WebhookOutput struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	Template  bool   `json:"has_template"`
	CreatedAt string `json:"created_at"`
	LastUsed  string `json:"last_used,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// NewWebhookOutput creates a WebhookOutput from a Webhook.
func NewWebhookOutput(w *model.Webhook) *WebhookOutput {
	out := &WebhookOutput{
		Name:      w.Name,
		Type:      w.Type,
		URL:       w.MaskedURL(),
		Template:  w.Template != "",
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
		LastError: w.LastError,
	}
	if !w.LastUsed.IsZero() {
		out.LastUsed = w.LastUsed.Format(time.RFC3339)
	}
	return out
}

// SendOutput reports the result of one webhook delivery.
type SendOutput struct {
	Webhook    string `json:"webhook"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	Attempts   int    `json:"attempts"`
	DurationMS int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

// NewSendOutput builds a SendOutput from raw delivery fields.
func NewSendOutput(name string, success bool, status, attempts int, d time.Duration, err error) *SendOutput {
	out := &SendOutput{
		Webhook:    name,
		Success:    success,
		StatusCode: status,
		Attempts:   attempts,
		DurationMS: d.Milliseconds(),
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse is the JSON body for commands that only change state.
type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	ID      string `json:"id,omitempty"`
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message string) error {
	return j.JSON(ErrorResponse{
		Status:  status,
		Error:   errMsg,
		Message: message,
	})
}

// PrintSuccess outputs a state-change confirmation.
func (j *JSONFormatter) PrintSuccess(status, message, id string) error {
	return j.JSON(SuccessResponse{Status: status, Message: message, ID: id})
}

// PrintProject outputs the project summary.
func (j *JSONFormatter) PrintProject(p *model.Project, snap metrics.Snapshot) error {
	return j.JSON(NewProjectOutput(p, snap))
}

// PrintMembers outputs the member list.
func (j *JSONFormatter) PrintMembers(p *model.Project, stats []metrics.MemberStat) error {
	return j.JSON(map[string]any{"members": NewMemberOutputs(p.Members, stats)})
}

// PrintTasks outputs a task list.
func (j *JSONFormatter) PrintTasks(p *model.Project, tasks []model.Task, now time.Time) error {
	return j.JSON(map[string]any{
		"tasks": NewTaskOutputs(p, tasks, now),
		"count": len(tasks),
	})
}

// PrintTask outputs one task.
func (j *JSONFormatter) PrintTask(p *model.Project, t *model.Task, now time.Time) error {
	return j.JSON(NewTaskOutput(p, t, now))
}

// PrintWebhooks outputs saved webhooks.
func (j *JSONFormatter) PrintWebhooks(webhooks []*model.Webhook) error {
	out := make([]*WebhookOutput, 0, len(webhooks))
	for _, w := range webhooks {
		out = append(out, NewWebhookOutput(w))
	}
	return j.JSON(map[string]any{"webhooks": out})
}
