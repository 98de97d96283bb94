package model

// Project is the aggregate root: exactly one project is live at a time.
type Project struct {
	Key         string   `json:"-"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TargetDate  Date     `json:"targetDate"`
	Members     []Member `json:"members"`
	Tasks       []Task   `json:"tasks"`
	// Categories is advisory; task categories are free text.
	Categories []string `json:"categories"`
}

// SetKey sets the database key for this project.
func (p *Project) SetKey(key string) {
	p.Key = key
}

// GetKey returns the database key for this project.
func (p *Project) GetKey() string {
	return p.Key
}

// DefaultCategories are offered when a project is created without its own list.
var DefaultCategories = []string{"Development", "Design", "Management", "Other"}

// NewProject creates an empty project.
func NewProject(name, description string, target Date) *Project {
	return &Project{
		Key:         KeyProject,
		ID:          NewID(),
		Name:        name,
		Description: description,
		TargetDate:  target,
		Members:     []Member{},
		Tasks:       []Task{},
		Categories:  append([]string(nil), DefaultCategories...),
	}
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	if p.Members != nil {
		c.Members = append([]Member{}, p.Members...)
	}
	c.Categories = cloneStrings(p.Categories)
	if p.Tasks != nil {
		c.Tasks = make([]Task, len(p.Tasks))
	}
	for i, t := range p.Tasks {
		t.AssigneeIDs = cloneStrings(t.AssigneeIDs)
		t.Dependencies = cloneStrings(t.Dependencies)
		if t.CompletedDate != nil {
			d := *t.CompletedDate
			t.CompletedDate = &d
		}
		c.Tasks[i] = t
	}
	return &c
}

// cloneStrings copies s, keeping the nil/empty distinction.
func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

// AddMember appends a member.
func (p *Project) AddMember(m Member) {
	p.Members = append(p.Members, m)
}

// UpdateMember applies patch to the member with id. It reports whether the member exists.
func (p *Project) UpdateMember(id string, patch MemberPatch) bool {
	for i := range p.Members {
		if p.Members[i].ID == id {
			patch.Apply(&p.Members[i])
			return true
		}
	}
	return false
}

// DeleteMember removes the member with id. Tasks keep the stale id.
func (p *Project) DeleteMember(id string) bool {
	for i := range p.Members {
		if p.Members[i].ID == id {
			p.Members = append(p.Members[:i], p.Members[i+1:]...)
			return true
		}
	}
	return false
}

// FindMember looks up a member by id. A miss is a normal outcome.
func (p *Project) FindMember(id string) (*Member, bool) {
	for i := range p.Members {
		if p.Members[i].ID == id {
			return &p.Members[i], true
		}
	}
	return nil, false
}

// AddTask appends a task.
func (p *Project) AddTask(t Task) {
	p.Tasks = append(p.Tasks, t)
}

// UpdateTask applies patch to the task with id. It reports whether the task exists.
func (p *Project) UpdateTask(id string, patch TaskPatch) bool {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			patch.Apply(&p.Tasks[i])
			return true
		}
	}
	return false
}

// DeleteTask removes the task with id. Dependencies on it are left dangling.
func (p *Project) DeleteTask(id string) bool {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// FindTask looks up a task by id.
func (p *Project) FindTask(id string) (*Task, bool) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i], true
		}
	}
	return nil, false
}

// TasksByMember returns the tasks assigned to memberID.
func (p *Project) TasksByMember(memberID string) []Task {
	var tasks []Task
	for _, t := range p.Tasks {
		if t.HasAssignee(memberID) {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

// AssigneeNames resolves a task's assignee ids to member names,
// skipping ids that no longer match a member.
func (p *Project) AssigneeNames(t *Task) []string {
	names := make([]string, 0, len(t.AssigneeIDs))
	for _, id := range t.AssigneeIDs {
		if m, ok := p.FindMember(id); ok {
			names = append(names, m.Name)
		}
	}
	return names
}
