package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/crewboard/internal/model"
)

// Seed is the initial content of a new project. Task assignees refer to
// members by name; Build resolves them to generated IDs.
type Seed struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	TargetDate  model.Date   `yaml:"target_date"`
	Categories  []string     `yaml:"categories"`
	Members     []SeedMember `yaml:"members"`
	Tasks       []SeedTask   `yaml:"tasks"`
}

// SeedMember is a member entry in a seed file.
type SeedMember struct {
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
	Color string `yaml:"color"`
}

// SeedTask is a task entry in a seed file.
type SeedTask struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Assignees   []string       `yaml:"assignees"`
	Status      model.Status   `yaml:"status"`
	Priority    model.Priority `yaml:"priority"`
	Progress    int            `yaml:"progress"`
	Start       model.Date     `yaml:"start"`
	Due         model.Date     `yaml:"due"`
	Category    string         `yaml:"category"`
}

// DefaultSeed returns the sample project offered on first run.
func DefaultSeed() Seed {
	return Seed{
		Name:        "Neosphere Exhibition",
		Description: "An exhibition booth where visitors experience a world alive with AI through the mood of a summer festival",
		TargetDate:  model.NewDate(2025, 9, 6),
		Categories:  []string{"2D/3D Development", "AI Setup", "Visual", "System", "Other"},
		Members: []SeedMember{
			{Name: "Oboroge", Role: "AI Art System", Color: "#FF6B6B"},
			{Name: "Oshika Niku", Role: "Management", Color: "#4ECDC4"},
			{Name: "Kafy", Role: "2D/3D Development", Color: "#45B7D1"},
			{Name: "Sasi", Role: "2D/3D Development", Color: "#96CEB4"},
			{Name: "Nachinani", Role: "Visual Design", Color: "#FECA57"},
			{Name: "Yossy Toru", Role: "Visual Design", Color: "#DDA0DD"},
		},
	}
}

// LoadSeed reads a seed from a YAML file.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return ParseSeed(data)
}

// ParseSeed unmarshals and validates a YAML seed.
func ParseSeed(data []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("seed: parse: %w", err)
	}
	if err := s.validate(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

func (s Seed) validate() error {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	names := map[string]bool{}
	for i, m := range s.Members {
		if strings.TrimSpace(m.Name) == "" {
			errs = append(errs, fmt.Sprintf("members[%d].name is required", i))
		}
		if !model.ValidateColor(m.Color) {
			errs = append(errs, fmt.Sprintf("members[%d].color %q is not #RRGGBB", i, m.Color))
		}
		names[m.Name] = true
	}
	for i, t := range s.Tasks {
		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Sprintf("tasks[%d].title is required", i))
		}
		if t.Status != "" && !t.Status.IsValid() {
			errs = append(errs, fmt.Sprintf("tasks[%d].status %q is unknown", i, t.Status))
		}
		if t.Priority != "" && !t.Priority.IsValid() {
			errs = append(errs, fmt.Sprintf("tasks[%d].priority %q is unknown", i, t.Priority))
		}
		if t.Progress < 0 || t.Progress > 100 {
			errs = append(errs, fmt.Sprintf("tasks[%d].progress must be 0-100", i))
		}
		for _, a := range t.Assignees {
			if !names[a] {
				errs = append(errs, fmt.Sprintf("tasks[%d].assignees: no member named %q", i, a))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("seed: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Build creates a project from the seed with fresh IDs.
func (s Seed) Build() *model.Project {
	p := model.NewProject(s.Name, s.Description, s.TargetDate)
	if s.Categories != nil {
		p.Categories = append([]string{}, s.Categories...)
	}

	ids := map[string]string{}
	for _, sm := range s.Members {
		m := model.NewMember(sm.Name, sm.Role, sm.Color)
		ids[sm.Name] = m.ID
		p.AddMember(*m)
	}

	for _, st := range s.Tasks {
		assignees := make([]string, 0, len(st.Assignees))
		for _, name := range st.Assignees {
			assignees = append(assignees, ids[name])
		}
		t := model.NewTask(st.Title, assignees, st.Start, st.Due)
		t.Description = st.Description
		t.Progress = st.Progress
		t.Category = st.Category
		if st.Status != "" {
			t.Status = st.Status
		}
		if st.Priority != "" {
			t.Priority = st.Priority
		}
		p.AddTask(*t)
	}
	return p
}
