package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
	"github.com/manav03panchal/crewboard/internal/output"
	"github.com/manav03panchal/crewboard/internal/timeline"
)

// Loader returns the current project. A nil project with a nil error means
// none has been set up yet.
type Loader func() (*model.Project, error)

// View selects what the dashboard body shows.
type View int

const (
	ViewOverview View = iota
	ViewTimeline
)

func (v View) String() string {
	if v == ViewTimeline {
		return "Timeline"
	}
	return "Overview"
}

// tickMsg is sent when the refresh timer fires.
type tickMsg time.Time

// loadedMsg carries the result of a Loader call.
type loadedMsg struct {
	project *model.Project
	err     error
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	load Loader
	now  func() time.Time

	project  *model.Project
	snapshot metrics.Snapshot

	view View
	keys keyMap
	help help.Model

	// UI state
	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	refreshInterval time.Duration
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Load            Loader
	Now             func() time.Time
	RefreshInterval time.Duration
	View            View
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = 30 * time.Second
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &DashboardModel{
		load:            config.Load,
		now:             config.Now,
		view:            config.View,
		keys:            defaultKeyMap(),
		help:            help.New(),
		refreshInterval: config.RefreshInterval,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.loadCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && time.Time(msg).After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, tea.Batch(m.tickCmd(), m.loadCmd())

	case loadedMsg:
		m.apply(msg)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		if m.view == ViewOverview {
			m.view = ViewTimeline
		} else {
			m.view = ViewOverview
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.setMessage("Refreshed", 2*time.Second)
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m *DashboardModel) apply(msg loadedMsg) {
	if msg.err != nil {
		m.err = msg.err
		return
	}
	m.err = nil
	m.project = msg.project
	if m.project != nil {
		m.snapshot = metrics.Compute(m.project, m.now())
	}
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{m.renderHeader(), m.renderTabs()}

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	switch {
	case m.project == nil:
		sections = append(sections, StyleSubtitle.Render(
			"No project yet. Run 'crewboard project init --default' to create one."))
	case m.view == ViewTimeline:
		sections = append(sections, m.renderTimeline())
	default:
		sections = append(sections, m.renderOverview())
	}

	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the dashboard header.
func (m *DashboardModel) renderHeader() string {
	name := "Crewboard"
	if m.project != nil {
		name = "Crewboard · " + m.project.Name
	}
	title := StyleTitle.Render(name)
	timeStr := StyleSubtitle.Render(m.now().Format("Mon Jan 2, 15:04"))

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", timeStr) + "\n"
}

func (m *DashboardModel) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, v := range []View{ViewOverview, ViewTimeline} {
		style := StyleTab
		if v == m.view {
			style = StyleActiveTab
		}
		tabs = append(tabs, style.Render(v.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *DashboardModel) renderOverview() string {
	s := m.snapshot
	boxWidth := max(m.width-4, 20)

	var summary strings.Builder
	summary.WriteString(StyleHeading.Render("Target") + "  ")
	if s.TargetDate.IsZero() {
		summary.WriteString(StyleSubtitle.Render("not set"))
	} else {
		summary.WriteString(fmt.Sprintf("%s (%s)", s.TargetDate, output.DueNote(s.DaysRemaining)))
	}
	summary.WriteString("\n")
	summary.WriteString(fmt.Sprintf("%s  %s  %s\n",
		StyleHeading.Render("Progress"),
		ProgressBar(s.OverallProgress, 20),
		StyleValue.Render(fmt.Sprintf("%d%%", s.OverallProgress))))
	summary.WriteString(fmt.Sprintf("%s  %d/%d completed  ·  %d members",
		StyleHeading.Render("Tasks"),
		s.Status.Count(model.StatusCompleted), s.TotalTasks, s.MemberCount))

	statuses := make([]string, 0, 4)
	for _, st := range model.AllStatuses() {
		color := output.StatusColors[st]
		statuses = append(statuses, lipgloss.NewStyle().Foreground(color).
			Render(fmt.Sprintf("%s %d", st.Label(), s.Status.Count(st))))
	}
	summary.WriteString("\n" + strings.Join(statuses, "   "))

	sections := []string{StyleBox.Width(boxWidth).Render(summary.String())}

	if len(s.Members) > 0 {
		var members strings.Builder
		members.WriteString(StyleHeading.Render("Members"))
		for _, ms := range s.Members {
			name := lipgloss.NewStyle().Foreground(lipgloss.Color(ms.Color)).Render(padRight(ms.Name, 16))
			members.WriteString(fmt.Sprintf("\n%s %s %3d%%  %d/%d done",
				name, ProgressBar(ms.Progress, 12), ms.Progress, ms.Completed, ms.TaskCount))
		}
		sections = append(sections, StyleBox.Width(boxWidth).Render(members.String()))
	}

	sections = append(sections, StyleBox.Width(boxWidth).Render(m.renderAttention()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderAttention lists overdue and soon-due work, then what starts next.
func (m *DashboardModel) renderAttention() string {
	s := m.snapshot
	now := m.now()

	var b strings.Builder
	b.WriteString(StyleHeading.Render(fmt.Sprintf("Needs attention (%d)", len(s.Urgent))))
	if len(s.Urgent) == 0 {
		b.WriteString("\n" + StyleSubtitle.Render("Nothing due in the next few days."))
	}
	for _, t := range s.Urgent {
		days := metrics.DaysUntil(t.DueDate, now)
		note := urgencyStyle(metrics.UrgencyBucket(t.DueDate, now)).Render(output.DueNote(days))
		b.WriteString(fmt.Sprintf("\n%s  %s  %s",
			padRight(t.Title, 32), note, StyleSubtitle.Render(assignees(m.project, &t))))
	}

	if len(s.Upcoming) > 0 {
		b.WriteString("\n\n" + StyleHeading.Render("Up next"))
		for _, t := range s.Upcoming {
			b.WriteString(fmt.Sprintf("\n%s  starts %s", padRight(t.Title, 32), t.StartDate))
		}
	}
	return b.String()
}

func (m *DashboardModel) renderTimeline() string {
	layout := timeline.Compute(m.project, m.now())
	return output.RenderTimeline(layout, output.TimelineOptions{
		Width: m.width,
		Color: true,
	})
}

// setMessage sets a temporary message.
func (m *DashboardModel) setMessage(msg string, duration time.Duration) {
	m.message = msg
	m.messageExp = m.now().Add(duration)
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadCmd reloads the project in the background.
func (m *DashboardModel) loadCmd() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		if load == nil {
			return loadedMsg{}
		}
		p, err := load()
		return loadedMsg{project: p, err: err}
	}
}

func assignees(p *model.Project, t *model.Task) string {
	names := p.AssigneeNames(t)
	if len(names) == 0 {
		return "unassigned"
	}
	return strings.Join(names, ", ")
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		r := []rune(s)
		if len(r) > width-1 {
			r = r[:width-1]
		}
		return string(r) + "…"
	}
	return s + strings.Repeat(" ", width-w)
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	p := tea.NewProgram(NewDashboardModel(config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
