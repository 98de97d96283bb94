// Package timeline lays out a project's tasks on a padded calendar-day axis
// for Gantt rendering. Positions are fractions of the axis so any renderer can
// scale them to columns or pixels.
package timeline

import (
	"time"

	"github.com/manav03panchal/crewboard/internal/model"
)

const (
	// PaddingDays is added before the earliest start and after the latest due date.
	PaddingDays = 7
	// StandupWeekday is the weekday that gets a gridline.
	StandupWeekday = time.Wednesday
	// LabelLayout formats marker labels, e.g. "8/6".
	LabelLayout = "1/2"
)

// Bar is the geometry of one task.
type Bar struct {
	TaskID    string         `json:"task_id"`
	Title     string         `json:"title"`
	Category  string         `json:"category"`
	Status    model.Status   `json:"status"`
	Priority  model.Priority `json:"priority"`
	Progress  int            `json:"progress"`
	Assignees []string       `json:"assignees"`
	Start     model.Date     `json:"start"`
	Due       model.Date     `json:"due"`

	OffsetDays   int `json:"offset_days"`
	DurationDays int `json:"duration_days"`

	Left  float64 `json:"left"`
	Width float64 `json:"width"`
	// ProgressWidth is the filled part of the bar, left-aligned with it.
	ProgressWidth float64 `json:"progress_width"`
}

// Marker is a labeled position on the axis.
type Marker struct {
	Date       model.Date `json:"date"`
	OffsetDays int        `json:"offset_days"`
	Position   float64    `json:"position"`
	Label      string     `json:"label"`
}

// InRange reports whether the marker falls on the axis.
func (m Marker) InRange() bool {
	return m.Position >= 0 && m.Position < 1
}

// Group is the bars sharing one category value.
type Group struct {
	Category string `json:"category"`
	Bars     []Bar  `json:"bars"`
}

// Layout is the computed chart.
type Layout struct {
	AxisStart   model.Date `json:"axis_start"`
	AxisEnd     model.Date `json:"axis_end"`
	TotalDays   int        `json:"total_days"`
	Bars        []Bar      `json:"bars"`
	WeekMarkers []Marker   `json:"week_markers"`
	// Headers are the date labels: standup days, the first of each month
	// and the first axis day.
	Headers []Marker `json:"headers"`
	Today   Marker   `json:"today"`
	Groups  []Group  `json:"groups"`
}

// Compute lays out p's tasks. It returns nil when there are no tasks, in
// which case the caller shows a placeholder.
func Compute(p *model.Project, now time.Time) *Layout {
	if p == nil || len(p.Tasks) == 0 {
		return nil
	}

	minStart, maxDue := p.Tasks[0].StartDate, p.Tasks[0].DueDate
	for _, t := range p.Tasks[1:] {
		if t.StartDate.Before(minStart) {
			minStart = t.StartDate
		}
		if t.DueDate.After(maxDue) {
			maxDue = t.DueDate
		}
	}

	l := &Layout{
		AxisStart: minStart.AddDays(-PaddingDays),
		AxisEnd:   maxDue.AddDays(PaddingDays),
	}
	l.TotalDays = model.DaysBetween(l.AxisStart, l.AxisEnd) + 1

	for i := 0; i < l.TotalDays; i++ {
		d := l.AxisStart.AddDays(i)
		standup := d.Weekday() == StandupWeekday
		if standup {
			l.WeekMarkers = append(l.WeekMarkers, l.marker(d))
		}
		if standup || d.Day() == 1 || i == 0 {
			l.Headers = append(l.Headers, l.marker(d))
		}
	}

	l.Bars = make([]Bar, 0, len(p.Tasks))
	index := map[string]int{}
	for i := range p.Tasks {
		bar := l.bar(p, &p.Tasks[i])
		l.Bars = append(l.Bars, bar)

		g, ok := index[bar.Category]
		if !ok {
			g = len(l.Groups)
			index[bar.Category] = g
			l.Groups = append(l.Groups, Group{Category: bar.Category})
		}
		l.Groups[g].Bars = append(l.Groups[g].Bars, bar)
	}

	l.Today = l.marker(model.DateOf(now))
	return l
}

func (l *Layout) marker(d model.Date) Marker {
	offset := model.DaysBetween(l.AxisStart, d)
	return Marker{
		Date:       d,
		OffsetDays: offset,
		Position:   l.fraction(offset),
		Label:      d.Format(LabelLayout),
	}
}

func (l *Layout) bar(p *model.Project, t *model.Task) Bar {
	offset := model.DaysBetween(l.AxisStart, t.StartDate)
	duration := model.DaysBetween(t.StartDate, t.DueDate) + 1
	width := l.fraction(duration)
	return Bar{
		TaskID:        t.ID,
		Title:         t.Title,
		Category:      t.Category,
		Status:        t.Status,
		Priority:      t.Priority,
		Progress:      t.Progress,
		Assignees:     p.AssigneeNames(t),
		Start:         t.StartDate,
		Due:           t.DueDate,
		OffsetDays:    offset,
		DurationDays:  duration,
		Left:          l.fraction(offset),
		Width:         width,
		ProgressWidth: width * float64(t.Progress) / 100,
	}
}

func (l *Layout) fraction(days int) float64 {
	return float64(days) / float64(l.TotalDays)
}
