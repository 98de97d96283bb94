package output

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/manav03panchal/crewboard/internal/timeline"
)

const (
	// DefaultWidth is used when the terminal size is unknown.
	DefaultWidth = 100
	labelWidth   = 28
	minChartCols = 20
)

// TimelineOptions controls RenderTimeline.
type TimelineOptions struct {
	Width int
	Color bool
}

// TerminalWidth returns the width of f when it is a terminal, DefaultWidth otherwise.
func TerminalWidth(f *os.File) int {
	if f != nil {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return DefaultWidth
}

// RenderTimeline draws the Gantt layout as text. Each category gets a header
// row followed by one row per task.
func RenderTimeline(l *timeline.Layout, opts TimelineOptions) string {
	if l == nil {
		return "No tasks to show on the timeline.\n"
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	cols := max(minChartCols, width-labelWidth-1)

	paint := func(color lipgloss.Color, s string) string {
		if !opts.Color {
			return s
		}
		return lipgloss.NewStyle().Foreground(color).Render(s)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth+1))
	b.WriteString(headerRow(l, cols))
	b.WriteString("\n")

	for _, g := range l.Groups {
		name := g.Category
		if name == "" {
			name = "Uncategorized"
		}
		if opts.Color {
			name = lipgloss.NewStyle().Bold(true).Render(name)
		}
		b.WriteString(name)
		b.WriteString("\n")

		for _, bar := range g.Bars {
			b.WriteString(padLabel(bar.Title, labelWidth))
			b.WriteString(" ")
			row := gridRow(l, cols)
			start, length := bar.Span(cols)
			filled := bar.Filled(length)
			for i := 0; i < length; i++ {
				if i < filled {
					row[start+i] = "█"
				} else {
					row[start+i] = "░"
				}
			}
			color := StatusColors[bar.Status]
			b.WriteString(strings.Join(row[:start], ""))
			b.WriteString(paint(color, strings.Join(row[start:start+length], "")))
			b.WriteString(strings.Join(row[start+length:], ""))
			b.WriteString("\n")
		}
	}

	if l.Today.InRange() {
		b.WriteString(strings.Repeat(" ", labelWidth+1))
		col := timeline.Column(l.Today.Position, cols)
		b.WriteString(strings.Repeat(" ", col))
		b.WriteString(paint(colorError, "┃ today "+l.Today.Label))
		b.WriteString("\n")
	}
	return b.String()
}

// headerRow places marker labels at their columns, skipping any that would
// overlap the previous one.
func headerRow(l *timeline.Layout, cols int) string {
	row := []rune(strings.Repeat(" ", cols))
	next := 0
	for _, h := range l.Headers {
		if !h.InRange() {
			continue
		}
		col := timeline.Column(h.Position, cols)
		label := []rune(h.Label)
		if col < next || col+len(label) > cols {
			continue
		}
		copy(row[col:], label)
		next = col + len(label) + 1
	}
	return strings.TrimRight(string(row), " ")
}

// gridRow is an empty chart row with week gridlines and the today line.
func gridRow(l *timeline.Layout, cols int) []string {
	row := make([]string, cols)
	for i := range row {
		row[i] = " "
	}
	for _, m := range l.WeekMarkers {
		if m.InRange() {
			row[timeline.Column(m.Position, cols)] = "┊"
		}
	}
	if l.Today.InRange() {
		row[timeline.Column(l.Today.Position, cols)] = "┃"
	}
	return row
}

func padLabel(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}
