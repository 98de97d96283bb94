package report

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
)

//go:embed templates/report.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"bar":       Bar,
	"plural":    plural,
	"short":     func(d model.Date) string { return d.Format(ShortDate) },
	"long":      func(d model.Date) string { return d.Format(LongDate) },
	"neg":       func(n int) int { return -n },
	"urgency":   func(u metrics.Urgency) string { return u.String() },
	"orDefault": orDefault,
	"noTasks":   func() string { return NoTasks },
	"noneDone":  func() string { return NoCompleted },
	"notSet":    func() string { return NotSet },
	"stamp":     func(d *Document) string { return d.Header.GeneratedAt.Format(Timestamp) },
}

var page = template.Must(template.New("report.html").Funcs(funcs).ParseFS(templateFS, "templates/report.html"))

// WriteHTML writes the report as a self-contained HTML page.
func (d *Document) WriteHTML(w io.Writer) error {
	return page.Execute(w, d)
}

// HTML returns the report as a self-contained HTML page.
func (d *Document) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.WriteHTML(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
