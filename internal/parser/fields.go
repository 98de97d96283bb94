package parser

import (
	"strconv"
	"strings"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/metrics"
	"github.com/manav03panchal/crewboard/internal/model"
)

var statusAliases = map[string]model.Status{
	"not_started": model.StatusNotStarted,
	"notstarted":  model.StatusNotStarted,
	"todo":        model.StatusNotStarted,
	"in_progress": model.StatusInProgress,
	"inprogress":  model.StatusInProgress,
	"wip":         model.StatusInProgress,
	"doing":       model.StatusInProgress,
	"completed":   model.StatusCompleted,
	"complete":    model.StatusCompleted,
	"done":        model.StatusCompleted,
	"blocked":     model.StatusBlocked,
}

var priorityAliases = map[string]model.Priority{
	"high":   model.PriorityHigh,
	"h":      model.PriorityHigh,
	"medium": model.PriorityMedium,
	"med":    model.PriorityMedium,
	"m":      model.PriorityMedium,
	"low":    model.PriorityLow,
	"l":      model.PriorityLow,
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// ParseStatus parses a task status. Hyphens, spaces and a few common
// aliases are accepted.
func ParseStatus(input string) (model.Status, error) {
	if s, ok := statusAliases[normalize(input)]; ok {
		return s, nil
	}
	return "", errors.NewUserErrorFrom(errors.ErrInvalidStatus, "status", input)
}

// ParsePriority parses a task priority.
func ParsePriority(input string) (model.Priority, error) {
	if p, ok := priorityAliases[normalize(input)]; ok {
		return p, nil
	}
	return "", errors.NewUserErrorFrom(errors.ErrInvalidPriority, "priority", input)
}

// ParseProgress parses a progress percentage such as "40" or "40%".
// Out-of-range numbers are clamped to 0-100.
func ParseProgress(input string) (int, error) {
	s := strings.TrimSuffix(strings.TrimSpace(input), "%")
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.NewUserErrorFrom(errors.ErrInvalidProgress, "progress", input)
	}
	return max(0, min(n, 100)), nil
}

// ParseSortField parses a task list sort key. Empty input means no sort.
func ParseSortField(input string) (metrics.SortField, error) {
	f := metrics.SortField(strings.TrimSpace(input))
	if f.IsValid() {
		return f, nil
	}
	names := make([]string, 0, len(metrics.SortFields()))
	for _, sf := range metrics.SortFields() {
		names = append(names, string(sf))
	}
	return "", errors.NewUserErrorWithField("sort", input, "unknown sort field",
		"Sort by one of: "+strings.Join(names, ", "))
}

// ParseList splits comma-separated values from one or more flag values,
// trimming blanks and dropping duplicates while keeping order.
func ParseList(values ...string) []string {
	var out []string
	seen := map[string]bool{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			out = append(out, part)
		}
	}
	return out
}
