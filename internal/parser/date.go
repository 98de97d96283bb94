package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/crewboard/internal/model"
)

// relativeRegex matches day offsets like "+3d", "-1w" or "+10".
var relativeRegex = regexp.MustCompile(`^([+-]\d+)\s*([dw]?)$`)

// ParseDate parses a calendar date relative to now. It accepts YYYY-MM-DD,
// today/tomorrow/yesterday, day or week offsets, and natural language
// handled by go-dateparser. Empty input yields the zero date.
func ParseDate(field, input string, now time.Time) (model.Date, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return model.Date{}, nil
	}

	if d, err := model.ParseDate(input); err == nil {
		return d, nil
	}

	today := model.DateOf(now)
	switch strings.ToLower(input) {
	case "today", "now":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	if match := relativeRegex.FindStringSubmatch(strings.ToLower(input)); match != nil {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return model.Date{}, NewDateError(field, input)
		}
		if match[2] == "w" {
			n *= 7
		}
		return today.AddDays(n), nil
	}

	// Use go-dateparser for natural language parsing
	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return model.Date{}, NewDateError(field, input)
	}

	return model.DateOf(result.Time), nil
}

// ParseDateRange parses a start and due date and checks their order.
// A missing start defaults to today; a missing due date is an error.
func ParseDateRange(start, due string, now time.Time) (model.Date, model.Date, error) {
	s, err := ParseDate("start date", start, now)
	if err != nil {
		return model.Date{}, model.Date{}, err
	}
	if s.IsZero() {
		s = model.DateOf(now)
	}
	d, err := ParseDate("due date", due, now)
	if err != nil {
		return model.Date{}, model.Date{}, err
	}
	if d.IsZero() {
		return model.Date{}, model.Date{}, NewDateError("due date", due)
	}
	if d.Before(s) {
		pe := NewParseError("due date", due, "due date is before the start date "+s.String())
		pe.Suggestion = "Pick a due date on or after the start date."
		return model.Date{}, model.Date{}, pe
	}
	return s, d, nil
}
