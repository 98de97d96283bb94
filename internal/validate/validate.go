// Package validate provides input validation helpers for the Crewboard CLI.
package validate

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/model"
)

const (
	// MaxURLLength is the maximum length for a URL.
	MaxURLLength = 2048
	// MaxNameLength is the maximum length for project and member names.
	MaxNameLength = 128
	// MaxTitleLength is the maximum length for a task title.
	MaxTitleLength = 200
	// MaxDescriptionLength is the maximum length for descriptions and notes.
	MaxDescriptionLength = 4096
)

func name(field, value string, limit int) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserError(field+" cannot be empty", "Provide a "+strings.ToLower(field))
	}
	if utf8.RuneCountInString(value) > limit {
		return errors.NewUserErrorWithField(strings.ToLower(field), value,
			field+" too long",
			fmt.Sprintf("%ss must be %d characters or fewer", field, limit))
	}
	return nil
}

// ProjectName validates a project name.
func ProjectName(n string) error {
	return name("Project name", n, MaxNameLength)
}

// MemberName validates a member name.
func MemberName(n string) error {
	return name("Member name", n, MaxNameLength)
}

// TaskTitle validates a task title.
func TaskTitle(title string) error {
	return name("Task title", title, MaxTitleLength)
}

// Description validates a description or note.
func Description(text string) error {
	if utf8.RuneCountInString(text) > MaxDescriptionLength {
		return errors.NewUserError(
			"Description too long",
			"Descriptions must be 4096 characters or fewer")
	}
	return nil
}

// HexColor validates a hex color code.
func HexColor(color string) error {
	if color == "" {
		return nil // Empty is allowed (default color)
	}
	if !model.ValidateColor(color) {
		return errors.NewUserErrorFrom(errors.ErrInvalidColor, "color", color)
	}
	return nil
}

// NewTask checks the creation contract: a title and at least one assignee,
// with dates that are set.
func NewTask(t *model.Task) error {
	if err := TaskTitle(t.Title); err != nil {
		return err
	}
	if err := Description(t.Description); err != nil {
		return err
	}
	if len(t.AssigneeIDs) == 0 {
		return errors.NewUserErrorFrom(errors.ErrNoAssignee, "assignee", "")
	}
	if t.StartDate.IsZero() || t.DueDate.IsZero() {
		return errors.NewUserErrorFrom(errors.ErrInvalidDate, "date", "")
	}
	return nil
}

// TaskWarnings lists soft problems with a task that are reported but not
// rejected: due before start, unknown assignees and categories outside the
// project's list.
func TaskWarnings(p *model.Project, t *model.Task) []string {
	var warnings []string
	if !t.StartDate.IsZero() && !t.DueDate.IsZero() && t.DueDate.Before(t.StartDate) {
		warnings = append(warnings, fmt.Sprintf("due date %s is before start date %s", t.DueDate, t.StartDate))
	}
	for _, id := range t.AssigneeIDs {
		if _, ok := p.FindMember(id); !ok {
			warnings = append(warnings, fmt.Sprintf("assignee %s is not a project member", id))
		}
	}
	if t.Category != "" && !slices.Contains(p.Categories, t.Category) {
		warnings = append(warnings, fmt.Sprintf("category %q is not in the project's list (%s)",
			t.Category, strings.Join(p.Categories, ", ")))
	}
	if t.Status == model.StatusCompleted && t.CompletedDate == nil {
		warnings = append(warnings, "completed task has no completed date")
	}
	return warnings
}

// WebhookName validates a webhook name.
func WebhookName(n string) error {
	if !model.IsValidWebhookName(n) {
		return errors.NewUserErrorWithField("name", n,
			"Invalid webhook name",
			"Names may contain letters, numbers, dashes and underscores")
	}
	return nil
}

// URL validates a URL for use as a webhook endpoint.
func URL(rawURL string) error {
	if rawURL == "" {
		return errors.NewUserError("URL cannot be empty", "Provide a valid URL")
	}
	if len(rawURL) > MaxURLLength {
		return errors.NewUserError("URL too long", "URLs must be 2048 characters or fewer")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.NewUserErrorFrom(errors.ErrInvalidURL, "url", rawURL)
	}

	// Check scheme
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL scheme",
			"URLs must use https:// (or http:// for localhost)")
	}

	// Check hostname exists
	hostname := parsed.Hostname()
	if hostname == "" {
		return errors.NewUserErrorWithField("url", rawURL,
			"Invalid URL: missing hostname",
			"Provide a valid URL like https://example.com/webhook")
	}

	isLocalhost := hostname == "localhost" || hostname == "127.0.0.1" || hostname == "::1"

	// Require HTTPS for non-localhost
	if parsed.Scheme == "http" && !isLocalhost {
		return errors.NewUserErrorWithField("url", rawURL,
			"HTTP not allowed for external URLs",
			"Use https:// for security. HTTP is only allowed for localhost.")
	}

	// Check for internal IPs (SSRF protection)
	if !isLocalhost {
		if err := checkInternalIP(hostname); err != nil {
			return err
		}
	}

	return nil
}

// checkInternalIP rejects literal internal IPs. Hostnames are not resolved.
func checkInternalIP(hostname string) error {
	if ip := net.ParseIP(hostname); ip != nil && isInternalIP(ip) {
		return errors.NewUserErrorWithField("url", hostname,
			"Internal IP addresses not allowed",
			"Webhook URLs must point to external services")
	}
	return nil
}

var privateRanges = func() []*net.IPNet {
	cidrs := []string{
		"10.0.0.0/8",     // RFC 1918
		"172.16.0.0/12",  // RFC 1918
		"192.168.0.0/16", // RFC 1918
		"127.0.0.0/8",    // Loopback
		"169.254.0.0/16", // Link-local
		"fc00::/7",       // IPv6 private
		"fe80::/10",      // IPv6 link-local
		"::1/128",        // IPv6 loopback
	}
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err == nil {
			nets = append(nets, network)
		}
	}
	return nets
}()

// isInternalIP checks if an IP is in a private/internal range.
func isInternalIP(ip net.IP) bool {
	for _, network := range privateRanges {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserError(
			field+" cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}

// InRange validates that an integer is within a range.
func InRange(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return errors.NewUserErrorWithField(field, fmt.Sprint(value),
			"Value out of range",
			fmt.Sprintf("Must be between %d and %d", lo, hi))
	}
	return nil
}
