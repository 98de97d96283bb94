package validate

import (
	"strings"
	"unicode"
)

// SanitizeName trims a name and drops control characters.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)

	var sb strings.Builder
	for _, r := range name {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// SanitizeNote cleans a description or note for storage.
func SanitizeNote(note string) string {
	note = strings.TrimSpace(note)

	// Remove null bytes
	note = strings.ReplaceAll(note, "\x00", "")

	// Normalize line endings
	note = strings.ReplaceAll(note, "\r\n", "\n")
	note = strings.ReplaceAll(note, "\r", "\n")

	return StripControlChars(note)
}

// StripControlChars removes all control characters except newlines and tabs.
func StripControlChars(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeList cleans each entry of a list and drops the empty ones.
func SanitizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = SanitizeName(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// SafeFilename converts a string to a safe filename, falling back to
// fallback when nothing usable is left.
func SafeFilename(s, fallback string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		"\x00", "",
	)
	s = replacer.Replace(strings.TrimSpace(s))

	// Trim whitespace and dots from ends
	s = strings.Trim(s, " .")

	if r := []rune(s); len(r) > 200 {
		s = string(r[:200])
	}
	if s == "" {
		return fallback
	}
	return s
}
