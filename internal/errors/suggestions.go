package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	// User input errors
	ErrProjectNotInitialized: "Run 'crewboard project init \"<name>\"' or 'crewboard project init --default' first.",
	ErrProjectExists:         "Use 'crewboard project edit' to change it, or 'crewboard project clear' to start over.",
	ErrMemberNotFound:        "Use 'crewboard member list' to see member IDs.",
	ErrTaskNotFound:          "Use 'crewboard task list' to see task IDs.",
	ErrReportNotFound:        "Use 'crewboard weekly list' to see saved reports.",
	ErrWebhookNotConfigured:  "Save an endpoint with 'crewboard webhook set <url>'.",
	ErrWebhookNotFound:       "Use 'crewboard webhook show' to see saved webhooks.",
	ErrNothingToUndo:         "Only the last edit, delete, import or clear can be undone.",
	ErrInvalidDate:           "Use YYYY-MM-DD or phrases like 'tomorrow', 'next friday', 'in 3 days'.",
	ErrInvalidStatus:         "Status must be one of: not_started, in_progress, completed, blocked.",
	ErrInvalidPriority:       "Priority must be one of: high, medium, low.",
	ErrInvalidProgress:       "Progress is a whole number from 0 to 100.",
	ErrInvalidColor:          "Use hex color format like '#FF5733' or '#00FF00'.",
	ErrInvalidURL:            "Provide a valid URL starting with https:// (or http:// for localhost).",
	ErrInvalidImport:         "Import a file produced by 'crewboard export'.",
	ErrInvalidSchedule:       "Use a five-field cron expression, e.g. '0 10 * * 3' for Wednesdays at 10:00.",
	ErrNoAssignee:            "Pass --assignee <member-id> (repeatable).",

	// System errors
	ErrDiskFull:           "Free up disk space and try again.",
	ErrNetworkUnavailable: "Check your internet connection and send the report again.",
	ErrTimeout:            "The operation took too long. Try again or check your network connection.",
	ErrPermissionDenied:   "Check file permissions in your data directory (~/.local/share/crewboard/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// UserErrors carry the most specific hint
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}

// GetCategorySuggestion returns a generic suggestion based on error category.
func GetCategorySuggestion(err error) string {
	if IsUserError(err) {
		return "Check your input and try again. Use --help for usage information."
	}
	if IsSystemError(err) {
		return "This is a system error. Check system resources and try again."
	}
	if IsRecoverableError(err) {
		return "This error may resolve itself. Try the command again shortly."
	}
	return ""
}

// CommandExamples provides example commands for common errors.
var CommandExamples = map[error][]string{
	ErrProjectNotInitialized: {
		"crewboard project init \"Expo booth\" --target 2025-09-06",
		"crewboard project init --default",
	},
	ErrInvalidDate: {
		"crewboard task add \"Build stage\" --due 2025-08-20",
		"crewboard task edit <id> --due \"next friday\"",
	},
	ErrNoAssignee: {
		"crewboard task add \"Print flyers\" --assignee <member-id> --due \"in 5 days\"",
	},
	ErrWebhookNotConfigured: {
		"crewboard webhook set https://discord.com/api/webhooks/...",
		"crewboard webhook send",
	},
}

// GetExamples returns example commands for an error.
func GetExamples(err error) []string {
	for knownErr, examples := range CommandExamples {
		if errors.Is(err, knownErr) {
			return examples
		}
	}
	return nil
}
