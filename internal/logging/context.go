package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	commandKey
)

// GenerateRequestID creates a short random ID tying together the log lines
// of one command invocation.
func GenerateRequestID() string {
	return uuid.NewString()[:8]
}

// WithRequestID returns a new context with the given request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// NewCommandContext derives a context carrying a fresh request ID and the
// name of the CLI command being run.
func NewCommandContext(parent context.Context, command string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	ctx := WithRequestID(parent, GenerateRequestID())
	return context.WithValue(ctx, commandKey, command)
}

// RequestIDFromContext extracts the request ID from the context.
// Returns empty string if no request ID is set.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// CommandFromContext returns the command name stored by NewCommandContext.
func CommandFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if cmd, ok := ctx.Value(commandKey).(string); ok {
		return cmd
	}
	return ""
}

// LoggerFromContext returns the default logger annotated with the request
// ID and command found in ctx.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := Logger()
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		logger = logger.With(KeyRequestID, requestID)
	}
	if cmd := CommandFromContext(ctx); cmd != "" {
		logger = logger.With(KeyCommand, cmd)
	}
	return logger
}
