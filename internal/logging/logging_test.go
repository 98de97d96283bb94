package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureJSON points the global logger at a buffer for the duration of a test.
func captureJSON(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, JSON: true, Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// =============================================================================
// Config Tests
// =============================================================================

func TestConfigs(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, slog.LevelWarn, cfg.Level)
	assert.False(t, cfg.JSON)

	cfg = DebugConfig()
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.True(t, cfg.JSON)
	assert.True(t, cfg.AddSource)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(" info "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("loud"))
}

func TestInit(t *testing.T) {
	t.Run("json_output", func(t *testing.T) {
		buf := captureJSON(t, slog.LevelInfo)
		Info("saved project", KeyProject, "Expo booth", KeyCount, 3)

		entry := decode(t, buf)
		assert.Equal(t, "saved project", entry["msg"])
		assert.Equal(t, "Expo booth", entry[KeyProject])
		assert.EqualValues(t, 3, entry[KeyCount])
	})

	t.Run("level_filters", func(t *testing.T) {
		buf := captureJSON(t, slog.LevelWarn)
		Info("hidden")
		DebugLog("hidden")
		assert.Empty(t, buf.String())

		Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("debug_flag", func(t *testing.T) {
		captureJSON(t, slog.LevelDebug)
		assert.True(t, Debug)
		Init(DefaultConfig())
		assert.False(t, Debug)
	})
}

// =============================================================================
// Masking Tests
// =============================================================================

func TestMaskingHandler(t *testing.T) {
	url := "https://discord.com/api/webhooks/123456789/very-secret-token"

	t.Run("url_attr", func(t *testing.T) {
		buf := captureJSON(t, slog.LevelInfo)
		Info("sending report", KeyURL, url)
		entry := decode(t, buf)
		assert.Equal(t, "https://discord.com/api/webhoo***", entry[KeyURL])
		assert.NotContains(t, buf.String(), "very-secret-token")
	})

	t.Run("url_in_message", func(t *testing.T) {
		buf := captureJSON(t, slog.LevelInfo)
		Error("post to " + url + " failed")
		assert.NotContains(t, buf.String(), "very-secret-token")
	})

	t.Run("sensitive_key", func(t *testing.T) {
		buf := captureJSON(t, slog.LevelInfo)
		Info("auth", "api_token", "abcdef1234567890")
		entry := decode(t, buf)
		assert.Equal(t, "********", entry["api_token"])
	})

	t.Run("with_attrs_and_groups", func(t *testing.T) {
		buf := captureJSON(t, slog.LevelInfo)
		With(KeyURL, url).Info("x", slog.Group("hook", slog.String("url", url)))
		assert.NotContains(t, buf.String(), "very-secret-token")
	})
}

func TestMaskURL(t *testing.T) {
	assert.Equal(t, "https://example.com/x", MaskURL("https://example.com/x"))
	assert.Equal(t, "https://hooks.slack.com/servic***", MaskURL("https://hooks.slack.com/services/T000/B000/XXXX"))
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "no urls here", MaskString("no urls here"))
	assert.Equal(t, "see http://localhost:8080/hook/long/path/value", MaskString("see http://localhost:8080/hook/long/path/value"))
	assert.Equal(t, "to https://hooks.slack.com/servic*** now", MaskString("to https://hooks.slack.com/services/T000/B000/XXXX now"))
}

func TestIsSensitiveField(t *testing.T) {
	assert.True(t, IsSensitiveField("Authorization"))
	assert.True(t, IsSensitiveField("webhook_token"))
	assert.False(t, IsSensitiveField("project"))
	assert.Equal(t, "", MaskValue(""))
	assert.Equal(t, "***", MaskValue("abc"))
}

// =============================================================================
// Context Tests
// =============================================================================

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}

func TestNewCommandContext(t *testing.T) {
	ctx := NewCommandContext(context.Background(), "report")
	assert.Len(t, RequestIDFromContext(ctx), 8)
	assert.Equal(t, "report", CommandFromContext(ctx))

	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, CommandFromContext(context.Background()))
}

func TestLoggerFromContext(t *testing.T) {
	buf := captureJSON(t, slog.LevelInfo)
	ctx := WithRequestID(context.Background(), "abc12345")
	ctx = context.WithValue(ctx, commandKey, "webhook send")

	InfoContext(ctx, "done")
	entry := decode(t, buf)
	assert.Equal(t, "abc12345", entry[KeyRequestID])
	assert.Equal(t, "webhook send", entry[KeyCommand])
}

func TestLogOperation(t *testing.T) {
	buf := captureJSON(t, slog.LevelDebug)
	LogOperation("save_project", KeyDuration, 12)
	entry := decode(t, buf)
	assert.Equal(t, "save_project", entry[KeyOperation])
}
