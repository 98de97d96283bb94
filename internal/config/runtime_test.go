package config

import (
	"testing"
	"time"
)

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()

	// HTTP defaults
	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("expected HTTP.Timeout = 30s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxRetries != 3 {
		t.Errorf("expected HTTP.MaxRetries = 3, got %d", cfg.HTTP.MaxRetries)
	}
	if len(cfg.HTTP.RetryDelays) != 3 {
		t.Errorf("expected HTTP.RetryDelays length = 3, got %d", len(cfg.HTTP.RetryDelays))
	}

	// Webhook defaults
	if cfg.Webhook.ContentLimit != 2000 {
		t.Errorf("expected Webhook.ContentLimit = 2000, got %d", cfg.Webhook.ContentLimit)
	}
	if cfg.Webhook.Username == "" || cfg.Webhook.AvatarURL == "" {
		t.Error("expected webhook username and avatar defaults")
	}

	// Report defaults
	if cfg.Report.Schedule != "0 10 * * 3" {
		t.Errorf("expected Report.Schedule = '0 10 * * 3', got %q", cfg.Report.Schedule)
	}
	if cfg.Storage.Path != "" {
		t.Errorf("expected empty Storage.Path, got %q", cfg.Storage.Path)
	}
}

func TestGlobalConfigExists(t *testing.T) {
	if Global == nil {
		t.Fatal("Global config should not be nil")
	}
}

func TestConfigReset(t *testing.T) {
	Global.HTTP.Timeout = 1 * time.Second
	Global.Reset()

	if Global.HTTP.Timeout != 30*time.Second {
		t.Errorf("expected HTTP.Timeout = 30s after reset, got %v", Global.HTTP.Timeout)
	}
}

func TestConfigLoadFromEnv(t *testing.T) {
	t.Setenv("CREWBOARD_HTTP_TIMEOUT", "10s")
	t.Setenv("CREWBOARD_HTTP_MAX_RETRIES", "5")
	t.Setenv("CREWBOARD_WEBHOOK_USERNAME", "Standup Bot")
	t.Setenv("CREWBOARD_REPORT_SCHEDULE", "30 9 * * 1")
	t.Setenv("CREWBOARD_DB_PATH", "/tmp/crewboard-test")
	t.Setenv("CREWBOARD_LOG_LEVEL", "debug")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	if cfg.HTTP.Timeout != 10*time.Second {
		t.Errorf("expected HTTP.Timeout = 10s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxRetries != 5 {
		t.Errorf("expected HTTP.MaxRetries = 5, got %d", cfg.HTTP.MaxRetries)
	}
	if cfg.Webhook.Username != "Standup Bot" {
		t.Errorf("expected Webhook.Username = 'Standup Bot', got %q", cfg.Webhook.Username)
	}
	if cfg.Report.Schedule != "30 9 * * 1" {
		t.Errorf("expected Report.Schedule override, got %q", cfg.Report.Schedule)
	}
	if cfg.Storage.Path != "/tmp/crewboard-test" {
		t.Errorf("expected Storage.Path override, got %q", cfg.Storage.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected Log.Level = debug, got %q", cfg.Log.Level)
	}
}

func TestConfigInvalidEnvValues(t *testing.T) {
	t.Setenv("CREWBOARD_HTTP_TIMEOUT", "invalid")
	t.Setenv("CREWBOARD_HTTP_MAX_RETRIES", "-1")

	cfg := DefaultRuntimeConfig()
	cfg.ReloadFromEnv()

	if cfg.HTTP.Timeout != 30*time.Second {
		t.Errorf("expected HTTP.Timeout to remain 30s with invalid env, got %v", cfg.HTTP.Timeout)
	}
	if cfg.HTTP.MaxRetries != 3 {
		t.Errorf("expected HTTP.MaxRetries to remain 3 with negative env, got %d", cfg.HTTP.MaxRetries)
	}
}

func TestRetryDelay(t *testing.T) {
	h := DefaultRuntimeConfig().HTTP
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 0},
		{1, 5 * time.Second},
		{2, 30 * time.Second},
		{7, 30 * time.Second},
	}
	for _, tt := range tests {
		if got := h.RetryDelay(tt.attempt); got != tt.expected {
			t.Errorf("RetryDelay(%d) = %v, want %v", tt.attempt, got, tt.expected)
		}
	}

	if got := (HTTPConfig{}).RetryDelay(2); got != 0 {
		t.Errorf("empty table should give 0, got %v", got)
	}
}
