// Package config provides centralized configuration for Crewboard runtime values.
//
// Values come from, in increasing precedence: built-in defaults, the YAML
// config file, a .env file in the working directory, and CREWBOARD_*
// environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CREWBOARD_"

// RuntimeConfig holds all runtime configuration values.
type RuntimeConfig struct {
	// HTTP client configuration
	HTTP HTTPConfig `yaml:"http"`

	// Webhook payload configuration
	Webhook WebhookConfig `yaml:"webhook"`

	// Report output and scheduling
	Report ReportConfig `yaml:"report"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage"`

	// Log configuration
	Log LogConfig `yaml:"log"`
}

// HTTPConfig holds HTTP client configuration.
type HTTPConfig struct {
	// Timeout is the per-request timeout.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the maximum number of attempts.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`

	// RetryDelays are the delays before each attempt.
	// Default: [0s, 5s, 30s]
	RetryDelays []time.Duration `yaml:"retry_delays"`
}

// WebhookConfig holds the fixed fields sent with every report.
type WebhookConfig struct {
	// Username is the display name the message is posted under.
	Username string `yaml:"username"`

	// AvatarURL is the avatar shown next to the message.
	AvatarURL string `yaml:"avatar_url"`

	// ContentLimit caps the report text in characters. Discord rejects
	// messages over 2000.
	// Default: 2000
	ContentLimit int `yaml:"content_limit"`
}

// ReportConfig holds report output configuration.
type ReportConfig struct {
	// Schedule is the five-field cron expression for scheduled sends.
	// Default: "0 10 * * 3" (Wednesday standup)
	Schedule string `yaml:"schedule"`

	// Dir is where HTML reports are written when no file is given.
	// Default: current directory
	Dir string `yaml:"dir"`
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// Path is the database directory.
	// Default: $XDG_DATA_HOME/crewboard/db
	Path string `yaml:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: warn
	Level string `yaml:"level"`
}

// Defaults for the webhook payload.
const (
	DefaultUsername     = "Crewboard"
	DefaultAvatarURL    = "https://api.dicebear.com/7.x/bottts/svg?seed=crewboard"
	DefaultContentLimit = 2000
	DefaultSchedule     = "0 10 * * 3"
)

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			RetryDelays: []time.Duration{
				0,                // Immediate first attempt
				5 * time.Second,  // Retry after 5s
				30 * time.Second, // Retry after 30s
			},
		},
		Webhook: WebhookConfig{
			Username:     DefaultUsername,
			AvatarURL:    DefaultAvatarURL,
			ContentLimit: DefaultContentLimit,
		},
		Report: ReportConfig{
			Schedule: DefaultSchedule,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and environment overrides; Resolve
// replaces it once the config file has been read.
var Global = initGlobal()

func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
// Malformed values are ignored.
func (c *RuntimeConfig) loadFromEnv() {
	// HTTP configuration
	if v := os.Getenv(EnvPrefix + "HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTP.Timeout = d
		}
	}
	if v := os.Getenv(EnvPrefix + "HTTP_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.HTTP.MaxRetries = n
		}
	}

	// Webhook configuration
	if v := os.Getenv(EnvPrefix + "WEBHOOK_USERNAME"); v != "" {
		c.Webhook.Username = v
	}
	if v := os.Getenv(EnvPrefix + "WEBHOOK_AVATAR_URL"); v != "" {
		c.Webhook.AvatarURL = v
	}

	// Report configuration
	if v := os.Getenv(EnvPrefix + "REPORT_SCHEDULE"); v != "" {
		c.Report.Schedule = v
	}
	if v := os.Getenv(EnvPrefix + "REPORT_DIR"); v != "" {
		c.Report.Dir = v
	}

	if v := os.Getenv(EnvPrefix + "DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// ReloadFromEnv reloads configuration from environment variables.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	*c = *DefaultRuntimeConfig()
}

// RetryDelay returns the delay before the given zero-based attempt. Attempts
// past the table reuse its last entry.
func (h HTTPConfig) RetryDelay(attempt int) time.Duration {
	if len(h.RetryDelays) == 0 || attempt <= 0 {
		return 0
	}
	if attempt >= len(h.RetryDelays) {
		return h.RetryDelays[len(h.RetryDelays)-1]
	}
	return h.RetryDelays[attempt]
}
