package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// AppName is the directory name used under the XDG config home.
const AppName = "crewboard"

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load reads a YAML config file from path and returns a validated config.
// Fields missing from the file keep their defaults.
func Load(path string) (*RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes over the defaults into a validated config.
func Parse(data []byte) (*RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults restores values a file may have zeroed out.
func (c *RuntimeConfig) applyDefaults() {
	d := DefaultRuntimeConfig()
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = d.HTTP.Timeout
	}
	if len(c.HTTP.RetryDelays) == 0 {
		c.HTTP.RetryDelays = d.HTTP.RetryDelays
	}
	if c.Webhook.Username == "" {
		c.Webhook.Username = d.Webhook.Username
	}
	if c.Webhook.ContentLimit == 0 {
		c.Webhook.ContentLimit = d.Webhook.ContentLimit
	}
	if c.Report.Schedule == "" {
		c.Report.Schedule = d.Report.Schedule
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// validate checks that values are usable.
func (c *RuntimeConfig) validate() error {
	var errs []string
	if c.HTTP.Timeout < 0 {
		errs = append(errs, "http.timeout must not be negative")
	}
	if c.HTTP.MaxRetries < 0 {
		errs = append(errs, "http.max_retries must not be negative")
	}
	if c.Webhook.ContentLimit < 0 || c.Webhook.ContentLimit > DefaultContentLimit {
		errs = append(errs, fmt.Sprintf("webhook.content_limit must be between 1 and %d", DefaultContentLimit))
	}
	if _, err := cron.ParseStandard(c.Report.Schedule); err != nil {
		errs = append(errs, fmt.Sprintf("report.schedule %q: %v", c.Report.Schedule, err))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Resolve builds the effective configuration. An explicit path must exist;
// the default path is optional. A .env file in the working directory is
// loaded into the environment before overrides are applied.
func Resolve(path string) (*RuntimeConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg, err := Load(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg = DefaultRuntimeConfig()
	default:
		return nil, err
	}

	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}
	cfg.loadFromEnv()
	return cfg, nil
}

// LoadEnvFile loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}
