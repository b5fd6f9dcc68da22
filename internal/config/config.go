// Package config loads the engine configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/utils"
)

var getenvFunc = os.Getenv

type Config struct {
	UserID        string          `yaml:"user_id"`
	Timezone      string          `yaml:"timezone"`
	Database      string          `yaml:"database"` // SQLite path or PostgreSQL connection string without a password
	WindowDays    int             `yaml:"window_days"`
	LogLevel      string          `yaml:"log_level"`
	AutoBackup    bool            `yaml:"auto_backup"`
	Notifications notifier.Config `yaml:"notifications"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UserID:        constants.DefaultUserID,
		Timezone:      constants.DefaultTimezone,
		WindowDays:    constants.DefaultWindowDays,
		LogLevel:      "info",
		AutoBackup:    true,
		Notifications: notifier.DefaultConfig(),
	}
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ExpandPath(path))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if tz := getenvFunc(constants.EnvTimezone); tz != "" {
		c.Timezone = tz
	}
	if db := getenvFunc(constants.EnvDBConnection); db != "" {
		c.Database = db
	}
}

// Validate checks the values a command depends on.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.UserID) == "" {
		errs = append(errs, errors.New("user_id cannot be empty"))
	}
	if !utils.ValidateTimezone(c.Timezone) {
		errs = append(errs, fmt.Errorf("invalid timezone: %s", c.Timezone))
	}
	if !slices.Contains(analytics.ComparisonPeriods, c.WindowDays) {
		errs = append(errs, fmt.Errorf("invalid window_days: %d (valid: %v)", c.WindowDays, analytics.ComparisonPeriods))
	}
	n := c.Notifications
	for name, v := range map[string]string{
		"quiet_hours.start":    n.QuietHours.Start,
		"quiet_hours.end":      n.QuietHours.End,
		"streak_reminder_time": n.StreakReminderTime,
	} {
		if !utils.ValidateTimeFormat(v) {
			errs = append(errs, fmt.Errorf("invalid %s: %q (expected HH:MM)", name, v))
		}
	}
	if n.StreakReminderThreshold < 1 {
		errs = append(errs, fmt.Errorf("streak_reminder_threshold must be at least 1"))
	}
	return errors.Join(errs...)
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return utils.LoadLocation(c.Timezone)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
