// Package notifier holds the notification settings the engine consults and
// the collaborators that deliver reminders and announcements.
package notifier

import (
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// QuietHours suppresses non-important notifications between Start and End.
// A Start later than End spans midnight.
type QuietHours struct {
	Enabled             bool     `yaml:"enabled"`
	Start               string   `yaml:"start"`
	End                 string   `yaml:"end"`
	AllowImportant      bool     `yaml:"allow_important"`
	ImportantCategories []string `yaml:"important_categories"`
}

// Config is the immutable notification configuration handed to callers.
type Config struct {
	QuietHours              QuietHours `yaml:"quiet_hours"`
	StreakReminderThreshold int        `yaml:"streak_reminder_threshold"`
	StreakReminderTime      string     `yaml:"streak_reminder_time"`
}

func DefaultConfig() Config {
	return Config{
		QuietHours: QuietHours{
			Enabled:             constants.DefaultQuietHoursEnabled,
			Start:               constants.DefaultQuietHoursStart,
			End:                 constants.DefaultQuietHoursEnd,
			AllowImportant:      constants.DefaultAllowImportant,
			ImportantCategories: slices.Clone(constants.DefaultImportantCategories),
		},
		StreakReminderThreshold: constants.DefaultStreakReminderThreshold,
		StreakReminderTime:      constants.DefaultStreakReminderTime,
	}
}

// IsQuietHours reports whether now's wall clock falls inside the quiet window.
// Both bounds are inclusive. Unparseable bounds disable the window.
func IsQuietHours(cfg Config, now time.Time) bool {
	q := cfg.QuietHours
	if !q.Enabled {
		return false
	}
	start, err := utils.ParseTimeToMinutes(q.Start)
	if err != nil {
		return false
	}
	end, err := utils.ParseTimeToMinutes(q.End)
	if err != nil {
		return false
	}

	current := now.Hour()*60 + now.Minute()
	if start > end {
		return current >= start || current <= end
	}
	return current >= start && current <= end
}

// IsImportant reports whether category may notify during quiet hours.
func IsImportant(cfg Config, category string) bool {
	if !cfg.QuietHours.AllowImportant {
		return false
	}
	category = strings.ToLower(strings.TrimSpace(category))
	return slices.Contains(cfg.QuietHours.ImportantCategories, category)
}

// ShouldDeliver combines the quiet window with the important-category escape.
func ShouldDeliver(cfg Config, category string, now time.Time) bool {
	return !IsQuietHours(cfg, now) || IsImportant(cfg, category)
}

// Priority ranks a habit's notifications. Long streaks and missed habits are
// always high; otherwise the category's base priority applies.
func Priority(cfg Config, h models.Habit) models.Priority {
	if h.Streak >= cfg.StreakReminderThreshold || h.Status == models.StatusMissed {
		return models.PriorityHigh
	}
	return models.LookupCategory(models.NormalizeCategory(string(h.Category))).BasePriority
}
