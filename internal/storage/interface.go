package storage

import (
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error

	// Habits
	AddHabit(models.Habit) error
	// GetHabit returns the habit even when it has been soft deleted.
	GetHabit(id string) (models.Habit, error)
	GetHabits(userID string, includeInactive bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error

	// Progress
	// LoadProgress returns ErrNotFound when the user has no stored record.
	LoadProgress(userID string) (models.GamificationProgress, error)
	SaveProgress(userID string, progress models.GamificationProgress) error

	// Reminders
	AddReminder(models.Reminder) error
	GetReminders(userID string) ([]models.Reminder, error)
	GetDueReminders(userID string, before time.Time) ([]models.Reminder, error)
	DeleteReminder(id string) error
	DeleteHabitReminders(habitID, kind string) error

	// Utils
	GetConfigPath() string
}
