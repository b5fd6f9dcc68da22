package constants

const (
	// Quiet hours defaults
	DefaultQuietHoursEnabled = false
	DefaultQuietHoursStart   = "22:00"
	DefaultQuietHoursEnd     = "08:00"
	DefaultAllowImportant    = true

	// Reminder defaults
	DefaultStreakReminderThreshold = 3
	DefaultStreakReminderTime      = "20:00"
	DefaultTimezone                = "Local" // Use system local timezone by default
)

// DefaultImportantCategories are allowed to notify during quiet hours.
var DefaultImportantCategories = []string{"health", "medication"}
