package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvariantViolation marks a habit snapshot that no transition could have produced.
var ErrInvariantViolation = errors.New("habit invariant violation")

type HabitStatus string

const (
	StatusPending   HabitStatus = "pending"
	StatusCompleted HabitStatus = "completed"
	StatusMissed    HabitStatus = "missed"
)

// Habit represents a recurring practice and its live progress
type Habit struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	Category         Category       `json:"category"`
	Time             *string        `json:"time,omitempty"` // HH:MM format
	Weekdays         []time.Weekday `json:"weekdays,omitempty"`
	Status           HabitStatus    `json:"status"`
	Streak           int            `json:"streak"`
	TotalCompletions int            `json:"total_completions"`
	LastCompleted    *time.Time     `json:"last_completed,omitempty"`
	// PreviousStreak and PreviousCompleted hold the state the latest
	// completion replaced, so that completion can be undone.
	PreviousStreak    int        `json:"previous_streak,omitempty"`
	PreviousCompleted *time.Time `json:"previous_completed,omitempty"`
	// ScoredOn is the date (YYYY-MM-DD) of the last completion that earned points.
	ScoredOn  string    `json:"scored_on,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewHabit returns a pending habit with zeroed progress.
func NewHabit(id, userID, title string, category Category, now time.Time) Habit {
	return Habit{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Category:  NormalizeCategory(string(category)),
		Status:    StatusPending,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy so callers can derive new records without
// touching the snapshot they were given.
func (h Habit) Clone() Habit {
	out := h
	if h.Time != nil {
		t := *h.Time
		out.Time = &t
	}
	if h.LastCompleted != nil {
		lc := *h.LastCompleted
		out.LastCompleted = &lc
	}
	if h.PreviousCompleted != nil {
		pc := *h.PreviousCompleted
		out.PreviousCompleted = &pc
	}
	if h.Weekdays != nil {
		out.Weekdays = append([]time.Weekday(nil), h.Weekdays...)
	}
	return out
}

// CheckInvariants reports snapshots that violate the habit record rules.
func (h Habit) CheckInvariants() error {
	if h.Streak < 0 {
		return fmt.Errorf("%w: habit %s has negative streak %d", ErrInvariantViolation, h.ID, h.Streak)
	}
	if h.TotalCompletions < 0 {
		return fmt.Errorf("%w: habit %s has negative total completions %d", ErrInvariantViolation, h.ID, h.TotalCompletions)
	}
	if h.Status == StatusMissed && h.Streak != 0 {
		return fmt.Errorf("%w: habit %s is missed with streak %d", ErrInvariantViolation, h.ID, h.Streak)
	}
	switch h.Status {
	case StatusPending, StatusCompleted, StatusMissed:
	default:
		return fmt.Errorf("%w: habit %s has unknown status %q", ErrInvariantViolation, h.ID, h.Status)
	}
	return nil
}

// IsScheduledOn reports whether the habit is due on the given weekday.
// An empty weekday set means every day.
func (h Habit) IsScheduledOn(day time.Weekday) bool {
	if len(h.Weekdays) == 0 {
		return true
	}
	for _, wd := range h.Weekdays {
		if wd == day {
			return true
		}
	}
	return false
}

// ScheduledTime returns the HH:MM time or "" when the habit has none.
func (h Habit) ScheduledTime() string {
	if h.Time == nil {
		return ""
	}
	return *h.Time
}

// ActiveHabits filters out soft-deleted habits.
func ActiveHabits(habits []Habit) []Habit {
	active := make([]Habit, 0, len(habits))
	for _, h := range habits {
		if h.IsActive {
			active = append(active, h)
		}
	}
	return active
}

// TrendPoint is one calendar day of completion counts
type TrendPoint struct {
	Date      string       `json:"date"` // YYYY-MM-DD format
	Completed int          `json:"completed"`
	DayOfWeek time.Weekday `json:"day_of_week"`
	IsWeekend bool         `json:"is_weekend"`
}
