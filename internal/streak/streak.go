// Package streak derives a habit's status and streak from completion, miss
// and reset events. Every transition works on a copy of the snapshot it is
// given and reports the reminder side effects it wants, leaving delivery to
// the caller.
package streak

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// NeverCompleted is the day gap used when a habit has no previous completion.
const NeverCompleted = math.MaxInt32

type EffectKind string

const (
	EffectScheduleStreakReminder EffectKind = "schedule_streak_reminder"
	EffectCancelStreakReminders  EffectKind = "cancel_streak_reminders"
)

// Effect is a collaborator call the transition asks for
type Effect struct {
	Kind    EffectKind `json:"kind"`
	HabitID string     `json:"habit_id"`
	Streak  int        `json:"streak,omitempty"`
}

// Transition is the outcome of applying one event to a habit
type Transition struct {
	Before models.Habit `json:"before"`
	After  models.Habit `json:"after"`
	// DayGap is the calendar-day distance to the previous completion
	// (NeverCompleted when there was none). Only set by Complete.
	DayGap int `json:"day_gap"`
	// PriorStreak is the streak the habit carried into the event; points are
	// scored against it.
	PriorStreak int  `json:"prior_streak"`
	Noop        bool `json:"noop"`
	// Scored is set by Complete when the completion earns points. A habit
	// scores at most once per calendar day, so completing again after an
	// undo on the same day is not scored.
	Scored  bool     `json:"scored"`
	Effects []Effect `json:"effects,omitempty"`
}

// StreakIncreased reports whether the event extended the streak.
func (t Transition) StreakIncreased() bool {
	return t.After.Streak > t.Before.Streak
}

// DaysSince returns the calendar-day gap between the last completion and now
// in loc. Gaps that would be negative (a clock that moved backwards) count as
// the same day.
func DaysSince(lastCompleted *time.Time, now time.Time, loc *time.Location) int {
	if lastCompleted == nil {
		return NeverCompleted
	}
	gap := utils.CalendarDaysBetween(*lastCompleted, now, loc)
	if gap < 0 {
		return 0
	}
	return gap
}

// NextStreak applies the day-gap rule to the prior streak.
func NextStreak(prior, gap int) int {
	switch {
	case gap == 1:
		return prior + 1
	case gap > 1:
		return 1
	default:
		return max(prior, 1)
	}
}

// Complete marks the habit done at now.
//
// Completing a habit that is already completed on the same calendar day is a
// re-confirmation: the returned transition is a no-op and carries no effects.
func Complete(h models.Habit, now time.Time, loc *time.Location) (Transition, error) {
	if err := check(h); err != nil {
		return Transition{}, err
	}

	gap := DaysSince(h.LastCompleted, now, loc)
	t := Transition{Before: h.Clone(), DayGap: gap, PriorStreak: h.Streak}

	if h.Status == models.StatusCompleted && gap == 0 {
		t.After = h.Clone()
		t.Noop = true
		return t, nil
	}

	today := utils.DateKey(now, loc)
	t.Scored = h.ScoredOn != today

	after := h.Clone()
	after.PreviousStreak = h.Streak
	after.PreviousCompleted = nil
	if h.LastCompleted != nil {
		prev := *h.LastCompleted
		after.PreviousCompleted = &prev
	}
	after.Streak = NextStreak(h.Streak, gap)
	after.Status = models.StatusCompleted
	after.TotalCompletions = h.TotalCompletions + 1
	completedAt := now
	after.LastCompleted = &completedAt
	after.ScoredOn = today
	after.UpdatedAt = now
	t.After = after

	if after.Streak > 1 {
		t.Effects = append(t.Effects, Effect{
			Kind:    EffectScheduleStreakReminder,
			HabitID: h.ID,
			Streak:  after.Streak,
		})
	}
	return t, nil
}

// Miss marks a pending habit missed and drops its streak.
func Miss(h models.Habit, now time.Time) (Transition, error) {
	if err := check(h); err != nil {
		return Transition{}, err
	}
	if h.Status != models.StatusPending {
		return Transition{}, fmt.Errorf("habit %s is %s, only pending habits can be missed", h.ID, h.Status)
	}

	after := h.Clone()
	after.Status = models.StatusMissed
	after.Streak = 0
	after.UpdatedAt = now

	return Transition{
		Before:      h.Clone(),
		After:       after,
		PriorStreak: h.Streak,
		Effects: []Effect{{
			Kind:    EffectCancelStreakReminders,
			HabitID: h.ID,
		}},
	}, nil
}

// Reset returns the habit to pending when a new day starts. Streak and
// completion count are left alone.
func Reset(h models.Habit, now time.Time) (Transition, error) {
	if err := check(h); err != nil {
		return Transition{}, err
	}

	after := h.Clone()
	t := Transition{Before: h.Clone(), PriorStreak: h.Streak}
	if h.Status == models.StatusPending {
		t.After = after
		t.Noop = true
		return t, nil
	}
	after.Status = models.StatusPending
	after.UpdatedAt = now
	t.After = after
	return t, nil
}

// Undo reverts the latest completion: streak and last completion go back to
// what they were before it and the completion count drops by one. The day
// stays scored, so completing again the same day earns nothing.
func Undo(h models.Habit, now time.Time) (Transition, error) {
	if err := check(h); err != nil {
		return Transition{}, err
	}
	if h.Status != models.StatusCompleted {
		return Transition{}, fmt.Errorf("habit %s is %s, only completed habits can be undone", h.ID, h.Status)
	}

	after := h.Clone()
	after.Status = models.StatusPending
	after.Streak = h.PreviousStreak
	after.LastCompleted = nil
	if h.PreviousCompleted != nil {
		prev := *h.PreviousCompleted
		after.LastCompleted = &prev
	}
	after.TotalCompletions = max(h.TotalCompletions-1, 0)
	after.PreviousStreak = 0
	after.PreviousCompleted = nil
	after.UpdatedAt = now

	return Transition{
		Before:      h.Clone(),
		After:       after,
		PriorStreak: h.Streak,
		Effects: []Effect{{
			Kind:    EffectCancelStreakReminders,
			HabitID: h.ID,
		}},
	}, nil
}

func check(h models.Habit) error {
	if err := h.CheckInvariants(); err != nil {
		return err
	}
	if !h.IsActive {
		return fmt.Errorf("habit %s is deleted", h.ID)
	}
	return nil
}
