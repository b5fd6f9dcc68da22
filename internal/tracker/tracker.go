// Package tracker runs habit events through the streak state machine and the
// scoring engine, persists the results and calls the notification
// collaborators. Collaborator failures never undo a computed result; they are
// returned as warnings next to it.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/gamification"
	"github.com/julianstephens/habitual/internal/insights"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/streak"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

// Collaborator capability names used in warnings.
const (
	CapabilityScheduleReminder = "schedule_streak_reminder"
	CapabilityCancelReminders  = "cancel_streak_reminders"
	CapabilityAchievement      = "notify_achievement_unlocked"
	CapabilityLevelUp          = "notify_level_up"
	CapabilityLoadProgress     = "load_progress"
	CapabilityPersistProgress  = "persist_progress"
)

// Store is the persistence the tracker needs.
type Store interface {
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabits(userID string, includeInactive bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error
	LoadProgress(userID string) (models.GamificationProgress, error)
	SaveProgress(userID string, progress models.GamificationProgress) error
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

type Tracker struct {
	Store     Store
	Reminders notifier.Reminders
	Announcer notifier.Announcer
	Config    notifier.Config
	Now       func() time.Time
	Loc       *time.Location
}

// Result is the outcome of one habit event.
type Result struct {
	Habit      models.Habit
	Transition streak.Transition
	// Outcome is set when a completion was scored.
	Outcome  *gamification.Outcome
	Warnings []error
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Tracker) loc() *time.Location {
	if t.Loc != nil {
		return t.Loc
	}
	return time.Local
}

func (t *Tracker) warn(warnings *[]error, capability string, err error) {
	if err == nil {
		return
	}
	logger.Warn("Collaborator call failed", "capability", capability, "error", err)
	*warnings = append(*warnings, apperrors.Collaborator(capability, err))
}

// CreateHabit validates the input and stores a new pending habit.
func (t *Tracker) CreateHabit(ctx context.Context, in validation.HabitInput) (models.Habit, error) {
	if err := ctx.Err(); err != nil {
		return models.Habit{}, err
	}
	if err := validation.ValidateHabitInput(in); err != nil {
		return models.Habit{}, fmt.Errorf("invalid habit: %w", err)
	}

	h := models.NewHabit(uuid.NewString(), in.UserID, in.Title, models.Category(in.Category), t.now())
	h.Description = in.Description
	if in.Time != "" {
		at := in.Time
		h.Time = &at
	}
	h.Weekdays = in.Weekdays

	if err := t.Store.AddHabit(h); err != nil {
		return models.Habit{}, err
	}
	logger.Info("Habit created", "id", h.ID, "title", h.Title, "category", h.Category)
	return h, nil
}

// CompleteHabit marks a habit done, scores it and announces anything it
// unlocked. Re-confirming a habit completed earlier the same day changes
// nothing, and completing it again after an undo that day is not scored.
func (t *Tracker) CompleteHabit(ctx context.Context, habitID string) (Result, error) {
	h, err := t.Store.GetHabit(habitID)
	if err != nil {
		return Result{}, err
	}
	now := t.now()
	tr, err := streak.Complete(h, now, t.loc())
	if err != nil {
		return Result{}, err
	}

	res := Result{Habit: tr.After, Transition: tr}
	if tr.Noop {
		return res, nil
	}
	if err := t.Store.UpdateHabit(tr.After); err != nil {
		return Result{}, fmt.Errorf("failed to save habit: %w", err)
	}
	t.applyEffects(ctx, tr.Effects, &res.Warnings)
	if !tr.Scored {
		logger.Info("Habit completed again without scoring", "id", h.ID, "streak", tr.After.Streak)
		return res, nil
	}

	progress, err := t.loadProgress(h.UserID)
	if err != nil {
		t.warn(&res.Warnings, CapabilityLoadProgress, err)
		return res, nil
	}
	habits, err := t.Store.GetHabits(h.UserID, false)
	if err != nil {
		t.warn(&res.Warnings, CapabilityLoadProgress, err)
		return res, nil
	}

	event := t.completionEvent(tr, habits, now)
	outcome := gamification.RecordCompletion(progress, event, t.loc())
	res.Outcome = &outcome

	if err := t.Store.SaveProgress(h.UserID, outcome.Progress); err != nil {
		t.warn(&res.Warnings, CapabilityPersistProgress, err)
	}
	for _, a := range outcome.Achievements {
		t.warn(&res.Warnings, CapabilityAchievement, t.Announcer.NotifyAchievementUnlocked(ctx, a))
	}
	if outcome.LeveledUp && outcome.Rewards != nil {
		t.warn(&res.Warnings, CapabilityLevelUp, t.Announcer.NotifyLevelUp(ctx, outcome.Progress.Level, *outcome.Rewards))
	}

	logger.Info("Habit completed", "id", h.ID, "streak", tr.After.Streak, "points", outcome.PointsAwarded)
	return res, nil
}

// completionEvent counts today's scheduled and completed habits, with the
// just-completed habit taking its new state.
func (t *Tracker) completionEvent(tr streak.Transition, habits []models.Habit, now time.Time) gamification.CompletionEvent {
	loc := t.loc()
	today := now.In(loc).Weekday()
	scheduled, completed := 0, 0
	for _, h := range habits {
		if h.ID == tr.After.ID {
			h = tr.After
		}
		if !h.IsScheduledOn(today) {
			continue
		}
		scheduled++
		if completedOn(h, now, loc) {
			completed++
		}
	}
	return gamification.CompletionEvent{
		HabitID:        tr.After.ID,
		Category:       tr.After.Category,
		PriorStreak:    tr.PriorStreak,
		Streak:         tr.After.Streak,
		CompletedAt:    now,
		CompletedToday: completed,
		ScheduledToday: scheduled,
		ActiveHabits:   len(habits),
	}
}

func completedOn(h models.Habit, day time.Time, loc *time.Location) bool {
	return h.Status == models.StatusCompleted && h.LastCompleted != nil &&
		utils.CalendarDaysBetween(*h.LastCompleted, day, loc) == 0
}

// MissHabit marks a habit missed, dropping its streak.
func (t *Tracker) MissHabit(ctx context.Context, habitID string) (Result, error) {
	return t.apply(ctx, habitID, func(h models.Habit, now time.Time) (streak.Transition, error) {
		return streak.Miss(h, now)
	})
}

// ResetHabit returns a habit to pending for a new day.
func (t *Tracker) ResetHabit(ctx context.Context, habitID string) (Result, error) {
	return t.apply(ctx, habitID, streak.Reset)
}

// UndoHabit reverts a completion to pending.
func (t *Tracker) UndoHabit(ctx context.Context, habitID string) (Result, error) {
	return t.apply(ctx, habitID, streak.Undo)
}

func (t *Tracker) apply(ctx context.Context, habitID string, fn func(models.Habit, time.Time) (streak.Transition, error)) (Result, error) {
	h, err := t.Store.GetHabit(habitID)
	if err != nil {
		return Result{}, err
	}
	tr, err := fn(h, t.now())
	if err != nil {
		return Result{}, err
	}
	res := Result{Habit: tr.After, Transition: tr}
	if tr.Noop {
		return res, nil
	}
	if err := t.Store.UpdateHabit(tr.After); err != nil {
		return Result{}, fmt.Errorf("failed to save habit: %w", err)
	}
	t.applyEffects(ctx, tr.Effects, &res.Warnings)
	logger.Debug("Habit updated", "id", h.ID, "status", tr.After.Status, "streak", tr.After.Streak)
	return res, nil
}

func (t *Tracker) applyEffects(ctx context.Context, effects []streak.Effect, warnings *[]error) {
	for _, e := range effects {
		switch e.Kind {
		case streak.EffectScheduleStreakReminder:
			t.warn(warnings, CapabilityScheduleReminder, t.Reminders.ScheduleStreakReminder(ctx, e.HabitID, e.Streak))
		case streak.EffectCancelStreakReminders:
			t.warn(warnings, CapabilityCancelReminders, t.Reminders.CancelStreakReminders(ctx, e.HabitID))
		}
	}
}

// DeleteHabit soft deletes a habit and cancels its reminders.
func (t *Tracker) DeleteHabit(ctx context.Context, habitID string) ([]error, error) {
	if err := t.Store.DeleteHabit(habitID); err != nil {
		return nil, err
	}
	var warnings []error
	t.warn(&warnings, CapabilityCancelReminders, t.Reminders.CancelStreakReminders(ctx, habitID))
	logger.Info("Habit deleted", "id", habitID)
	return warnings, nil
}

// RestoreHabit brings back a soft-deleted habit.
func (t *Tracker) RestoreHabit(_ context.Context, habitID string) (models.Habit, error) {
	if err := t.Store.RestoreHabit(habitID); err != nil {
		return models.Habit{}, err
	}
	return t.Store.GetHabit(habitID)
}

func (t *Tracker) loadProgress(userID string) (models.GamificationProgress, error) {
	p, err := t.Store.LoadProgress(userID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.DefaultProgress(t.now()), nil
	}
	return p, err
}

// Progress returns the user's stored progress and the display stats derived
// from it.
func (t *Tracker) Progress(_ context.Context, userID string) (models.GamificationProgress, models.GamificationStats, error) {
	p, err := t.loadProgress(userID)
	if err != nil {
		return models.GamificationProgress{}, models.GamificationStats{}, err
	}
	return p, gamification.CalculateGamificationStats(p), nil
}

// Report builds the insight report for the user's active habits.
func (t *Tracker) Report(_ context.Context, userID string, windowDays int) (models.Report, error) {
	habits, err := t.Store.GetHabits(userID, false)
	if err != nil {
		return models.Report{}, err
	}
	return insights.GenerateReport(habits, windowDays, t.now(), t.loc()), nil
}

// Challenges returns this week's challenges. When the stored set belongs to
// an earlier week a fresh set is generated; it is stored on the next
// completion.
func (t *Tracker) Challenges(_ context.Context, userID string) ([]models.Challenge, error) {
	p, err := t.loadProgress(userID)
	if err != nil {
		return nil, err
	}
	weekOf := utils.StartOfWeek(t.now(), t.loc()).Format(constants.DateFormat)
	if p.Stats.WeekOf == weekOf && len(p.Challenges) > 0 {
		return p.Challenges, nil
	}
	habits, err := t.Store.GetHabits(userID, false)
	if err != nil {
		return nil, err
	}
	return gamification.GenerateWeeklyChallenges(p.Stats, len(habits), weekOf), nil
}
