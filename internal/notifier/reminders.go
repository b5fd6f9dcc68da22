package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
)

// ReminderStore is the part of storage the reminder queue needs.
type ReminderStore interface {
	GetHabit(id string) (models.Habit, error)
	AddReminder(models.Reminder) error
	GetDueReminders(userID string, before time.Time) ([]models.Reminder, error)
	DeleteReminder(id string) error
	DeleteHabitReminders(habitID, kind string) error
}

// StoreReminders queues streak reminders in storage for the next day at the
// configured reminder time. A habit has at most one queued streak reminder.
type StoreReminders struct {
	Store  ReminderStore
	Config Config
	UserID string
	Loc    *time.Location
	Now    func() time.Time
}

func (s *StoreReminders) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *StoreReminders) ScheduleStreakReminder(ctx context.Context, habitID string, streak int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.Store.DeleteHabitReminders(habitID, constants.ReminderKindStreak); err != nil {
		return fmt.Errorf("failed to clear previous reminders: %w", err)
	}

	now := s.now()
	due, err := utils.CombineDateAndTime(utils.StartOfDay(now, s.Loc).AddDate(0, 0, 1), s.Config.StreakReminderTime, s.Loc)
	if err != nil {
		return fmt.Errorf("invalid streak reminder time: %w", err)
	}

	return s.Store.AddReminder(models.Reminder{
		ID:        uuid.NewString(),
		UserID:    s.UserID,
		HabitID:   habitID,
		Kind:      constants.ReminderKindStreak,
		Streak:    streak,
		DueAt:     due,
		CreatedAt: now,
	})
}

func (s *StoreReminders) CancelStreakReminders(ctx context.Context, habitID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.Store.DeleteHabitReminders(habitID, constants.ReminderKindStreak)
}

// DispatchResult counts what happened to each due reminder.
type DispatchResult struct {
	Sent     int `json:"sent"`
	Deferred int `json:"deferred"`
	Dropped  int `json:"dropped"`
}

// Dispatch delivers the user's reminders due at now. Reminders that fall in
// quiet hours stay queued; reminders for deleted habits, broken streaks or
// habits already done today are dropped. Failed deliveries and failed habit
// lookups stay queued and their errors are joined into the returned error.
func Dispatch(ctx context.Context, store ReminderStore, sender Sender, cfg Config, userID string, now time.Time) (DispatchResult, error) {
	var res DispatchResult
	due, err := store.GetDueReminders(userID, now)
	if err != nil {
		return res, fmt.Errorf("failed to load due reminders: %w", err)
	}

	var errs []error
	for _, r := range due {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		h, err := store.GetHabit(r.HabitID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			errs = append(errs, fmt.Errorf("reminder %s: failed to load habit: %w", r.ID, err))
			continue
		}
		if err != nil || !stillRelevant(h, now) {
			if err := store.DeleteReminder(r.ID); err != nil {
				errs = append(errs, err)
			}
			res.Dropped++
			continue
		}

		if !ShouldDeliver(cfg, string(h.Category), now) {
			res.Deferred++
			continue
		}

		if err := sender.Send(ctx, StreakReminder(h.Streak)); err != nil {
			errs = append(errs, fmt.Errorf("reminder for %q: %w", h.Title, err))
			continue
		}
		if err := store.DeleteReminder(r.ID); err != nil {
			errs = append(errs, err)
		}
		res.Sent++
	}
	return res, errors.Join(errs...)
}

func stillRelevant(h models.Habit, now time.Time) bool {
	if !h.IsActive || h.Streak == 0 || h.Status == models.StatusMissed {
		return false
	}
	if h.Status == models.StatusCompleted && h.LastCompleted != nil &&
		utils.CalendarDaysBetween(*h.LastCompleted, now, now.Location()) == 0 {
		return false
	}
	return true
}
