package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/streak"
	"github.com/julianstephens/habitual/internal/utils"
)

// maxLookbackDays bounds the missed-day scan; a weekday schedule repeats weekly.
const maxLookbackDays = 7

// RolloverResult lists what the start-of-day pass changed.
type RolloverResult struct {
	Date     string   `json:"date"`
	Skipped  bool     `json:"skipped"`
	Missed   []string `json:"missed"`
	Reset    []string `json:"reset"`
	Warnings []error  `json:"-"`
}

// Rollover starts a new day for the user. Pending habits that were scheduled
// on a day since the last rollover and not completed that day are missed;
// then every completed or missed habit not completed today goes back to
// pending. It runs at most once per calendar day.
func (t *Tracker) Rollover(ctx context.Context, userID string) (RolloverResult, error) {
	now := t.now()
	loc := t.loc()
	today := utils.StartOfDay(now, loc)
	res := RolloverResult{Date: today.Format(constants.DateFormat)}
	log := logger.With("user", userID, "date", res.Date)

	settingKey := storage.RolloverKey(userID)
	last, err := t.Store.GetSetting(settingKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return res, fmt.Errorf("failed to read last rollover: %w", err)
	}
	if last == res.Date {
		res.Skipped = true
		log.Debug("Rollover already ran today")
		return res, nil
	}
	from := today.AddDate(0, 0, -1)
	if last != "" {
		if d, err := time.ParseInLocation(constants.DateFormat, last, loc); err == nil && d.Before(from) {
			from = d
		}
	}
	if earliest := today.AddDate(0, 0, -maxLookbackDays); from.Before(earliest) {
		from = earliest
	}

	habits, err := t.Store.GetHabits(userID, false)
	if err != nil {
		return res, err
	}

	for _, h := range habits {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if h.Status == models.StatusPending && missedSince(h, from, today, loc) {
			tr, err := streak.Miss(h, now)
			if err != nil {
				return res, err
			}
			if err := t.Store.UpdateHabit(tr.After); err != nil {
				return res, fmt.Errorf("failed to save habit: %w", err)
			}
			t.applyEffects(ctx, tr.Effects, &res.Warnings)
			res.Missed = append(res.Missed, h.ID)
			log.Debug("Habit missed", "id", h.ID, "streak", tr.Before.Streak)
			h = tr.After
		}

		if h.Status == models.StatusPending || completedOn(h, now, loc) {
			continue
		}
		tr, err := streak.Reset(h, now)
		if err != nil {
			return res, err
		}
		if err := t.Store.UpdateHabit(tr.After); err != nil {
			return res, fmt.Errorf("failed to save habit: %w", err)
		}
		res.Reset = append(res.Reset, h.ID)
	}

	if err := t.Store.SetSetting(settingKey, res.Date); err != nil {
		return res, fmt.Errorf("failed to record rollover: %w", err)
	}
	log.Info("Rollover complete", "missed", len(res.Missed), "reset", len(res.Reset))
	return res, nil
}

// missedSince reports whether h was due on a day in [from, today) after it
// was created and was not completed on that day.
func missedSince(h models.Habit, from, today time.Time, loc *time.Location) bool {
	created := utils.StartOfDay(h.CreatedAt, loc)
	for day := from; day.Before(today); day = day.AddDate(0, 0, 1) {
		if day.Before(created) || !h.IsScheduledOn(day.Weekday()) {
			continue
		}
		if h.LastCompleted != nil && utils.CalendarDaysBetween(*h.LastCompleted, day, loc) == 0 {
			continue
		}
		return true
	}
	return false
}
