package streak

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/models"
)

func ptrTime(t time.Time) *time.Time {
	return &t
}

func newHabit(status models.HabitStatus, streak, total int, last *time.Time) models.Habit {
	return models.Habit{
		ID:               "h1",
		UserID:           "u1",
		Title:            "Read",
		Category:         models.CategoryLearning,
		Status:           status,
		Streak:           streak,
		TotalCompletions: total,
		LastCompleted:    last,
		IsActive:         true,
	}
}

func TestCompleteFirstTime(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	h := newHabit(models.StatusPending, 0, 0, nil)

	tr, err := Complete(h, now, time.UTC)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if tr.After.Streak != 1 {
		t.Errorf("streak = %d, want 1", tr.After.Streak)
	}
	if tr.After.TotalCompletions != 1 {
		t.Errorf("totalCompletions = %d, want 1", tr.After.TotalCompletions)
	}
	if tr.After.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", tr.After.Status)
	}
	if tr.After.LastCompleted == nil || !tr.After.LastCompleted.Equal(now) {
		t.Errorf("lastCompleted = %v, want %v", tr.After.LastCompleted, now)
	}
	if tr.DayGap != NeverCompleted {
		t.Errorf("DayGap = %d, want NeverCompleted", tr.DayGap)
	}
	if len(tr.Effects) != 0 {
		t.Errorf("expected no effects for a streak of 1, got %v", tr.Effects)
	}
}

func TestCompleteGapRules(t *testing.T) {
	now := time.Date(2026, 4, 10, 0, 5, 0, 0, time.UTC)

	tests := []struct {
		name       string
		prior      int
		last       time.Time
		wantStreak int
		wantGap    int
	}{
		{"yesterday continues", 5, time.Date(2026, 4, 9, 8, 0, 0, 0, time.UTC), 6, 1},
		{"23:59 then 00:05 continues", 2, time.Date(2026, 4, 9, 23, 59, 0, 0, time.UTC), 3, 1},
		{"two days resets", 40, time.Date(2026, 4, 8, 23, 59, 0, 0, time.UTC), 1, 2},
		{"a week resets", 3, time.Date(2026, 4, 3, 12, 0, 0, 0, time.UTC), 1, 7},
		{"same day pending keeps streak", 4, time.Date(2026, 4, 10, 0, 1, 0, 0, time.UTC), 4, 0},
		{"same day pending with zero streak becomes one", 0, time.Date(2026, 4, 10, 0, 1, 0, 0, time.UTC), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHabit(models.StatusPending, tt.prior, 10, ptrTime(tt.last))
			tr, err := Complete(h, now, time.UTC)
			if err != nil {
				t.Fatalf("Complete() error = %v", err)
			}
			if tr.DayGap != tt.wantGap {
				t.Errorf("DayGap = %d, want %d", tr.DayGap, tt.wantGap)
			}
			if tr.After.Streak != tt.wantStreak {
				t.Errorf("streak = %d, want %d", tr.After.Streak, tt.wantStreak)
			}
			if tr.After.TotalCompletions != 11 {
				t.Errorf("totalCompletions = %d, want 11", tr.After.TotalCompletions)
			}
			if tr.PriorStreak != tt.prior {
				t.Errorf("PriorStreak = %d, want %d", tr.PriorStreak, tt.prior)
			}
		})
	}
}

func TestCompleteStreakMonotonicUnderOneDayGap(t *testing.T) {
	for n := 0; n < 50; n++ {
		last := time.Date(2026, 1, 1, 21, 0, 0, 0, time.UTC)
		now := last.AddDate(0, 0, 1).Add(-20 * time.Hour) // next calendar day, 01:00
		h := newHabit(models.StatusPending, n, n, ptrTime(last))
		tr, err := Complete(h, now, time.UTC)
		if err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
		if tr.After.Streak != n+1 {
			t.Fatalf("prior streak %d: got %d, want %d", n, tr.After.Streak, n+1)
		}
	}
}

func TestCompleteIsIdempotentWithinDay(t *testing.T) {
	loc := time.UTC
	first := time.Date(2026, 4, 10, 7, 0, 0, 0, loc)
	h := newHabit(models.StatusPending, 3, 3, ptrTime(first.AddDate(0, 0, -1)))

	once, err := Complete(h, first, loc)
	if err != nil {
		t.Fatalf("first Complete() error = %v", err)
	}
	twice, err := Complete(once.After, first.Add(6*time.Hour), loc)
	if err != nil {
		t.Fatalf("second Complete() error = %v", err)
	}

	if !twice.Noop {
		t.Error("second completion on the same day should be a no-op")
	}
	if twice.After.Streak != once.After.Streak {
		t.Errorf("streak changed on re-confirm: %d -> %d", once.After.Streak, twice.After.Streak)
	}
	if twice.After.TotalCompletions != once.After.TotalCompletions {
		t.Errorf("totalCompletions changed on re-confirm: %d -> %d", once.After.TotalCompletions, twice.After.TotalCompletions)
	}
	if len(twice.Effects) != 0 {
		t.Errorf("re-confirm should not request effects, got %v", twice.Effects)
	}
}

func TestCompleteRequestsStreakReminder(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	h := newHabit(models.StatusPending, 5, 5, ptrTime(now.AddDate(0, 0, -1)))

	tr, err := Complete(h, now, time.UTC)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(tr.Effects) != 1 {
		t.Fatalf("expected 1 effect, got %d", len(tr.Effects))
	}
	if tr.Effects[0].Kind != EffectScheduleStreakReminder || tr.Effects[0].Streak != 6 {
		t.Errorf("unexpected effect %+v", tr.Effects[0])
	}
}

func TestCompleteDoesNotMutateInput(t *testing.T) {
	last := time.Date(2026, 4, 9, 9, 0, 0, 0, time.UTC)
	h := newHabit(models.StatusPending, 2, 2, ptrTime(last))

	if _, err := Complete(h, last.AddDate(0, 0, 1), time.UTC); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if h.Streak != 2 || h.TotalCompletions != 2 || h.Status != models.StatusPending {
		t.Errorf("input habit was mutated: %+v", h)
	}
	if !h.LastCompleted.Equal(last) {
		t.Errorf("input lastCompleted was mutated: %v", h.LastCompleted)
	}
}

func TestCompleteClockSkewCountsAsSameDay(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	h := newHabit(models.StatusPending, 4, 4, ptrTime(now.AddDate(0, 0, 2)))

	tr, err := Complete(h, now, time.UTC)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if tr.DayGap != 0 || tr.After.Streak != 4 {
		t.Errorf("got gap %d streak %d, want gap 0 streak 4", tr.DayGap, tr.After.Streak)
	}
}

func TestMiss(t *testing.T) {
	now := time.Date(2026, 4, 10, 22, 0, 0, 0, time.UTC)
	h := newHabit(models.StatusPending, 9, 20, ptrTime(now.AddDate(0, 0, -1)))

	tr, err := Miss(h, now)
	if err != nil {
		t.Fatalf("Miss() error = %v", err)
	}
	if tr.After.Status != models.StatusMissed || tr.After.Streak != 0 {
		t.Errorf("got status %s streak %d, want missed/0", tr.After.Status, tr.After.Streak)
	}
	if tr.After.TotalCompletions != 20 {
		t.Errorf("totalCompletions = %d, want 20", tr.After.TotalCompletions)
	}
	if err := tr.After.CheckInvariants(); err != nil {
		t.Errorf("missed habit violates invariants: %v", err)
	}
	if len(tr.Effects) != 1 || tr.Effects[0].Kind != EffectCancelStreakReminders {
		t.Errorf("expected cancel effect, got %v", tr.Effects)
	}
}

func TestResetAndUndo(t *testing.T) {
	now := time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)

	t.Run("reset missed habit", func(t *testing.T) {
		h := newHabit(models.StatusMissed, 0, 7, nil)
		tr, err := Reset(h, now)
		if err != nil {
			t.Fatalf("Reset() error = %v", err)
		}
		if tr.After.Status != models.StatusPending || tr.After.TotalCompletions != 7 {
			t.Errorf("unexpected result %+v", tr.After)
		}
	})

	t.Run("reset completed habit keeps streak", func(t *testing.T) {
		h := newHabit(models.StatusCompleted, 6, 7, ptrTime(now.Add(-time.Hour)))
		tr, err := Reset(h, now)
		if err != nil {
			t.Fatalf("Reset() error = %v", err)
		}
		if tr.After.Status != models.StatusPending || tr.After.Streak != 6 {
			t.Errorf("unexpected result %+v", tr.After)
		}
	})

	t.Run("reset pending is a no-op", func(t *testing.T) {
		h := newHabit(models.StatusPending, 1, 1, nil)
		tr, err := Reset(h, now)
		if err != nil {
			t.Fatalf("Reset() error = %v", err)
		}
		if !tr.Noop {
			t.Error("expected no-op")
		}
	})

	t.Run("undo requires completed", func(t *testing.T) {
		h := newHabit(models.StatusPending, 1, 1, nil)
		if _, err := Undo(h, now); err == nil {
			t.Error("expected error undoing a pending habit")
		}
	})

	t.Run("undo restores the state before the completion", func(t *testing.T) {
		yesterday := now.AddDate(0, 0, -1)
		h := newHabit(models.StatusPending, 2, 2, ptrTime(yesterday))
		done, err := Complete(h, now, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		tr, err := Undo(done.After, now)
		if err != nil {
			t.Fatalf("Undo() error = %v", err)
		}
		got := tr.After
		if got.Status != models.StatusPending || got.Streak != 2 || got.TotalCompletions != 2 {
			t.Errorf("after undo: status %s streak %d total %d, want pending/2/2", got.Status, got.Streak, got.TotalCompletions)
		}
		if got.LastCompleted == nil || !got.LastCompleted.Equal(yesterday) {
			t.Errorf("lastCompleted = %v, want %v", got.LastCompleted, yesterday)
		}
		if len(tr.Effects) != 1 || tr.Effects[0].Kind != EffectCancelStreakReminders {
			t.Errorf("expected cancel effect, got %v", tr.Effects)
		}
	})

	t.Run("undo of a first completion clears it", func(t *testing.T) {
		done, err := Complete(newHabit(models.StatusPending, 0, 0, nil), now, time.UTC)
		if err != nil {
			t.Fatal(err)
		}
		tr, err := Undo(done.After, now)
		if err != nil {
			t.Fatal(err)
		}
		if tr.After.LastCompleted != nil || tr.After.Streak != 0 || tr.After.TotalCompletions != 0 {
			t.Errorf("after undo: %+v", tr.After)
		}
	})
}

func TestCompleteScoresOncePerDay(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	h := newHabit(models.StatusPending, 5, 5, ptrTime(now.AddDate(0, 0, -1)))

	for i := range 3 {
		tr, err := Complete(h, now.Add(time.Duration(i)*time.Minute), time.UTC)
		if err != nil {
			t.Fatalf("cycle %d: Complete() error = %v", i, err)
		}
		if tr.Scored != (i == 0) {
			t.Errorf("cycle %d: Scored = %v", i, tr.Scored)
		}
		if tr.After.Streak != 6 || tr.After.TotalCompletions != 6 {
			t.Errorf("cycle %d: streak %d total %d, want 6/6", i, tr.After.Streak, tr.After.TotalCompletions)
		}
		undone, err := Undo(tr.After, now)
		if err != nil {
			t.Fatalf("cycle %d: Undo() error = %v", i, err)
		}
		h = undone.After
	}

	tr, err := Complete(h, now.AddDate(0, 0, 1), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if !tr.Scored || tr.After.Streak != 1 {
		t.Errorf("next day: scored %v streak %d, want scored with streak 1", tr.Scored, tr.After.Streak)
	}
}

func TestMissRequiresPending(t *testing.T) {
	now := time.Date(2026, 4, 10, 22, 0, 0, 0, time.UTC)
	for _, status := range []models.HabitStatus{models.StatusCompleted, models.StatusMissed} {
		h := newHabit(status, 0, 1, ptrTime(now))
		if _, err := Miss(h, now); err == nil {
			t.Errorf("Miss() on a %s habit should fail", status)
		}
	}
}

func TestTransitionsRejectInvariantViolations(t *testing.T) {
	now := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	bad := newHabit(models.StatusMissed, 3, 3, nil)

	if _, err := Complete(bad, now, time.UTC); !errors.Is(err, models.ErrInvariantViolation) {
		t.Errorf("Complete() error = %v, want ErrInvariantViolation", err)
	}
	if _, err := Miss(bad, now); !errors.Is(err, models.ErrInvariantViolation) {
		t.Errorf("Miss() error = %v, want ErrInvariantViolation", err)
	}
	if _, err := Reset(bad, now); !errors.Is(err, models.ErrInvariantViolation) {
		t.Errorf("Reset() error = %v, want ErrInvariantViolation", err)
	}
}

func TestTransitionsRejectDeletedHabits(t *testing.T) {
	h := newHabit(models.StatusPending, 0, 0, nil)
	h.IsActive = false
	if _, err := Complete(h, time.Now(), time.UTC); err == nil {
		t.Error("expected error completing a deleted habit")
	}
}
