package notifier

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/julianstephens/habitual/internal/models"
)

// Reminders schedules and cancels streak reminders for a habit.
type Reminders interface {
	ScheduleStreakReminder(ctx context.Context, habitID string, streak int) error
	CancelStreakReminders(ctx context.Context, habitID string) error
}

// Announcer tells the user about gamification events.
type Announcer interface {
	NotifyAchievementUnlocked(ctx context.Context, achievement models.Achievement) error
	NotifyLevelUp(ctx context.Context, level int, rewards models.LevelRewards) error
}

// Sender delivers one rendered notification.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// SenderAnnouncer renders announcements and hands them to a Sender.
type SenderAnnouncer struct {
	Sender Sender
}

func (a SenderAnnouncer) NotifyAchievementUnlocked(ctx context.Context, achievement models.Achievement) error {
	n, _ := Message(MessageAchievement, map[string]string{
		"achievementName": achievement.Title,
		"points":          strconv.Itoa(achievement.Points),
	})
	return a.Sender.Send(ctx, n)
}

func (a SenderAnnouncer) NotifyLevelUp(ctx context.Context, level int, rewards models.LevelRewards) error {
	n, _ := Message(MessageLevelUp, map[string]string{"levelTitle": rewards.Title})
	n.Body = fmt.Sprintf("%s (+%d pts)", n.Body, rewards.Points)
	return a.Sender.Send(ctx, n)
}

// Call is one captured collaborator invocation.
type Call struct {
	Method  string
	HabitID string
	Streak  int
	Level   int
	ID      string
}

// Recorder is an in-memory Reminders, Announcer and Sender. Setting Err makes
// every call fail after being recorded.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
	sent  []Notification
	Err   error
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	return r.Err
}

func (r *Recorder) ScheduleStreakReminder(_ context.Context, habitID string, streak int) error {
	return r.record(Call{Method: "ScheduleStreakReminder", HabitID: habitID, Streak: streak})
}

func (r *Recorder) CancelStreakReminders(_ context.Context, habitID string) error {
	return r.record(Call{Method: "CancelStreakReminders", HabitID: habitID})
}

func (r *Recorder) NotifyAchievementUnlocked(_ context.Context, achievement models.Achievement) error {
	return r.record(Call{Method: "NotifyAchievementUnlocked", ID: achievement.ID})
}

func (r *Recorder) NotifyLevelUp(_ context.Context, level int, _ models.LevelRewards) error {
	return r.record(Call{Method: "NotifyLevelUp", Level: level})
}

func (r *Recorder) Send(_ context.Context, n Notification) error {
	r.mu.Lock()
	r.sent = append(r.sent, n)
	r.mu.Unlock()
	return r.record(Call{Method: "Send"})
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Sent returns a copy of the delivered notifications.
func (r *Recorder) Sent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}
