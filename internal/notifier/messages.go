package notifier

import (
	"strconv"
	"strings"
)

type MessageKind string

const (
	MessageHabitReminder  MessageKind = "habit_reminder"
	MessageStreakReminder MessageKind = "streak_reminder"
	MessagePendingHabits  MessageKind = "pending_habits"
	MessageDailyDigest    MessageKind = "daily_digest"
	MessageWeeklyReport   MessageKind = "weekly_report"
	MessageAchievement    MessageKind = "achievement"
	MessageLevelUp        MessageKind = "level_up"
	MessagePointsEarned   MessageKind = "points_earned"
	MessageMotivation     MessageKind = "motivation"
)

// Notification is a rendered title and body
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (n Notification) String() string {
	return n.Title + ": " + n.Body
}

var templates = map[MessageKind]Notification{
	MessageHabitReminder:  {"🎯 Habit Reminder", "Time for: {habitTitle}"},
	MessageStreakReminder: {"🔥 Keep your streak!", "You have a {streak}-day streak. Don't break it today!"},
	MessagePendingHabits:  {"📋 Pending Habits", "Check today's habits before the day ends"},
	MessageDailyDigest:    {"📊 Daily Summary", "You completed {completed} of {total} habits today"},
	MessageWeeklyReport:   {"📈 Weekly Report", "Your weekly progress is ready. Check your stats!"},
	MessageAchievement:    {"🏆 Achievement Unlocked!", "Congratulations! You reached: {achievementName} (+{points} pts)"},
	MessageLevelUp:        {"🎉 Level Up!", "Congratulations! You reached {levelTitle}"},
	MessagePointsEarned:   {"⭐ Points Earned", "You earned {points} points for completing your habit!"},
	MessageMotivation:     {"💪 You Can Do It!", "Every small step brings you closer to your goals"},
}

var streakMilestones = map[int]string{
	7:   "A full week! 🎉",
	14:  "Two weeks! You're amazing 🌟",
	30:  "A month! You're a machine! 🚀",
	100: "100 days! Legend! 👑",
}

// Message renders the template for kind, replacing {key} placeholders from
// data. The second return is false for unknown kinds.
func Message(kind MessageKind, data map[string]string) (Notification, bool) {
	tmpl, ok := templates[kind]
	if !ok {
		return Notification{}, false
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	r := strings.NewReplacer(pairs...)
	return Notification{Title: r.Replace(tmpl.Title), Body: r.Replace(tmpl.Body)}, true
}

// StreakReminder renders the streak reminder. Milestone streaks get an extra
// line.
func StreakReminder(streak int) Notification {
	n, _ := Message(MessageStreakReminder, map[string]string{"streak": strconv.Itoa(streak)})
	if extra, ok := streakMilestones[streak]; ok {
		n.Body += " " + extra
	}
	return n
}
