package gamification

import (
	"github.com/julianstephens/habitual/internal/models"
)

type achievementRule struct {
	achievement models.Achievement
	unlocked    func(models.ProgressStats) bool
}

var achievementRules = []achievementRule{
	{
		achievement: models.Achievement{ID: "streak_7", Title: "🔥 A Week on Fire", Description: "Kept a 7-day streak", Icon: "🔥", Points: 50, Type: models.AchievementStreak},
		unlocked:    func(s models.ProgressStats) bool { return s.BestStreak >= 7 },
	},
	{
		achievement: models.Achievement{ID: "streak_30", Title: "🚀 A Month of Success", Description: "Kept a 30-day streak", Icon: "🚀", Points: 200, Type: models.AchievementStreak},
		unlocked:    func(s models.ProgressStats) bool { return s.BestStreak >= 30 },
	},
	{
		achievement: models.Achievement{ID: "streak_100", Title: "👑 Legend of Consistency", Description: "Kept a 100-day streak", Icon: "👑", Points: 500, Type: models.AchievementStreak},
		unlocked:    func(s models.ProgressStats) bool { return s.BestStreak >= 100 },
	},
	{
		achievement: models.Achievement{ID: "completions_100", Title: "💯 Centurion", Description: "Completed 100 habits", Icon: "💯", Points: 100, Type: models.AchievementCompletions},
		unlocked:    func(s models.ProgressStats) bool { return s.TotalHabitsCompleted >= 100 },
	},
	{
		achievement: models.Achievement{ID: "completions_500", Title: "🎯 Master of Persistence", Description: "Completed 500 habits", Icon: "🎯", Points: 300, Type: models.AchievementCompletions},
		unlocked:    func(s models.ProgressStats) bool { return s.TotalHabitsCompleted >= 500 },
	},
	{
		achievement: models.Achievement{ID: "perfect_week", Title: "⭐ Perfect Week", Description: "Had 7 perfect days", Icon: "⭐", Points: 150, Type: models.AchievementPerfectDays},
		unlocked:    func(s models.ProgressStats) bool { return s.PerfectDays >= 7 },
	},
	{
		achievement: models.Achievement{ID: "categories_5", Title: "🌈 Diversifier", Description: "Completed habits in 5 different categories", Icon: "🌈", Points: 100, Type: models.AchievementCategories},
		unlocked:    func(s models.ProgressStats) bool { return s.DistinctCategories() >= 5 },
	},
}

type badgeRule struct {
	badge  models.Badge
	earned func(models.ProgressStats) bool
}

var badgeRules = []badgeRule{
	{models.Badge{ID: "streak_3", Name: "🔥 Getting Started", Icon: "🔥", Requirement: "3-day streak"}, func(s models.ProgressStats) bool { return s.BestStreak >= 3 }},
	{models.Badge{ID: "streak_7", Name: "🔥 Weekly", Icon: "🔥", Requirement: "7-day streak"}, func(s models.ProgressStats) bool { return s.BestStreak >= 7 }},
	{models.Badge{ID: "streak_14", Name: "🔥 Fortnightly", Icon: "🔥", Requirement: "14-day streak"}, func(s models.ProgressStats) bool { return s.BestStreak >= 14 }},
	{models.Badge{ID: "streak_30", Name: "🔥 Monthly", Icon: "🔥", Requirement: "30-day streak"}, func(s models.ProgressStats) bool { return s.BestStreak >= 30 }},
	{models.Badge{ID: "completions_10", Name: "🎯 Beginner", Icon: "🎯", Requirement: "10 habits completed"}, func(s models.ProgressStats) bool { return s.TotalHabitsCompleted >= 10 }},
	{models.Badge{ID: "completions_50", Name: "🎯 Intermediate", Icon: "🎯", Requirement: "50 habits completed"}, func(s models.ProgressStats) bool { return s.TotalHabitsCompleted >= 50 }},
	{models.Badge{ID: "completions_100", Name: "🎯 Advanced", Icon: "🎯", Requirement: "100 habits completed"}, func(s models.ProgressStats) bool { return s.TotalHabitsCompleted >= 100 }},
	{models.Badge{ID: "perfect_1", Name: "⭐ Perfect Day", Icon: "⭐", Requirement: "1 perfect day"}, func(s models.ProgressStats) bool { return s.PerfectDays >= 1 }},
	{models.Badge{ID: "perfect_7", Name: "⭐ Perfect Week", Icon: "⭐", Requirement: "7 perfect days"}, func(s models.ProgressStats) bool { return s.PerfectDays >= 7 }},
	{models.Badge{ID: "perfect_30", Name: "⭐ Perfect Month", Icon: "⭐", Requirement: "30 perfect days"}, func(s models.ProgressStats) bool { return s.PerfectDays >= 30 }},
	{models.Badge{ID: "early_bird", Name: "🌅 Early Bird", Icon: "🌅", Requirement: "Complete a habit before 7 AM"}, func(s models.ProgressStats) bool { return s.EarlyCompletions > 0 }},
	{models.Badge{ID: "night_owl", Name: "🦉 Night Owl", Icon: "🦉", Requirement: "Complete a habit after 10 PM"}, func(s models.ProgressStats) bool { return s.LateCompletions > 0 }},
	{models.Badge{ID: "weekend_warrior", Name: "🏆 Weekend Warrior", Icon: "🏆", Requirement: "Complete every habit on a weekend day"}, func(s models.ProgressStats) bool { return s.WeekendPerfectDays > 0 }},
}

// Achievements returns the full achievement catalog in evaluation order.
func Achievements() []models.Achievement {
	out := make([]models.Achievement, len(achievementRules))
	for i, r := range achievementRules {
		out[i] = r.achievement
	}
	return out
}

// Badges returns the full badge catalog in evaluation order.
func Badges() []models.Badge {
	out := make([]models.Badge, len(badgeRules))
	for i, r := range badgeRules {
		out[i] = r.badge
	}
	return out
}

// CheckAchievements lists every achievement stats qualifies for.
func CheckAchievements(stats models.ProgressStats) []models.Achievement {
	var out []models.Achievement
	for _, r := range achievementRules {
		if r.unlocked(stats) {
			out = append(out, r.achievement)
		}
	}
	return out
}

// NewlyUnlocked returns the qualifying achievements whose ids are not in
// unlocked.
func NewlyUnlocked(stats models.ProgressStats, unlocked []string) []models.Achievement {
	have := toSet(unlocked)
	var out []models.Achievement
	for _, a := range CheckAchievements(stats) {
		if _, ok := have[a.ID]; !ok {
			out = append(out, a)
		}
	}
	return out
}

// EarnedBadges lists every badge stats qualifies for.
func EarnedBadges(stats models.ProgressStats) []models.Badge {
	var out []models.Badge
	for _, r := range badgeRules {
		if r.earned(stats) {
			out = append(out, r.badge)
		}
	}
	return out
}

// NewlyEarnedBadges returns the qualifying badges whose ids are not in earned.
func NewlyEarnedBadges(stats models.ProgressStats, earned []string) []models.Badge {
	have := toSet(earned)
	var out []models.Badge
	for _, b := range EarnedBadges(stats) {
		if _, ok := have[b.ID]; !ok {
			out = append(out, b)
		}
	}
	return out
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
