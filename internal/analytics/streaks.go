package analytics

import (
	"sort"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// AnalyzeStreakPatterns describes the live streaks across active habits.
func AnalyzeStreakPatterns(habits []models.Habit) models.StreakPatterns {
	patterns := models.StreakPatterns{
		Distribution:    make(map[int][]string),
		CategoryStreaks: make(map[models.Category][]int),
		TopStreaks:      []models.StreakEntry{},
	}

	var entries []models.StreakEntry
	sum := 0
	for _, h := range models.ActiveHabits(habits) {
		if h.Streak <= 0 {
			continue
		}
		c := models.NormalizeCategory(string(h.Category))
		entries = append(entries, models.StreakEntry{HabitID: h.ID, Title: h.Title, Category: c, Streak: h.Streak})
		patterns.Distribution[h.Streak] = append(patterns.Distribution[h.Streak], h.Title)
		patterns.CategoryStreaks[c] = append(patterns.CategoryStreaks[c], h.Streak)
		patterns.MaxStreak = max(patterns.MaxStreak, h.Streak)
		sum += h.Streak
	}

	patterns.TotalHabitsWithStreaks = len(entries)
	if len(entries) > 0 {
		patterns.AverageStreak = utils.Round2(float64(sum) / float64(len(entries)))
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Streak > entries[j].Streak })
	if len(entries) > constants.TopStreaksLimit {
		entries = entries[:constants.TopStreaksLimit]
	}
	patterns.TopStreaks = append(patterns.TopStreaks, entries...)
	return patterns
}

// Summarize counts today's habit states across active habits.
func Summarize(habits []models.Habit) models.UserSummary {
	var s models.UserSummary
	for _, h := range models.ActiveHabits(habits) {
		s.TotalHabits++
		switch h.Status {
		case models.StatusCompleted:
			s.CompletedToday++
		case models.StatusPending:
			s.PendingToday++
		case models.StatusMissed:
			s.MissedToday++
		}
		s.TotalStreak += h.Streak
		s.BestStreak = max(s.BestStreak, h.Streak)
		s.TotalCompletions += h.TotalCompletions
	}
	if s.TotalHabits > 0 {
		s.ProgressPercentage = int(float64(s.CompletedToday)/float64(s.TotalHabits)*100 + 0.5)
	}
	return s
}
