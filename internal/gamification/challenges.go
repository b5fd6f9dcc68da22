package gamification

import (
	"fmt"
	"math"

	"github.com/julianstephens/habitual/internal/models"
)

const (
	weeklyStreakChallengePoints      = 100
	weeklyCompletionsChallengePoints = 80
	weeklyCategoriesChallengePoints  = 60
	weeklyCategoriesTarget           = 3
	weeklyCompletionsShare           = 0.8
	minStreakTarget                  = 3
)

// WeekTally is the activity counted so far in the current challenge week.
type WeekTally struct {
	BestStreak  int
	Completions int
	Categories  int
}

// GenerateWeeklyChallenges builds the three challenges for the week starting
// on weekOf. Targets scale with the user's best streak and habit count; a
// user with no habits gets a zero completions target, which never completes.
func GenerateWeeklyChallenges(stats models.ProgressStats, totalHabits int, weekOf string) []models.Challenge {
	streakTarget := max(minStreakTarget, stats.BestStreak+2)
	completionsTarget := int(math.Ceil(float64(totalHabits) * weeklyCompletionsShare))

	return []models.Challenge{
		{
			ID:          "weekly_streak",
			Title:       "🔥 Keep the Streak",
			Description: fmt.Sprintf("Keep a %d-day streak this week", streakTarget),
			Points:      weeklyStreakChallengePoints,
			Target:      streakTarget,
			Type:        models.ChallengeStreak,
			WeekOf:      weekOf,
		},
		{
			ID:          "weekly_completions",
			Title:       "🎯 Productive Week",
			Description: fmt.Sprintf("Complete at least %d habits this week", completionsTarget),
			Points:      weeklyCompletionsChallengePoints,
			Target:      completionsTarget,
			Type:        models.ChallengeCompletions,
			WeekOf:      weekOf,
		},
		{
			ID:          "weekly_categories",
			Title:       "🌈 Diversity",
			Description: fmt.Sprintf("Complete habits in at least %d different categories", weeklyCategoriesTarget),
			Points:      weeklyCategoriesChallengePoints,
			Target:      weeklyCategoriesTarget,
			Type:        models.ChallengeCategories,
			WeekOf:      weekOf,
		},
	}
}

// UpdateChallenges sets each challenge's progress from the week's tally and
// returns the updated copy plus the challenges completed by this update.
// A completed challenge stays completed and is never reported twice.
func UpdateChallenges(challenges []models.Challenge, tally WeekTally) ([]models.Challenge, []models.Challenge) {
	out := make([]models.Challenge, len(challenges))
	var completed []models.Challenge
	for i, c := range challenges {
		switch c.Type {
		case models.ChallengeStreak:
			c.Progress = max(c.Progress, tally.BestStreak)
		case models.ChallengeCompletions:
			c.Progress = max(c.Progress, tally.Completions)
		case models.ChallengeCategories:
			c.Progress = max(c.Progress, tally.Categories)
		}
		if !c.Completed && c.Target > 0 && c.Progress >= c.Target {
			c.Completed = true
			completed = append(completed, c)
		}
		out[i] = c
	}
	return out, completed
}

// AllCompleted reports whether every challenge in a non-empty set is done.
func AllCompleted(challenges []models.Challenge) bool {
	if len(challenges) == 0 {
		return false
	}
	for _, c := range challenges {
		if !c.Completed {
			return false
		}
	}
	return true
}
