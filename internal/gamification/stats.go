package gamification

import (
	"github.com/julianstephens/habitual/internal/models"
)

type rankTier struct {
	minPoints int
	name      string
}

var rankTiers = []rankTier{
	{10000, "👑 Emperor"},
	{5000, "⭐ Star"},
	{2000, "🏆 Champion"},
	{1000, "🎯 Expert"},
	{500, "🌱 Intermediate"},
}

// Milestones are the point totals announced as upcoming goals.
var Milestones = []int{100, 500, 1000, 2000, 5000, 10000}

// CalculateRank names the tier for a point total.
func CalculateRank(points int) string {
	for _, tier := range rankTiers {
		if points >= tier.minPoints {
			return tier.name
		}
	}
	return "🌱 Novice"
}

// NextMilestone returns the first milestone above points, or nil past the last.
func NextMilestone(points int) *models.Milestone {
	for _, m := range Milestones {
		if m > points {
			return &models.Milestone{Points: m, Remaining: m - points}
		}
	}
	return nil
}

// CalculateGamificationStats summarizes a progress record for display. The
// level is recomputed from the point total rather than read from the cache.
func CalculateGamificationStats(progress models.GamificationProgress) models.GamificationStats {
	level := CalculateLevel(progress.TotalPoints)
	completed := 0
	for _, c := range progress.Challenges {
		if c.Completed {
			completed++
		}
	}
	return models.GamificationStats{
		CurrentLevel:        level,
		LevelTitle:          LevelTitle(level),
		TotalPoints:         progress.TotalPoints,
		LevelProgress:       CalculateLevelProgress(progress.TotalPoints),
		Achievements:        len(progress.Achievements),
		Badges:              len(progress.Badges),
		CompletedChallenges: completed,
		Rank:                CalculateRank(progress.TotalPoints),
		NextMilestone:       NextMilestone(progress.TotalPoints),
	}
}
