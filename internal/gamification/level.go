package gamification

import (
	"fmt"
	"math"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

var levelTitles = map[int]string{
	1:  "🌱 Novice",
	2:  "🌿 Apprentice",
	3:  "🌳 Intermediate",
	4:  "🌲 Advanced",
	5:  "🏔️ Expert",
	6:  "⭐ Master",
	7:  "👑 Grand Master",
	8:  "🚀 Legend",
	9:  "💎 Diamond",
	10: "🌟 Star",
}

var levelUpMessages = map[int]string{
	1:  "Welcome to the journey of self-improvement!",
	2:  "You're on your way! Every step counts.",
	3:  "Keep the pace! You're making progress.",
	4:  "Excellent work! Consistency is the key.",
	5:  "You're an expert in the making!",
	6:  "Master of habits! You inspire others.",
	7:  "Grand Master! Your dedication is remarkable.",
	8:  "Living legend! You've exceeded every expectation.",
	9:  "Pure diamond! You're an example of excellence.",
	10: "Shining star! You've reached the summit.",
}

// CalculateLevel maps cumulative points to a level: floor(sqrt(points/100))+1.
// The square root is taken on integers and corrected so the result agrees
// exactly with PointsForLevel for every input.
func CalculateLevel(totalPoints int) int {
	if totalPoints <= 0 {
		return 1
	}
	return isqrt(totalPoints/constants.LevelPointsDivisor) + 1
}

// PointsForLevel is the cumulative points needed to reach level.
func PointsForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * (level - 1) * constants.LevelPointsDivisor
}

// CalculateLevelProgress reports how far totalPoints is into the current level.
func CalculateLevelProgress(totalPoints int) models.LevelProgress {
	level := CalculateLevel(totalPoints)
	floor := PointsForLevel(level)
	progress := max(totalPoints, 0) - floor
	total := PointsForLevel(level+1) - floor
	return models.LevelProgress{
		CurrentLevel: level,
		Progress:     progress,
		Total:        total,
		Percentage:   int(math.Round(float64(progress) / float64(total) * 100)),
	}
}

// LevelTitle names a level; levels past the table fall back to "Level N".
func LevelTitle(level int) string {
	if title, ok := levelTitles[level]; ok {
		return title
	}
	return fmt.Sprintf("Level %d", level)
}

// LevelRewards describes what reaching level grants.
func LevelRewards(level int) models.LevelRewards {
	rewards := models.LevelRewards{
		Title:   LevelTitle(level),
		Points:  level * constants.LevelRewardPerLevel,
		Message: "Congratulations on your new level!",
	}
	if level%constants.SpecialRewardEvery == 0 {
		rewards.Special = "🎁 Special Reward"
	}
	if msg, ok := levelUpMessages[level]; ok {
		rewards.Message = msg
	}
	return rewards
}

func isqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
