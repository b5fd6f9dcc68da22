package analytics

import (
	"math"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// ComparisonPeriods are the windows ComparePeriods evaluates.
var ComparisonPeriods = []int{7, 14, 30, 90}

// CalculateProductivityIndex scores the last windowDays days on a 0-100 scale.
//
// The completion rate only looks at habits created inside the window; the
// streak, consistency and variety bonuses look at every active habit. With no
// habits in the window the zero result is returned.
func CalculateProductivityIndex(habits []models.Habit, windowDays int, now time.Time, loc *time.Location) models.ProductivityIndexResult {
	active := models.ActiveHabits(habits)
	start := now.AddDate(0, 0, -windowDays)

	total, completed := 0, 0
	for _, h := range active {
		if h.CreatedAt.IsZero() || h.CreatedAt.Before(start) {
			continue
		}
		total++
		if h.Status == models.StatusCompleted {
			completed++
		}
	}
	if total == 0 {
		return models.ProductivityIndexResult{}
	}

	completionRate := float64(completed) / float64(total) * 100
	streakBonus := StreakBonus(active)
	consistencyBonus := ConsistencyBonus(CalculateCompletionTrend(active, windowDays, now, loc).Summary.Consistency)
	varietyBonus := VarietyBonus(active)

	index := math.Min(completionRate+streakBonus+consistencyBonus+varietyBonus, constants.ProductivityMax)
	index = math.Max(index, 0)

	return models.ProductivityIndexResult{
		Index: utils.Round2(index),
		Factors: models.ProductivityFactors{
			CompletionRate:   utils.Round2(completionRate),
			StreakBonus:      utils.Round2(streakBonus),
			ConsistencyBonus: utils.Round2(consistencyBonus),
			VarietyBonus:     utils.Round2(varietyBonus),
		},
		Breakdown: models.ProductivityBreakdown{
			TotalHabits:     total,
			CompletedHabits: completed,
		},
	}
}

// StreakBonus is twice the summed streaks, capped.
func StreakBonus(habits []models.Habit) float64 {
	sum := 0
	for _, h := range habits {
		sum += h.Streak
	}
	return math.Min(float64(sum*constants.ProductivityStreakBonusFactor), constants.ProductivityStreakBonusCap)
}

// ConsistencyBonus maps a consistency label to bonus points.
func ConsistencyBonus(c models.Consistency) float64 {
	switch c {
	case models.ConsistencyVeryHigh:
		return constants.ConsistencyBonusVeryHigh
	case models.ConsistencyHigh:
		return constants.ConsistencyBonusHigh
	case models.ConsistencyModerate:
		return constants.ConsistencyBonusModerate
	default:
		return 0
	}
}

// VarietyBonus rewards spreading habits over several categories.
func VarietyBonus(habits []models.Habit) float64 {
	seen := make(map[models.Category]struct{})
	for _, h := range habits {
		seen[models.NormalizeCategory(string(h.Category))] = struct{}{}
	}
	switch n := len(seen); {
	case n >= constants.VarietyWideCategories:
		return constants.VarietyBonusWide
	case n >= constants.VarietySomeCategories:
		return constants.VarietyBonusSome
	default:
		return 0
	}
}

// ComparePeriods computes the productivity index for every comparison window
// no longer than current.
func ComparePeriods(habits []models.Habit, current int, now time.Time, loc *time.Location) map[int]models.ProductivityIndexResult {
	out := make(map[int]models.ProductivityIndexResult)
	for _, period := range ComparisonPeriods {
		if period > current {
			continue
		}
		out[period] = CalculateProductivityIndex(habits, period, now, loc)
	}
	return out
}
