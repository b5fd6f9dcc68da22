// Package gamification turns completion events into points, levels,
// achievements, badges and weekly challenges. All functions are pure: the
// progress record passed in is never modified.
package gamification

import (
	"math"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// CalculateHabitPoints scores one completion. streak is the habit's streak
// before the completion was applied.
func CalculateHabitPoints(category models.Category, streak int) int {
	points := constants.PointsPerHabit
	if streak > 1 {
		points += constants.StreakBonusPerDay * min(streak, constants.StreakBonusMaxDays)
	}
	multiplier := models.LookupCategory(models.NormalizeCategory(string(category))).Multiplier
	return int(math.Round(float64(points) * multiplier))
}

// PerfectDayPoints is the bonus for finishing every habit of the day.
func PerfectDayPoints(completed, total int) int {
	if total > 0 && completed == total {
		return constants.PerfectDayBonus
	}
	return 0
}

// PeriodStats is the tally for a week or month of habit activity.
type PeriodStats struct {
	CompletedHabits   int
	TotalHabits       int
	MaintainedStreaks int
}

// WeeklyPoints scores a closed week.
func WeeklyPoints(stats PeriodStats) int {
	return periodPoints(stats, constants.WeeklyGoalBonus)
}

// MonthlyPoints scores a closed month.
func MonthlyPoints(stats PeriodStats) int {
	return periodPoints(stats, constants.MonthlyGoalBonus)
}

func periodPoints(stats PeriodStats, goalBonus int) int {
	points := stats.CompletedHabits * constants.PointsPerHabit
	if stats.TotalHabits > 0 && stats.CompletedHabits == stats.TotalHabits {
		points += goalBonus
	}
	return points + stats.MaintainedStreaks*constants.StreakBonusPerDay
}
