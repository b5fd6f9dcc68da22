package analytics

import (
	"math"
	"sort"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/utils"
)

// AnalyzeCategoryPerformance groups active habits by category and scores each
// group. Categories without habits are absent from the result.
func AnalyzeCategoryPerformance(habits []models.Habit) map[models.Category]models.CategoryPerformance {
	type acc struct {
		perf  models.CategoryPerformance
		times []string
	}

	groups := make(map[models.Category]*acc)
	for _, h := range models.ActiveHabits(habits) {
		c := models.NormalizeCategory(string(h.Category))
		g, ok := groups[c]
		if !ok {
			g = &acc{}
			groups[c] = g
		}
		g.perf.Total++
		if h.Status == models.StatusCompleted {
			g.perf.Completed++
		}
		g.perf.TotalStreak += h.Streak
		g.perf.TotalCompletions += h.TotalCompletions
		if t := h.ScheduledTime(); t != "" {
			g.times = append(g.times, t)
		}
	}

	result := make(map[models.Category]models.CategoryPerformance, len(groups))
	for c, g := range groups {
		perf := g.perf
		total := float64(perf.Total)
		perf.CompletionRate = float64(perf.Completed) / total * 100
		perf.AverageStreak = float64(perf.TotalStreak) / total
		perf.AverageCompletions = float64(perf.TotalCompletions) / total
		perf.TimeDistribution = AnalyzeTimeDistribution(g.times)
		perf.Strength = CategoryStrength(perf.CompletionRate, perf.AverageStreak)
		result[c] = perf
	}
	return result
}

// CategoryStrength blends completion rate, average streak and a consistency
// proxy into a 0-100 score.
func CategoryStrength(completionRate, averageStreak float64) int {
	completionScore := clamp01(completionRate / 100)
	streakScore := clamp01(averageStreak / constants.StrengthStreakCap)

	consistencyScore := 1.0
	if completionRate <= constants.StrengthConsistentRate {
		consistencyScore = clamp01(completionRate / constants.StrengthConsistentRate)
	}

	score := completionScore*constants.StrengthCompletionWeight +
		streakScore*constants.StrengthStreakWeight +
		consistencyScore*constants.StrengthConsistencyWeight
	return int(math.Round(score * 100))
}

// AnalyzeTimeDistribution buckets HH:MM times into morning (06-12),
// afternoon (12-18), evening (18-24) and night (00-06) percentages.
// Unparseable times are skipped; nil means no usable times.
func AnalyzeTimeDistribution(times []string) *models.TimeDistribution {
	var morning, afternoon, evening, night int
	for _, t := range times {
		minutes, err := utils.ParseTimeToMinutes(t)
		if err != nil {
			continue
		}
		switch hour := minutes / 60; {
		case hour >= 6 && hour < 12:
			morning++
		case hour >= 12 && hour < 18:
			afternoon++
		case hour >= 18:
			evening++
		default:
			night++
		}
	}

	total := morning + afternoon + evening + night
	if total == 0 {
		return nil
	}

	slots := []struct {
		slot  models.TimeSlot
		count int
	}{
		{models.SlotMorning, morning},
		{models.SlotAfternoon, afternoon},
		{models.SlotEvening, evening},
		{models.SlotNight, night},
	}
	preferred := slots[0]
	for _, s := range slots[1:] {
		if s.count > preferred.count {
			preferred = s
		}
	}

	pct := func(n int) float64 { return float64(n) / float64(total) * 100 }
	return &models.TimeDistribution{
		Morning:       pct(morning),
		Afternoon:     pct(afternoon),
		Evening:       pct(evening),
		Night:         pct(night),
		PreferredTime: preferred.slot,
	}
}

// WeakCategories lists categories scoring under the weak threshold, weakest
// first, ties ordered by name.
func WeakCategories(perf map[models.Category]models.CategoryPerformance) []models.Category {
	var weak []models.Category
	for _, c := range models.SortedCategories(perf) {
		if perf[c].Strength < constants.WeakCategoryStrength {
			weak = append(weak, c)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		return perf[weak[i]].Strength < perf[weak[j]].Strength
	})
	return weak
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
