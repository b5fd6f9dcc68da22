// Package insights turns analytics results into ranked, human readable
// insights and recommendations.
package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// Insight keys
const (
	KeyTrendDecreasing  = "trend_decreasing"
	KeyTrendIncreasing  = "trend_increasing"
	KeyWeakCategories   = "weak_categories"
	KeyImpressiveStreak = "impressive_streak"
	KeyLowProductivity  = "low_productivity"
	KeyHighProductivity = "high_productivity"
)

// Inputs are the analytics results insights are derived from.
type Inputs struct {
	Trend        models.TrendReport
	Categories   map[models.Category]models.CategoryPerformance
	Streaks      models.StreakPatterns
	Productivity models.ProductivityIndexResult
}

// Analyze computes every input for a window ending at now.
func Analyze(habits []models.Habit, window int, now time.Time, loc *time.Location) Inputs {
	return Inputs{
		Trend:        analytics.CalculateCompletionTrend(habits, window, now, loc),
		Categories:   analytics.AnalyzeCategoryPerformance(habits),
		Streaks:      analytics.AnalyzeStreakPatterns(habits),
		Productivity: analytics.CalculateProductivityIndex(habits, window, now, loc),
	}
}

// GenerateInsights analyzes habits over the window and ranks the findings.
func GenerateInsights(habits []models.Habit, window int, now time.Time, loc *time.Location) []models.Insight {
	return FromInputs(Analyze(habits, window, now, loc))
}

// FromInputs evaluates trend, weak categories, best streak and productivity
// in that order, then sorts by priority. Equal priorities keep their
// evaluation order.
func FromInputs(in Inputs) []models.Insight {
	insights := []models.Insight{}

	switch in.Trend.Summary.TrendDirection {
	case models.TrendDecreasing:
		insights = append(insights, models.Insight{
			Key:      KeyTrendDecreasing,
			Type:     models.InsightWarning,
			Title:    "Declining Trend",
			Message:  "Your completion rate is dropping. Consider reviewing your hardest habits.",
			Priority: models.PriorityHigh,
		})
	case models.TrendIncreasing:
		insights = append(insights, models.Insight{
			Key:      KeyTrendIncreasing,
			Type:     models.InsightSuccess,
			Title:    "Excellent Progress!",
			Message:  "Your completion rate is improving. Keep it up!",
			Priority: models.PriorityLow,
		})
	}

	if weak := analytics.WeakCategories(in.Categories); len(weak) > 0 {
		insights = append(insights, models.Insight{
			Key:      KeyWeakCategories,
			Type:     models.InsightInfo,
			Title:    "Categories to Improve",
			Message:  "Consider focusing on: " + joinCategories(weak),
			Priority: models.PriorityMedium,
		})
	}

	if best := in.Streaks.MaxStreak; best >= constants.ImpressiveStreakDays {
		insights = append(insights, models.Insight{
			Key:      KeyImpressiveStreak,
			Type:     models.InsightSuccess,
			Title:    "Impressive Streak",
			Message:  fmt.Sprintf("You have a %d-day streak! Keep the momentum going!", best),
			Priority: models.PriorityLow,
		})
	}

	switch index := in.Productivity.Index; {
	case index < constants.LowProductivityIndex:
		insights = append(insights, models.Insight{
			Key:      KeyLowProductivity,
			Type:     models.InsightWarning,
			Title:    "Low Productivity",
			Message:  "Your productivity index is low. Consider simplifying your habits.",
			Priority: models.PriorityHigh,
		})
	case index > constants.HighProductivityIndex:
		insights = append(insights, models.Insight{
			Key:      KeyHighProductivity,
			Type:     models.InsightSuccess,
			Title:    "High Productivity!",
			Message:  "Your productivity index is excellent. You're very consistent!",
			Priority: models.PriorityLow,
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority.Weight() > insights[j].Priority.Weight()
	})
	return insights
}

// GenerateRecommendations maps warning insights to actions and adds a
// strategy when any category is weak.
func GenerateRecommendations(insights []models.Insight, categories map[models.Category]models.CategoryPerformance) []models.Recommendation {
	recs := []models.Recommendation{}
	for _, in := range insights {
		if in.Type != models.InsightWarning {
			continue
		}
		switch in.Key {
		case KeyTrendDecreasing:
			recs = append(recs, models.Recommendation{
				Type:        models.RecommendationAction,
				Title:       "Review Difficult Habits",
				Description: "Identify which habits cost you the most and consider simplifying or replacing them.",
				Priority:    models.PriorityHigh,
			})
		case KeyLowProductivity:
			recs = append(recs, models.Recommendation{
				Type:        models.RecommendationAction,
				Title:       "Simplify Your Routine",
				Description: "Cut down the number of habits and focus on the most important ones.",
				Priority:    models.PriorityHigh,
			})
		}
	}

	if weak := analytics.WeakCategories(categories); len(weak) > 0 {
		recs = append(recs, models.Recommendation{
			Type:        models.RecommendationStrategy,
			Title:       "Focus on Weak Categories",
			Description: "Consider spending more time on: " + joinCategories(weak),
			Priority:    models.PriorityMedium,
		})
	}
	return recs
}

func joinCategories(cats []models.Category) string {
	if len(cats) > constants.MaxWeakCategories {
		cats = cats[:constants.MaxWeakCategories]
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
