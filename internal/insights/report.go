package insights

import (
	"time"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/models"
)

// GenerateReport bundles every analysis for the window into one record.
func GenerateReport(habits []models.Habit, window int, now time.Time, loc *time.Location) models.Report {
	in := Analyze(habits, window, now, loc)
	found := FromInputs(in)
	summary := analytics.Summarize(habits)

	return models.Report{
		Period:      window,
		GeneratedAt: now,
		Summary: models.ReportSummary{
			TotalHabits:       len(habits),
			ActiveHabits:      summary.TotalHabits,
			CompletionRate:    float64(summary.ProgressPercentage),
			ProductivityIndex: in.Productivity.Index,
			BestStreak:        in.Streaks.MaxStreak,
		},
		Trends:          in.Trend,
		Categories:      in.Categories,
		Streaks:         in.Streaks,
		Productivity:    in.Productivity,
		Insights:        found,
		Recommendations: GenerateRecommendations(found, in.Categories),
	}
}
