package insights

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/habitual/internal/models"
)

func keys(insights []models.Insight) []string {
	var out []string
	for _, in := range insights {
		out = append(out, in.Key)
	}
	return out
}

func weakInputs() Inputs {
	return Inputs{
		Trend: models.TrendReport{Summary: models.TrendSummary{TrendDirection: models.TrendDecreasing}},
		Categories: map[models.Category]models.CategoryPerformance{
			models.CategoryWork:     {Strength: 30},
			models.CategoryHealth:   {Strength: 30},
			models.CategoryLearning: {Strength: 10},
			models.CategoryPersonal: {Strength: 90},
		},
		Streaks:      models.StreakPatterns{MaxStreak: 10},
		Productivity: models.ProductivityIndexResult{Index: 20},
	}
}

func TestFromInputsOrdering(t *testing.T) {
	got := FromInputs(weakInputs())
	want := []string{KeyTrendDecreasing, KeyLowProductivity, KeyWeakCategories, KeyImpressiveStreak}
	if diff := cmp.Diff(want, keys(got)); diff != "" {
		t.Errorf("insight order mismatch (-want +got):\n%s", diff)
	}
	if msg := got[2].Message; msg != "Consider focusing on: learning, health" {
		t.Errorf("weak categories message = %q", msg)
	}
	if msg := got[3].Message; msg != "You have a 10-day streak! Keep the momentum going!" {
		t.Errorf("streak message = %q", msg)
	}
}

func TestFromInputsStableOnTies(t *testing.T) {
	got := FromInputs(Inputs{
		Trend:        models.TrendReport{Summary: models.TrendSummary{TrendDirection: models.TrendIncreasing}},
		Streaks:      models.StreakPatterns{MaxStreak: 7},
		Productivity: models.ProductivityIndexResult{Index: 95},
	})
	want := []string{KeyTrendIncreasing, KeyImpressiveStreak, KeyHighProductivity}
	if diff := cmp.Diff(want, keys(got)); diff != "" {
		t.Errorf("insight order mismatch (-want +got):\n%s", diff)
	}
}

func TestFromInputsNeutral(t *testing.T) {
	got := FromInputs(Inputs{
		Trend:        models.TrendReport{Summary: models.TrendSummary{TrendDirection: models.TrendStable}},
		Streaks:      models.StreakPatterns{MaxStreak: 6},
		Productivity: models.ProductivityIndexResult{Index: 65},
	})
	if len(got) != 0 {
		t.Errorf("expected no insights, got %v", keys(got))
	}
}

func TestGenerateRecommendations(t *testing.T) {
	in := weakInputs()
	recs := GenerateRecommendations(FromInputs(in), in.Categories)

	var titles []string
	for _, r := range recs {
		titles = append(titles, r.Title)
	}
	want := []string{"Review Difficult Habits", "Simplify Your Routine", "Focus on Weak Categories"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
	}
	if recs[2].Type != models.RecommendationStrategy || recs[2].Priority != models.PriorityMedium {
		t.Errorf("strategy recommendation = %+v", recs[2])
	}

	if got := GenerateRecommendations(nil, nil); len(got) != 0 {
		t.Errorf("expected no recommendations, got %+v", got)
	}
}

func TestGenerateReportEmpty(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	report := GenerateReport(nil, 30, now, time.UTC)

	if report.Period != 30 || !report.GeneratedAt.Equal(now) {
		t.Errorf("report header = %d %v", report.Period, report.GeneratedAt)
	}
	if report.Summary != (models.ReportSummary{}) {
		t.Errorf("summary = %+v, want zero", report.Summary)
	}
	if len(report.Trends.TrendData) != 30 {
		t.Errorf("trend days = %d, want 30", len(report.Trends.TrendData))
	}
	if diff := cmp.Diff([]string{KeyLowProductivity}, keys(report.Insights)); diff != "" {
		t.Errorf("insights mismatch (-want +got):\n%s", diff)
	}
	if len(report.Recommendations) != 1 || report.Recommendations[0].Title != "Simplify Your Routine" {
		t.Errorf("recommendations = %+v", report.Recommendations)
	}
}

func TestGenerateReportSummary(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	last := now.Add(-time.Hour)
	habits := []models.Habit{
		{ID: "a", Category: models.CategoryHealth, Status: models.StatusCompleted, Streak: 8, TotalCompletions: 8, LastCompleted: &last, IsActive: true, CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "b", Category: models.CategoryWork, Status: models.StatusPending, IsActive: true, CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "c", Category: models.CategoryWork, Status: models.StatusCompleted, Streak: 40, IsActive: false},
	}

	report := GenerateReport(habits, 30, now, time.UTC)
	want := models.ReportSummary{
		TotalHabits:       3,
		ActiveHabits:      2,
		CompletionRate:    50,
		ProductivityIndex: 66,
		BestStreak:        8,
	}
	if diff := cmp.Diff(want, report.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}
