package stats

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
)

type StatsCmd struct {
	Trend        StatsTrendCmd        `cmd:"" help:"Show the daily completion trend."`
	Categories   StatsCategoriesCmd   `cmd:"" help:"Show per-category performance."`
	Productivity StatsProductivityCmd `cmd:"" help:"Show the productivity index."`
	Streaks      StatsStreaksCmd      `cmd:"" help:"Show streak patterns."`
	Compare      StatsCompareCmd      `cmd:"" help:"Compare the productivity index across periods."`
}

// Window is shared by the commands that look back over a number of days.
type Window struct {
	Days int `help:"Window in days (7, 14, 30 or 90). Defaults to the configured window."`
}

func (w Window) resolve(ctx *cli.Context) (int, error) {
	days := w.Days
	if days == 0 && ctx.Config != nil {
		days = ctx.Config.WindowDays
	}
	if !slices.Contains(analytics.ComparisonPeriods, days) {
		return 0, fmt.Errorf("invalid window %d days (valid: %v)", days, analytics.ComparisonPeriods)
	}
	return days, nil
}

func activeHabits(ctx *cli.Context) ([]models.Habit, error) {
	habits, err := ctx.Store.GetHabits(ctx.UserID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	return habits, nil
}

type StatsTrendCmd struct {
	Window
}

func (c *StatsTrendCmd) Run(ctx *cli.Context) error {
	days, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	habits, err := activeHabits(ctx)
	if err != nil {
		return err
	}

	report := analytics.CalculateCompletionTrend(habits, days, ctx.CurrentTime(), ctx.Location())
	for _, p := range report.TrendData {
		ctx.Printf("%s %s %s %d\n", p.Date, p.DayOfWeek.String()[:3], strings.Repeat("█", p.Completed), p.Completed)
	}

	s := report.Summary
	ctx.Println()
	ctx.Printf("Total completed: %d\n", s.TotalCompleted)
	ctx.Printf("Daily average:   %.2f\n", s.Average)
	ctx.Printf("Trend:           %s (%+.2f/day)\n", s.TrendDirection, s.Trend)
	ctx.Printf("Consistency:     %s (σ %.2f)\n", s.Consistency, s.StandardDeviation)
	if len(s.MostProductiveDays) > 0 {
		var names []string
		for _, d := range s.MostProductiveDays {
			names = append(names, fmt.Sprintf("%s (%.2f)", d.DayName, d.Average))
		}
		ctx.Printf("Best days:       %s\n", strings.Join(names, ", "))
	}
	return nil
}

type StatsCategoriesCmd struct{}

func (c *StatsCategoriesCmd) Run(ctx *cli.Context) error {
	habits, err := activeHabits(ctx)
	if err != nil {
		return err
	}

	perf := analytics.AnalyzeCategoryPerformance(habits)
	if len(perf) == 0 {
		ctx.Println("No habits found.")
		return nil
	}
	for _, cat := range models.SortedCategories(perf) {
		p := perf[cat]
		ctx.Printf("%s %-9s %d/%d done  rate %5.1f%%  avg streak %.1f  strength %d",
			models.LookupCategory(cat).Icon, cat, p.Completed, p.Total, p.CompletionRate, p.AverageStreak, p.Strength)
		if p.TimeDistribution != nil {
			ctx.Printf("  prefers %s", p.TimeDistribution.PreferredTime)
		}
		ctx.Println()
	}
	if weak := analytics.WeakCategories(perf); len(weak) > 0 {
		ctx.Printf("\nNeeds attention: %v\n", weak)
	}
	return nil
}

type StatsProductivityCmd struct {
	Window
}

func (c *StatsProductivityCmd) Run(ctx *cli.Context) error {
	days, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	habits, err := activeHabits(ctx)
	if err != nil {
		return err
	}

	res := analytics.CalculateProductivityIndex(habits, days, ctx.CurrentTime(), ctx.Location())
	ctx.Printf("Productivity index (%d days): %.1f\n", days, res.Index)
	ctx.Printf("  completion rate:   %.2f\n", res.Factors.CompletionRate)
	ctx.Printf("  streak bonus:      %.2f\n", res.Factors.StreakBonus)
	ctx.Printf("  consistency bonus: %.2f\n", res.Factors.ConsistencyBonus)
	ctx.Printf("  variety bonus:     %.2f\n", res.Factors.VarietyBonus)
	ctx.Printf("  habits completed:  %d/%d\n", res.Breakdown.CompletedHabits, res.Breakdown.TotalHabits)
	return nil
}

type StatsStreaksCmd struct{}

func (c *StatsStreaksCmd) Run(ctx *cli.Context) error {
	habits, err := activeHabits(ctx)
	if err != nil {
		return err
	}

	p := analytics.AnalyzeStreakPatterns(habits)
	ctx.Printf("Habits with streaks: %d\n", p.TotalHabitsWithStreaks)
	ctx.Printf("Longest streak:      %d\n", p.MaxStreak)
	ctx.Printf("Average streak:      %.1f\n", p.AverageStreak)
	if len(p.TopStreaks) > 0 {
		ctx.Println("\nTop streaks:")
		for i, e := range p.TopStreaks {
			ctx.Printf("  %d. %s %s: %d days\n", i+1, models.LookupCategory(e.Category).Icon, e.Title, e.Streak)
		}
	}
	return nil
}

type StatsCompareCmd struct {
	Window
}

func (c *StatsCompareCmd) Run(ctx *cli.Context) error {
	days, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	habits, err := activeHabits(ctx)
	if err != nil {
		return err
	}

	results := analytics.ComparePeriods(habits, days, ctx.CurrentTime(), ctx.Location())
	periods := make([]int, 0, len(results))
	for p := range results {
		periods = append(periods, p)
	}
	slices.Sort(periods)
	for _, p := range periods {
		marker := ""
		if p == days {
			marker = " *"
		}
		ctx.Printf("%3d days: %5.1f%s\n", p, results[p].Index, marker)
	}
	return nil
}
