package stats

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Bold(true).
			Padding(0, 1)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(20)
	insightStyle = map[models.InsightType]lipgloss.Style{
		models.InsightSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.InsightWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.InsightInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
)

type ReportCmd struct {
	Window
	JSON bool `help:"Print the report as JSON."`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	days, err := c.resolve(ctx)
	if err != nil {
		return err
	}

	var (
		report models.Report
		stats  models.GamificationStats
	)
	g, gctx := errgroup.WithContext(ctx.Context())
	g.Go(func() error {
		var err error
		report, err = ctx.Tracker.Report(gctx, ctx.UserID, days)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		_, stats, err = ctx.Tracker.Progress(gctx, ctx.UserID)
		if err != nil {
			return fmt.Errorf("failed to load progress: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(ctx.Stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	ctx.Println(RenderReport(report, stats))
	return nil
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

// RenderReport lays out a report for the terminal.
func RenderReport(r models.Report, stats models.GamificationStats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("habitual report · last %d days", r.Period)))
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Summary"))
	b.WriteString("\n")
	s := r.Summary
	b.WriteString(row("Habits", fmt.Sprintf("%d active of %d", s.ActiveHabits, s.TotalHabits)) + "\n")
	b.WriteString(row("Completion rate", fmt.Sprintf("%.1f%%", s.CompletionRate)) + "\n")
	b.WriteString(row("Productivity", fmt.Sprintf("%.1f", s.ProductivityIndex)) + "\n")
	b.WriteString(row("Best streak", fmt.Sprintf("%d days", s.BestStreak)) + "\n")
	b.WriteString(row("Trend", fmt.Sprintf("%s, %s consistency", r.Trends.Summary.TrendDirection, r.Trends.Summary.Consistency)) + "\n")
	b.WriteString(row("Level", fmt.Sprintf("%d %s (%s pts, %s)", stats.CurrentLevel, stats.LevelTitle, humanize.Comma(int64(stats.TotalPoints)), stats.Rank)) + "\n")

	if len(r.Categories) > 0 {
		b.WriteString(headingStyle.Render("Categories"))
		b.WriteString("\n")
		for _, cat := range models.SortedCategories(r.Categories) {
			p := r.Categories[cat]
			label := models.LookupCategory(cat).Icon + " " + string(cat)
			color := lipgloss.NewStyle().Foreground(lipgloss.Color(models.LookupCategory(cat).Color))
			b.WriteString(row(label, color.Render(fmt.Sprintf("%3.0f%% done, strength %d", p.CompletionRate, p.Strength))) + "\n")
		}
	}

	if len(r.Insights) > 0 {
		b.WriteString(headingStyle.Render("Insights"))
		b.WriteString("\n")
		for _, in := range r.Insights {
			b.WriteString(insightStyle[in.Type].Render("• "+in.Title) + " " + in.Message + "\n")
		}
	}

	if len(r.Recommendations) > 0 {
		b.WriteString(headingStyle.Render("Recommendations"))
		b.WriteString("\n")
		for _, rec := range r.Recommendations {
			b.WriteString(fmt.Sprintf("[%s] %s: %s\n", rec.Priority, rec.Title, rec.Description))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
