package progress

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/gamification"
)

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	p, stats, err := ctx.Tracker.Progress(ctx.Context(), ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	lp := stats.LevelProgress
	ctx.Printf("Level %d: %s\n", stats.CurrentLevel, stats.LevelTitle)
	ctx.Printf("%s %d%% (%s/%s pts to level %d)\n",
		progressBar(lp.Percentage, 20), lp.Percentage,
		humanize.Comma(int64(lp.Progress)), humanize.Comma(int64(lp.Total)), stats.CurrentLevel+1)
	ctx.Printf("Points:       %s (%s)\n", humanize.Comma(int64(stats.TotalPoints)), stats.Rank)
	if m := stats.NextMilestone; m != nil {
		ctx.Printf("Next:         %s pts milestone, %s to go\n", humanize.Comma(int64(m.Points)), humanize.Comma(int64(m.Remaining)))
	}
	ctx.Printf("Achievements: %d/%d\n", stats.Achievements, len(gamification.Achievements()))
	ctx.Printf("Badges:       %d/%d\n", stats.Badges, len(gamification.Badges()))
	ctx.Printf("Completions:  %s, best streak %d, %s perfect days\n",
		humanize.Comma(int64(p.Stats.TotalHabitsCompleted)), p.Stats.BestStreak, humanize.Comma(int64(p.Stats.PerfectDays)))
	if !p.LastUpdated.IsZero() {
		ctx.Printf("Updated:      %s\n", humanize.RelTime(p.LastUpdated, ctx.CurrentTime(), "ago", "from now"))
	}
	return nil
}

func progressBar(percentage, width int) string {
	filled := max(0, min(width, percentage*width/100))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

type AchievementsCmd struct {
	All bool `help:"Include locked achievements."`
}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	p, _, err := ctx.Tracker.Progress(ctx.Context(), ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	shown := 0
	for _, a := range gamification.Achievements() {
		unlocked := slices.Contains(p.Achievements, a.ID)
		if !unlocked && !c.All {
			continue
		}
		mark := "✓"
		if !unlocked {
			mark = "·"
		}
		ctx.Printf("%s %s %-22s %4d pts  %s\n", mark, a.Icon, a.Title, a.Points, a.Description)
		shown++
	}
	if shown == 0 {
		ctx.Println("No achievements unlocked yet.")
	}
	return nil
}

type BadgesCmd struct {
	All bool `help:"Include badges not yet earned."`
}

func (c *BadgesCmd) Run(ctx *cli.Context) error {
	p, _, err := ctx.Tracker.Progress(ctx.Context(), ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	shown := 0
	for _, b := range gamification.Badges() {
		earned := slices.Contains(p.Badges, b.ID)
		if !earned && !c.All {
			continue
		}
		mark := "✓"
		if !earned {
			mark = "·"
		}
		ctx.Printf("%s %s %-18s %s\n", mark, b.Icon, b.Name, b.Requirement)
		shown++
	}
	if shown == 0 {
		ctx.Println("No badges earned yet.")
	}
	return nil
}

type ChallengesCmd struct{}

func (c *ChallengesCmd) Run(ctx *cli.Context) error {
	challenges, err := ctx.Tracker.Challenges(ctx.Context(), ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to load challenges: %w", err)
	}
	if len(challenges) == 0 {
		ctx.Println("No challenges this week.")
		return nil
	}

	ctx.Printf("Week of %s\n", challenges[0].WeekOf)
	for _, ch := range challenges {
		mark := " "
		if ch.Completed {
			mark = "✓"
		}
		ctx.Printf("[%s] %-24s %d/%d  +%d pts  %s\n", mark, ch.Title, min(ch.Progress, ch.Target), ch.Target, ch.Points, ch.Description)
	}
	if gamification.AllCompleted(challenges) {
		ctx.Println("All challenges complete! 🎉")
	}
	return nil
}

