package habits

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/gamification"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/validation"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Done    HabitDoneCmd    `cmd:"" help:"Mark a habit completed for today."`
	Miss    HabitMissCmd    `cmd:"" help:"Mark a habit missed."`
	Reset   HabitResetCmd   `cmd:"" help:"Reset a habit to pending."`
	Undo    HabitUndoCmd    `cmd:"" help:"Undo today's completion."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Title       string `arg:"" help:"Habit title."`
	Category    string `help:"Habit category." enum:"health,fitness,work,learning,personal" default:"personal"`
	Description string `help:"Optional description."`
	Time        string `help:"Preferred time of day (HH:MM)."`
	Days        string `help:"Scheduled weekdays, e.g. mon,wed,fri (default: every day)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	weekdays, err := validation.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	h, err := ctx.Tracker.CreateHabit(ctx.Context(), validation.HabitInput{
		UserID:      ctx.UserID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Time:        c.Time,
		Weekdays:    weekdays,
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s %s (ID: %s)\n", models.LookupCategory(h.Category).Icon, h.Title, h.ID)
	return nil
}

type HabitListCmd struct {
	Deleted bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetHabits(ctx.UserID, c.Deleted)
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}

	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		flags := ""
		if !h.IsActive {
			flags = " [DELETED]"
		}
		at := ""
		if h.Time != nil {
			at = " @" + *h.Time
		}
		ctx.Printf("%s %-24s %-9s streak %-3d %s%s  last: %s  (ID: %s)%s\n",
			models.LookupCategory(h.Category).Icon,
			h.Title,
			h.Status,
			h.Streak,
			cli.FormatWeekdays(h.Weekdays),
			at,
			cli.FormatLastCompleted(h.LastCompleted, ctx.Location()),
			h.ID,
			flags,
		)
	}
	return nil
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	h, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	res, err := ctx.Tracker.CompleteHabit(ctx.Context(), h.ID)
	if err != nil {
		return err
	}
	if res.Transition.Noop {
		ctx.Printf("%s is already completed today.\n", h.Title)
		return nil
	}

	ctx.Printf("✓ %s completed (streak %d)\n", res.Habit.Title, res.Habit.Streak)
	if o := res.Outcome; o != nil {
		printOutcome(ctx, o)
	}
	ctx.PrintWarnings(res.Warnings)
	return nil
}

type HabitMissCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitMissCmd) Run(ctx *cli.Context) error {
	return runTransition(ctx, c.Habit, ctx.Tracker.MissHabit, "marked missed")
}

type HabitResetCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitResetCmd) Run(ctx *cli.Context) error {
	return runTransition(ctx, c.Habit, ctx.Tracker.ResetHabit, "reset to pending")
}

type HabitUndoCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitUndoCmd) Run(ctx *cli.Context) error {
	return runTransition(ctx, c.Habit, ctx.Tracker.UndoHabit, "completion undone")
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Ask(fmt.Sprintf("Delete %q?", h.Title), "The habit can be brought back with 'habitual habit restore'.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	warnings, err := ctx.Tracker.DeleteHabit(ctx.Context(), h.ID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	ctx.Printf("Deleted habit: %s (ID: %s)\n", h.Title, h.ID)
	ctx.PrintWarnings(warnings)
	return nil
}

type HabitRestoreCmd struct {
	ID string `arg:"" help:"ID of the deleted habit."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Tracker.RestoreHabit(ctx.Context(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to restore habit: %w", err)
	}
	ctx.Printf("Restored habit: %s (ID: %s)\n", h.Title, h.ID)
	return nil
}

func runTransition(ctx *cli.Context, ref string, fn func(context.Context, string) (tracker.Result, error), verb string) error {
	h, err := ctx.ResolveHabit(ref)
	if err != nil {
		return err
	}
	res, err := fn(ctx.Context(), h.ID)
	if err != nil {
		return err
	}
	if res.Transition.Noop {
		ctx.Printf("%s: nothing to change (%s)\n", h.Title, h.Status)
		return nil
	}
	ctx.Printf("%s %s (streak %d)\n", res.Habit.Title, verb, res.Habit.Streak)
	ctx.PrintWarnings(res.Warnings)
	return nil
}

func printOutcome(ctx *cli.Context, o *gamification.Outcome) {
	ctx.Printf("  +%d points", o.PointsAwarded)
	if o.BonusPoints > 0 {
		ctx.Printf(" (%d habit, %d bonus)", o.HabitPoints, o.BonusPoints)
	}
	ctx.Printf(", %s total\n", humanize.Comma(int64(o.Progress.TotalPoints)))
	if o.PerfectDay {
		ctx.Println("  🌟 Perfect day! Every habit is done.")
	}
	for _, a := range o.Achievements {
		ctx.Printf("  %s Achievement unlocked: %s (+%d)\n", a.Icon, a.Title, a.Points)
	}
	for _, b := range o.Badges {
		ctx.Printf("  %s Badge earned: %s\n", b.Icon, b.Name)
	}
	for _, ch := range o.Challenges {
		ctx.Printf("  🎯 Challenge complete: %s (+%d)\n", ch.Title, ch.Points)
	}
	if o.LeveledUp && o.Rewards != nil {
		ctx.Printf("  ⬆ Level %d: %s\n", o.Progress.Level, o.Rewards.Title)
	}
}
