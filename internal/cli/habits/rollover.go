package habits

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
)

type RolloverCmd struct{}

func (c *RolloverCmd) Run(ctx *cli.Context) error {
	res, err := ctx.Tracker.Rollover(ctx.Context(), ctx.UserID)
	if err != nil {
		return fmt.Errorf("rollover failed: %w", err)
	}
	if res.Skipped {
		ctx.Printf("Already rolled over for %s.\n", res.Date)
		return nil
	}

	ctx.Printf("Started %s: %d missed, %d reset to pending\n", res.Date, len(res.Missed), len(res.Reset))
	ctx.PrintWarnings(res.Warnings)
	ctx.PerformAutomaticBackup()
	return nil
}
