package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/notifier"
)

type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
	// Sender overrides the tray sender.
	Sender notifier.Sender `kong:"-"`
}

// printSender writes notifications to the command output.
type printSender struct {
	ctx *cli.Context
}

func (s printSender) Send(_ context.Context, n notifier.Notification) error {
	s.ctx.Println("[DryRun] " + n.String())
	return nil
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	sender := c.Sender
	switch {
	case c.DryRun:
		sender = printSender{ctx: ctx}
	case sender == nil:
		sender = notifier.NewTray()
	}

	cfg := config.DefaultConfig().Notifications
	if ctx.Config != nil {
		cfg = ctx.Config.Notifications
	}

	now := ctx.CurrentTime().In(ctx.Location())
	res, err := notifier.Dispatch(ctx.Context(), ctx.Store, sender, cfg, ctx.UserID, now)
	if c.DryRun || res.Sent+res.Deferred+res.Dropped > 0 {
		ctx.Printf("Reminders: %d sent, %d deferred (quiet hours), %d dropped\n", res.Sent, res.Deferred, res.Dropped)
	}
	if err != nil {
		return fmt.Errorf("failed to deliver reminders: %w", err)
	}
	return nil
}
