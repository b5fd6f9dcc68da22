package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/config"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
	Config  *config.Config
	UserID  string
	Loc     *time.Location
	Now     func() time.Time
	Out     io.Writer
	// Confirm asks a yes/no question. Commands treat a nil Confirm as yes.
	Confirm func(title, description string) (bool, error)
}

// Context returns a background context for collaborator calls.
func (c *Context) Context() context.Context {
	return context.Background()
}

func (c *Context) Stdout() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

func (c *Context) CurrentTime() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Context) Location() *time.Location {
	if c.Loc != nil {
		return c.Loc
	}
	return time.Local
}

// Ask runs Confirm, answering yes when no prompt is configured.
func (c *Context) Ask(title, description string) (bool, error) {
	if c.Confirm == nil {
		return true, nil
	}
	return c.Confirm(title, description)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only SQLite stores are backed up.
func (c *Context) PerformAutomaticBackup() {
	if c.Config != nil && !c.Config.AutoBackup {
		return
	}
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveHabit finds one of the user's habits by id or by case-insensitive
// title. Deleted habits are only matched by id.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	if h, err := c.Store.GetHabit(ref); err == nil {
		if h.UserID != c.UserID {
			return models.Habit{}, fmt.Errorf("habit %q not found", ref)
		}
		return h, nil
	}

	habits, err := c.Store.GetHabits(c.UserID, false)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to load habits: %w", err)
	}
	var matches []models.Habit
	for _, h := range habits {
		if strings.EqualFold(h.Title, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, fmt.Errorf("habit %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, fmt.Errorf("%d habits are titled %q, use the habit ID", len(matches), ref)
	}
}

// FormatWeekdays renders a schedule like "Mon,Wed,Fri", or "daily" when empty.
func FormatWeekdays(days []time.Weekday) string {
	if len(days) == 0 || len(days) == 7 {
		return "daily"
	}
	sorted := slices.Clone(days)
	slices.Sort(sorted)
	names := make([]string, len(sorted))
	for i, d := range sorted {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ",")
}

// FormatLastCompleted renders a completion time as a calendar date in loc.
func FormatLastCompleted(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "never"
	}
	return utils.DateKey(*t, loc)
}

// PrintWarnings reports collaborator failures without failing the command.
func (c *Context) PrintWarnings(warnings []error) {
	for _, w := range warnings {
		if apperrors.IsCollaborator(w) {
			logger.Warn("Collaborator call failed", "error", w)
		} else {
			logger.Warn("Command warning", "error", w)
		}
		c.Printf("⚠ %v\n", w)
	}
}
