package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy habits and progress from."`
	// ConfigPath is set by main so init can write a default config file.
	ConfigPath string `kong:"-"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized habitual storage at: %s\n", ctx.Store.GetConfigPath())

	if c.ConfigPath != "" {
		path := config.ExpandPath(c.ConfigPath)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			cfg := ctx.Config
			if cfg == nil {
				cfg = config.DefaultConfig()
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			ctx.Printf("Wrote default config to: %s\n", path)
		}
	}

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}
	return nil
}

func openSource(source string) (storage.Provider, error) {
	if !postgres.IsConnString(source) {
		return sqlite.NewStore(config.ExpandPath(source)), nil
	}
	if _, err := postgres.ValidateConnString(source); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
		}
		return nil, err
	}
	return postgres.New(source), nil
}

// copyData copies the user's habits, progress, queued reminders and rollover
// marker from the source store.
func (c *InitCmd) copyData(ctx *cli.Context) error {
	source, err := openSource(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	habits, err := source.GetHabits(ctx.UserID, true)
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	for _, h := range habits {
		if err := ctx.Store.AddHabit(h); err != nil {
			return fmt.Errorf("failed to add habit %s: %w", h.ID, err)
		}
	}
	ctx.Printf("  Copied %d habits\n", len(habits))

	progress, err := source.LoadProgress(ctx.UserID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		ctx.Println("  No progress to copy")
	case err != nil:
		return fmt.Errorf("failed to get progress from source: %w", err)
	default:
		if err := ctx.Store.SaveProgress(ctx.UserID, progress); err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}
		ctx.Printf("  Copied progress (%d points)\n", progress.TotalPoints)
	}

	reminders, err := source.GetReminders(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to get reminders from source: %w", err)
	}
	for _, r := range reminders {
		if err := ctx.Store.AddReminder(r); err != nil {
			return fmt.Errorf("failed to add reminder %s: %w", r.ID, err)
		}
	}
	ctx.Printf("  Copied %d reminders\n", len(reminders))

	key := storage.RolloverKey(ctx.UserID)
	if last, err := source.GetSetting(key); err == nil && last != "" {
		if err := ctx.Store.SetSetting(key, last); err != nil {
			return fmt.Errorf("failed to copy rollover marker: %w", err)
		}
	}
	return nil
}
