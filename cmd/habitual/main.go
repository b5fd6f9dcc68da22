package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/backups"
	"github.com/julianstephens/habitual/internal/cli/habits"
	"github.com/julianstephens/habitual/internal/cli/progress"
	"github.com/julianstephens/habitual/internal/cli/stats"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." default:"${config_file}"`
	DB      string `name:"db" help:"SQLite path or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded; use the OS keyring, ${env_db} or .pgpass instead."`
	User    string `help:"User the commands act on. Defaults to the configured user."`
	Debug   bool   `help:"Log debug output to stderr."`

	Init         system.InitCmd           `cmd:"" help:"Initialize habitual storage."`
	Migrate      system.MigrateCmd        `cmd:"" help:"Run database migrations."`
	Doctor       system.DoctorCmd         `cmd:"" help:"Run health checks and diagnostics."`
	Habit        habits.HabitCmd          `cmd:"" help:"Manage habits and record progress."`
	Rollover     habits.RolloverCmd       `cmd:"" help:"Start a new day: mark missed habits and reset the rest."`
	Stats        stats.StatsCmd           `cmd:"" help:"Show habit analytics."`
	Report       stats.ReportCmd          `cmd:"" help:"Show the full insight report."`
	Progress     progress.ProgressCmd     `cmd:"" help:"Show level and points."`
	Achievements progress.AchievementsCmd `cmd:"" help:"List achievements."`
	Badges       progress.BadgesCmd       `cmd:"" help:"List badges."`
	Challenges   progress.ChallengesCmd   `cmd:"" help:"Show this week's challenges."`
	Notify       system.NotifyCmd         `cmd:"" help:"Deliver due streak reminders."`
	Backup       struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func openStore(target string, source keyring.Source) (storage.Provider, error) {
	if !postgres.IsConnString(target) {
		return sqlite.NewStore(config.ExpandPath(target)), nil
	}
	if _, err := postgres.ValidateConnString(target); err != nil {
		// The keyring is encrypted storage, so a password stored there is allowed.
		if source != keyring.SourceKeyring || !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("%w\n       Store the connection string with 'habitual keyring set', set %s, or use a .pgpass file", err, constants.EnvDBConnection)
		}
	}
	return postgres.New(target), nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Local-first habit tracker with streaks, points and insights"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
			"env_db":      constants.EnvDBConnection,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(config.ExpandPath(CLI.Config)),
		Level:     cfg.LogLevel,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	if CLI.User != "" {
		cfg.UserID = CLI.User
	}
	if err := cfg.Validate(); err != nil {
		apperrors.Fatal(fmt.Errorf("invalid config %s: %w", CLI.Config, err))
	}
	loc, err := cfg.Location()
	if err != nil {
		apperrors.Fatal(err)
	}

	fallback := cfg.Database
	if fallback == "" {
		fallback = constants.DefaultConfigPath
	}
	target, source := keyring.ResolveConnection(CLI.DB, fallback)
	logger.Debug("Resolved database", "source", source, "postgres", postgres.IsConnString(target))

	store, err := openStore(target, source)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
		UserID: cfg.UserID,
		Loc:    loc,
		Tracker: &tracker.Tracker{
			Store: store,
			Reminders: &notifier.StoreReminders{
				Store:  store,
				Config: cfg.Notifications,
				UserID: cfg.UserID,
				Loc:    loc,
			},
			Announcer: notifier.SenderAnnouncer{Sender: notifier.NewTray()},
			Config:    cfg.Notifications,
			Loc:       loc,
		},
		Confirm: cli.PromptConfirm,
	}
	CLI.Init.ConfigPath = CLI.Config

	// Init and keyring commands handle storage themselves
	selected := ""
	if ctx.Selected() != nil {
		selected = ctx.Selected().Name
	}
	if ctx.Selected() != nil && ctx.Selected().Parent != nil && ctx.Selected().Parent.Name == "keyring" {
		selected = "keyring"
	}
	if selected != "init" && selected != "keyring" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
