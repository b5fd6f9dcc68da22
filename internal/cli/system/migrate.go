package system

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	runner, err := migrationRunner(ctx.Store)
	if err != nil {
		return err
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}

// migrationRunner builds a runner over the store's open connection.
func migrationRunner(store storage.Provider) (*migration.Runner, error) {
	switch s := store.(type) {
	case *sqlite.Store:
		if s.GetDB() == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		return migration.NewRunner(s.GetDB(), migrations.SQLite(), migration.DialectSQLite), nil
	case *postgres.Store:
		if s.GetDB() == nil {
			return nil, fmt.Errorf("database connection is nil")
		}
		return migration.NewRunner(s.GetDB(), migrations.Postgres(), migration.DialectPostgres), nil
	default:
		return nil, fmt.Errorf("migrations are not supported for %T", store)
	}
}
