// Package migrations embeds the versioned schema files for each supported database.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// SQLite returns the sqlite migration files rooted at their directory.
func SQLite() fs.FS {
	sub, _ := fs.Sub(FS, "sqlite")
	return sub
}

// Postgres returns the postgres migration files rooted at their directory.
func Postgres() fs.FS {
	sub, _ := fs.Sub(FS, "postgres")
	return sub
}
