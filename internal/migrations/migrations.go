// Package migrations embeds the goose SQL migrations for every supported
// storage dialect and applies them on startup.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Dialect selects the migration set and the goose dialect.
type Dialect string

const (
	// DialectPostgres applies the PostgreSQL schema.
	DialectPostgres Dialect = "postgres"
	// DialectSQLite applies the SQLite schema.
	DialectSQLite Dialect = "sqlite"
)

// newProvider is a seam for tests.
var newProvider = goose.NewProvider

// Up applies all pending migrations of the given dialect to db.
func Up(ctx context.Context, db *sql.DB, dialect Dialect, log *slog.Logger) error {
	var gooseDialect goose.Dialect
	switch dialect {
	case DialectPostgres:
		gooseDialect = goose.DialectPostgres
	case DialectSQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return fmt.Errorf("unsupported migration dialect: %s", dialect)
	}

	fsys, err := fs.Sub(files, string(dialect))
	if err != nil {
		return fmt.Errorf("failed to open migrations for %s: %w", dialect, err)
	}

	provider, err := newProvider(gooseDialect, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, res := range results {
		log.InfoContext(ctx, "Migration applied", "version", res.Source.Version, "duration", res.Duration)
	}

	return nil
}
