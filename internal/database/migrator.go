package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"

	"github.com/deppfellow/posts-api/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// versionTable records the applied schema version.
const versionTable = "schema_version"

// Migrate brings the schema up to the latest embedded migration.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, DSN(cfg.Database))
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	if err := LoadMigrations(m); err != nil {
		return err
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	to := len(m.Migrations)
	if from == int32(to) {
		logger.Info().Int("version", to).Msg("database schema up to date")
	} else {
		logger.Info().Int32("from", from).Int("to", to).Msg("migrated database schema")
	}
	return nil
}

// LoadMigrations feeds the embedded SQL files to m.
func LoadMigrations(m *tern.Migrator) error {
	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}
	return nil
}
