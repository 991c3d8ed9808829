package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

// Migrate applies the embedded migrations for dialect ("postgres" or "sqlite3").
func Migrate(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) error {
	dir, err := migrationDir(dialect)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(log.New(io.Discard, "", 0))

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("unsupported migration dialect %q: %w", dialect, err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	logger.Info("migrations applied", slog.String("dialect", dialect), slog.Int64("version", version))
	return nil
}

func migrationDir(dialect string) (string, error) {
	switch dialect {
	case "postgres":
		return "migrations/postgres", nil
	case "sqlite3":
		return "migrations/sqlite", nil
	default:
		return "", fmt.Errorf("no migrations for dialect %q", dialect)
	}
}
