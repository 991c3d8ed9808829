package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BradenHooton/portfolio/internal/config"
	"github.com/BradenHooton/portfolio/internal/database"
	"github.com/jackc/pgx/v5/stdlib"
)

// Open builds the backend selected by STORE_DRIVER and applies its migrations.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error) {
	switch cfg.Store.Driver {
	case "memory":
		logger.Info("using in-memory scope store")
		return NewMemoryBackend(), nil

	case "sqlite":
		db, err := database.OpenSQLite(cfg.Store.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx, db, "sqlite3", logger); err != nil {
			db.Close()
			return nil, err
		}
		return NewSQLiteBackend(db), nil

	case "postgres":
		db, err := database.NewConnection(&cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		sqlDB := stdlib.OpenDBFromPool(db.Pool)
		defer sqlDB.Close()
		if err := database.Migrate(ctx, sqlDB, "postgres", logger); err != nil {
			db.Close()
			return nil, err
		}
		return NewPostgresBackend(db), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
