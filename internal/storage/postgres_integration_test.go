//go:build integration

package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/BradenHooton/portfolio/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresBackend_Contract(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("portfolio"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	sqlDB := stdlib.OpenDBFromPool(pool)
	require.NoError(t, database.Migrate(ctx, sqlDB, "postgres", logger))
	require.NoError(t, sqlDB.Close())

	backend := NewPostgresBackend(database.NewFromPool(pool, logger))
	t.Cleanup(func() { _ = backend.Close() })

	runBackendContract(t, func(t *testing.T) Backend {
		_, err := pool.Exec(ctx, `TRUNCATE scope_entries`)
		require.NoError(t, err)
		return backend
	})
}
