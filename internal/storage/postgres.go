package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BradenHooton/portfolio/internal/database"
	"github.com/BradenHooton/portfolio/internal/models"
)

// PostgresBackend stores scopes in Postgres so several API replicas share guard state.
type PostgresBackend struct {
	db *database.DB
}

func NewPostgresBackend(db *database.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (p *PostgresBackend) Get(ctx context.Context, scope, key string) (string, error) {
	var value string
	err := p.db.Pool.QueryRow(ctx,
		`SELECT value FROM scope_entries WHERE scope = $1 AND key = $2`,
		scope, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(database.MapPostgresError(err), models.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("postgres get %s: %w", key, err)
	}
	return value, nil
}

func (p *PostgresBackend) Set(ctx context.Context, scope, key, value string) error {
	_, err := p.db.Pool.Exec(ctx, `
		INSERT INTO scope_entries (scope, key, value, touched_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (scope, key) DO UPDATE SET value = EXCLUDED.value, touched_at = EXCLUDED.touched_at
	`, scope, key, value)
	if err != nil {
		return fmt.Errorf("postgres set %s: %w", key, database.MapPostgresError(err))
	}
	return nil
}

func (p *PostgresBackend) Remove(ctx context.Context, scope, key string) error {
	if _, err := p.db.Pool.Exec(ctx,
		`DELETE FROM scope_entries WHERE scope = $1 AND key = $2`, scope, key,
	); err != nil {
		return fmt.Errorf("postgres remove %s: %w", key, err)
	}
	return nil
}

func (p *PostgresBackend) PurgeIdle(ctx context.Context, before time.Time) (int64, error) {
	tag, err := p.db.Pool.Exec(ctx, `
		DELETE FROM scope_entries
		WHERE scope IN (
			SELECT scope FROM scope_entries
			GROUP BY scope
			HAVING MAX(touched_at) < $1
		)
	`, before)
	if err != nil {
		return 0, fmt.Errorf("postgres purge: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (p *PostgresBackend) Ping(ctx context.Context) error {
	return p.db.HealthCheck(ctx)
}

func (p *PostgresBackend) Close() error {
	p.db.Close()
	return nil
}
