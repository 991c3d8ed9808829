// Package storage holds the per-browser-session key/value records used by the
// observatory guard. A Backend stores entries for many scopes; Scoped narrows it to
// the single scope a request belongs to.
package storage

import (
	"context"
	"time"

	"github.com/BradenHooton/portfolio/internal/models"
)

// ErrNotFound is returned by Get when the key is absent from the scope.
var ErrNotFound = models.ErrNotFound

// Store is the get/set/remove contract the guard is written against.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove is idempotent: removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Backend persists entries for every scope.
type Backend interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
	Remove(ctx context.Context, scope, key string) error
	// PurgeIdle drops every scope whose most recent write is older than before.
	PurgeIdle(ctx context.Context, before time.Time) (int64, error)
	// Ping reports whether the backend can serve requests.
	Ping(ctx context.Context) error
	Close() error
}

type scoped struct {
	backend Backend
	scope   string
}

// Scoped returns the Store view of one scope.
func Scoped(backend Backend, scope string) Store {
	return &scoped{backend: backend, scope: scope}
}

func (s *scoped) Get(ctx context.Context, key string) (string, error) {
	return s.backend.Get(ctx, s.scope, key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.backend.Set(ctx, s.scope, key, value)
}

func (s *scoped) Remove(ctx context.Context, key string) error {
	return s.backend.Remove(ctx, s.scope, key)
}
