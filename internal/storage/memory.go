package storage

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	touchedAt time.Time
}

// MemoryBackend keeps scopes in process memory. Entries vanish on restart, which matches
// the lifetime of a browser session closely enough for a single-instance deployment.
type MemoryBackend struct {
	mu     sync.RWMutex
	scopes map[string]map[string]memoryEntry
	now    func() time.Time
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		scopes: make(map[string]map[string]memoryEntry),
		now:    time.Now,
	}
}

// NewMemoryStore is a convenience for tests and tools that need a single scope.
func NewMemoryStore() Store {
	return Scoped(NewMemoryBackend(), "default")
}

func (m *MemoryBackend) Get(ctx context.Context, scope, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.scopes[scope][key]
	if !ok {
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (m *MemoryBackend) Set(ctx context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.scopes[scope]
	if !ok {
		entries = make(map[string]memoryEntry)
		m.scopes[scope] = entries
	}
	entries[key] = memoryEntry{value: value, touchedAt: m.now()}
	return nil
}

func (m *MemoryBackend) Remove(ctx context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, ok := m.scopes[scope]
	if !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		delete(m.scopes, scope)
	}
	return nil
}

func (m *MemoryBackend) PurgeIdle(ctx context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var purged int64
	for scope, entries := range m.scopes {
		var latest time.Time
		for _, entry := range entries {
			if entry.touchedAt.After(latest) {
				latest = entry.touchedAt
			}
		}
		if latest.Before(before) {
			purged += int64(len(entries))
			delete(m.scopes, scope)
		}
	}
	return purged, nil
}

// Len returns the number of live scopes.
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scopes)
}

func (m *MemoryBackend) Ping(ctx context.Context) error { return nil }

func (m *MemoryBackend) Close() error {
	return nil
}
