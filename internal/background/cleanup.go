package background

import (
	"context"
	"log/slog"
	"time"

	"github.com/BradenHooton/portfolio/internal/storage"
)

// CleanupManager periodically drops scopes that have been idle longer than the TTL
type CleanupManager struct {
	backend  storage.Backend
	logger   *slog.Logger
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

// NewCleanupManager creates a new cleanup manager
func NewCleanupManager(
	backend storage.Backend,
	logger *slog.Logger,
	interval time.Duration,
	ttl time.Duration,
) *CleanupManager {
	return &CleanupManager{
		backend:  backend,
		logger:   logger,
		interval: interval,
		ttl:      ttl,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic cleanup task
func (cm *CleanupManager) Start(ctx context.Context) {
	ticker := time.NewTicker(cm.interval)
	defer ticker.Stop()

	// Run immediately on startup
	cm.runCleanup(ctx)

	for {
		select {
		case <-ticker.C:
			cm.runCleanup(ctx)
		case <-cm.stopCh:
			cm.logger.Info("cleanup manager stopped")
			return
		case <-ctx.Done():
			cm.logger.Info("cleanup manager context cancelled")
			return
		}
	}
}

// runCleanup purges idle scopes from the store
func (cm *CleanupManager) runCleanup(ctx context.Context) {
	cleanupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cutoff := cm.now().Add(-cm.ttl)
	purged, err := cm.backend.PurgeIdle(cleanupCtx, cutoff)
	if err != nil {
		cm.logger.Error("failed to purge idle scopes", slog.Any("error", err))
		return
	}

	if purged > 0 {
		cm.logger.Info("idle scope cleanup completed",
			slog.Int64("entries_deleted", purged),
			slog.Time("cutoff", cutoff))
	}
}

// Stop signals the cleanup manager to stop
func (cm *CleanupManager) Stop() {
	close(cm.stopCh)
}
