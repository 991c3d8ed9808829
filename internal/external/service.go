package external

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/BradenHooton/portfolio/internal/config"
	"github.com/BradenHooton/portfolio/internal/content"
)

// DefaultRefreshInterval is how long a snapshot is served before refetching.
const DefaultRefreshInterval = 30 * time.Minute

// Snapshot is the combined feed data served to the site. When a feed comes
// back empty the matching bundled section is attached instead.
type Snapshot struct {
	GitHub         *GitHubStats            `json:"github"`
	Credly         []Badge                 `json:"credly"`
	Medium         []Article               `json:"medium"`
	Certifications []content.Certification `json:"certifications,omitempty"`
	Publications   []content.Publication   `json:"publications,omitempty"`
	LastUpdated    time.Time               `json:"lastUpdated"`
}

// GitHubFeed is satisfied by *GitHubClient.
type GitHubFeed interface {
	Stats(ctx context.Context) (*GitHubStats, error)
}

// CredlyFeed is satisfied by *CredlyClient.
type CredlyFeed interface {
	Badges(ctx context.Context) ([]Badge, error)
}

// MediumFeed is satisfied by *MediumClient.
type MediumFeed interface {
	Articles(ctx context.Context) ([]Article, error)
}

// Service caches the feeds and refreshes them on an interval.
type Service struct {
	github  GitHubFeed
	credly  CredlyFeed
	medium  MediumFeed
	catalog *content.Catalog

	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	snapshot *Snapshot
	group    singleflight.Group
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewService(
	github GitHubFeed,
	credly CredlyFeed,
	medium MediumFeed,
	catalog *content.Catalog,
	interval time.Duration,
	logger *slog.Logger,
) *Service {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Service{
		github:   github,
		credly:   credly,
		medium:   medium,
		catalog:  catalog,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// NewServiceFromConfig wires the three HTTP clients from configuration.
func NewServiceFromConfig(cfg *config.ExternalConfig, catalog *content.Catalog, logger *slog.Logger) *Service {
	return NewService(
		NewGitHubClient(cfg.GitHubBaseURL, cfg.GitHubUser, cfg.Timeout),
		NewCredlyClient(cfg.CredlyBaseURL, cfg.CredlyUser, cfg.Timeout),
		NewMediumClient(cfg.RSSProxyURL, cfg.MediumUser, cfg.Timeout),
		catalog,
		cfg.RefreshInterval,
		logger,
	)
}

// Snapshot returns the cached data, refreshing it first when stale.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	s.mu.RLock()
	cached := s.snapshot
	s.mu.RUnlock()

	if cached != nil && s.now().Sub(cached.LastUpdated) < s.interval {
		return *cached
	}
	return s.Refresh(ctx)
}

// Refresh refetches every feed. Concurrent callers share one fetch.
func (s *Service) Refresh(ctx context.Context) Snapshot {
	v, _, _ := s.group.Do("refresh", func() (any, error) {
		snap := s.fetchAll(context.WithoutCancel(ctx))

		s.mu.Lock()
		s.snapshot = &snap
		s.mu.Unlock()

		return snap, nil
	})
	return v.(Snapshot)
}

func (s *Service) fetchAll(ctx context.Context) Snapshot {
	var (
		stats    *GitHubStats
		badges   []Badge
		articles []Article
	)

	// Feed errors are logged and swallowed so one slow feed never cancels the others.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if stats, err = s.github.Stats(gctx); err != nil {
			s.logger.Warn("github feed unavailable", slog.Any("error", err))
			stats = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if badges, err = s.credly.Badges(gctx); err != nil {
			s.logger.Warn("credly feed unavailable", slog.Any("error", err))
			badges = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if articles, err = s.medium.Articles(gctx); err != nil {
			s.logger.Warn("medium feed unavailable", slog.Any("error", err))
			articles = nil
		}
		return nil
	})
	_ = g.Wait()

	snap := Snapshot{
		GitHub:      stats,
		Credly:      badges,
		Medium:      articles,
		LastUpdated: s.now(),
	}
	if len(snap.Credly) == 0 {
		snap.Credly = []Badge{}
		if s.catalog != nil {
			snap.Certifications = s.catalog.Certifications()
		}
	}
	if len(snap.Medium) == 0 {
		snap.Medium = []Article{}
		if s.catalog != nil {
			snap.Publications = s.catalog.Publications()
		}
	}

	s.logger.Info("external feeds refreshed",
		slog.Bool("github", snap.GitHub != nil),
		slog.Int("credly_badges", len(snap.Credly)),
		slog.Int("medium_articles", len(snap.Medium)),
	)

	return snap
}

// Start refreshes immediately and then on every interval until ctx is done or
// Stop is called. It blocks; run it in its own goroutine.
func (s *Service) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Refresh(ctx)

	for {
		select {
		case <-ticker.C:
			s.Refresh(ctx)
		case <-s.stopCh:
			s.logger.Info("external refresher stopped")
			return
		case <-ctx.Done():
			s.logger.Info("external refresher context cancelled")
			return
		}
	}
}

// Stop signals Start to return. Safe to call more than once.
func (s *Service) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}
