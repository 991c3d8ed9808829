package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BradenHooton/portfolio/internal/auth"
	"github.com/BradenHooton/portfolio/internal/background"
	"github.com/BradenHooton/portfolio/internal/config"
	"github.com/BradenHooton/portfolio/internal/content"
	"github.com/BradenHooton/portfolio/internal/external"
	"github.com/BradenHooton/portfolio/internal/guard"
	"github.com/BradenHooton/portfolio/internal/handlers"
	middlewareCustom "github.com/BradenHooton/portfolio/internal/middleware"
	"github.com/BradenHooton/portfolio/internal/routes"
	"github.com/BradenHooton/portfolio/internal/services"
	"github.com/BradenHooton/portfolio/internal/storage"
	pkghttp "github.com/BradenHooton/portfolio/pkg/http"
	pkglogger "github.com/BradenHooton/portfolio/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Server.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		slog.String("env", cfg.Server.Env),
		slog.String("store", cfg.Store.Driver))

	if cfg.Admin.UsesDefaultCredentials() {
		logger.Warn("observatory is using the development credentials; set ADMIN_USERNAME and ADMIN_PASSWORD")
	}

	// Initialize scope store
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	backend, err := storage.Open(startupCtx, cfg, logger)
	startupCancel()
	if err != nil {
		logger.Error("failed to open scope store", slog.Any("error", err))
		os.Exit(1)
	}
	defer backend.Close()

	// Bundled portfolio content
	catalog, err := content.Load()
	if err != nil {
		logger.Error("failed to load portfolio content", slog.Any("error", err))
		os.Exit(1)
	}

	ipConfig := pkghttp.NewIPConfig(cfg.Server.TrustedProxies)
	auditLogger := pkglogger.NewAuditLogger(logger)

	// Observatory guard
	guards := guard.NewFactory(backend, guard.Config{
		Username:       cfg.Admin.Username,
		Password:       cfg.Admin.Password,
		PasswordHash:   cfg.Admin.PasswordHash,
		MaxAttempts:    cfg.Admin.MaxAttempts,
		LockDuration:   cfg.Admin.LockDuration,
		SessionTimeout: cfg.Admin.SessionTimeout,
	}, guard.WithLogger(logger), guard.WithAuditLogger(auditLogger))

	// Timing delay for failed logins
	timingDelay := auth.NewTimingDelay(auth.TimingConfig{
		BaseDelayMs:   cfg.Admin.TimingDelayBaseMs,
		RandomDelayMs: cfg.Admin.TimingDelayRandomMs,
	})

	// External feeds
	externalService := external.NewServiceFromConfig(&cfg.External, catalog, logger)

	// Contact mail
	var mailer services.Mailer
	if cfg.Email.Enabled {
		sesCtx, sesCancel := context.WithTimeout(context.Background(), 10*time.Second)
		sesMailer, err := services.NewSESMailer(sesCtx, cfg.Email.AWSRegion, cfg.Email.FromAddress, logger)
		sesCancel()
		if err != nil {
			logger.Error("failed to initialize email service", slog.Any("error", err))
			os.Exit(1)
		}
		mailer = sesMailer
	} else {
		mailer = services.NewLogMailer(logger)
	}
	contactService := services.NewContactService(mailer, cfg.Email.ToAddress, logger)

	// Initialize handlers
	portfolioHandler := handlers.NewPortfolioHandler(catalog, externalService)
	observatoryHandler := handlers.NewObservatoryHandler(guards, catalog, timingDelay, auditLogger, ipConfig, logger)
	contactHandler := handlers.NewContactHandler(contactService, logger)

	cleanupManager := background.NewCleanupManager(backend, logger, cfg.Store.CleanupInterval, cfg.Store.ScopeIdleTTL)

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{
		Env:          cfg.Server.Env,
		HiddenPrefix: cfg.Admin.RoutePrefix,
	}))
	router.Use(middlewareCustom.CORS(middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)))
	router.Use(middlewareCustom.SecureLogger(logger, ipConfig))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(
		router,
		portfolioHandler,
		observatoryHandler,
		contactHandler,
		&cfg.Admin,
		auth.CookieConfig{Secure: cfg.Store.CookieSecure, SameSite: "lax"},
		ipConfig,
	)

	// Health check against the scope store
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := backend.Ping(ctx); err != nil {
			pkghttp.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "store": "down"})
			return
		}
		pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy", "store": "up"})
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start background tasks
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	go cleanupManager.Start(bgCtx)
	go externalService.Start(bgCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	bgCancel()
	cleanupManager.Stop()
	externalService.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
