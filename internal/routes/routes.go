package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/BradenHooton/portfolio/internal/auth"
	"github.com/BradenHooton/portfolio/internal/config"
	"github.com/BradenHooton/portfolio/internal/handlers"
	"github.com/BradenHooton/portfolio/internal/middleware"
	pkghttp "github.com/BradenHooton/portfolio/pkg/http"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	portfolioHandler *handlers.PortfolioHandler,
	observatoryHandler *handlers.ObservatoryHandler,
	contactHandler *handlers.ContactHandler,
	adminCfg *config.AdminConfig,
	cookieConfig auth.CookieConfig,
	ipConfig *pkghttp.IPConfig,
) {
	loginLimit := middleware.DefaultLoginRateLimit(ipConfig)
	if adminCfg.LoginRequestsPerMin > 0 {
		loginLimit.RequestsPerMinute = adminCfg.LoginRequestsPerMin
	}
	contactLimit := middleware.DefaultContactRateLimit(ipConfig)
	scope := auth.ScopeMiddleware(cookieConfig)

	router.Get("/robots.txt", handlers.Robots(adminCfg.RoutePrefix))

	// Public portfolio API
	router.Route("/api", func(r chi.Router) {
		r.Get("/profile", portfolioHandler.GetProfile)
		r.Get("/sections", portfolioHandler.ListSections)
		r.Get("/sections/{name}", portfolioHandler.GetSection)
		r.Get("/external", portfolioHandler.GetExternal)
		r.With(middleware.RateLimitByIP(contactLimit)).Post("/contact", contactHandler.Submit)

		// Forcing a refetch is reserved for the observatory session
		r.With(scope, observatoryHandler.RequireSession).Post("/external/refresh", portfolioHandler.RefreshExternal)
	})

	// Unlisted observatory
	router.Route(adminCfg.RoutePrefix, func(r chi.Router) {
		r.Use(scope)

		r.Get("/session", observatoryHandler.Session)
		r.Get("/lock", observatoryHandler.Lock)
		r.With(middleware.RateLimitByIP(loginLimit)).Post("/login", observatoryHandler.Login)
		r.Post("/logout", observatoryHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(observatoryHandler.RequireSession)
			r.Get("/data", observatoryHandler.Data)
			r.Get("/data/{section}", observatoryHandler.DataSection)
			r.Get("/export.json", observatoryHandler.ExportJSON)
			r.Get("/export.ts", observatoryHandler.ExportTypeScript)
		})
	})
}
