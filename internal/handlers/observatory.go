package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BradenHooton/portfolio/internal/auth"
	"github.com/BradenHooton/portfolio/internal/content"
	"github.com/BradenHooton/portfolio/internal/guard"
	"github.com/BradenHooton/portfolio/internal/models"
	pkghttp "github.com/BradenHooton/portfolio/pkg/http"
	pkglogger "github.com/BradenHooton/portfolio/pkg/logger"
)

const maxLoginBodyBytes = 4 << 10

// GuardFactory hands out a guard bound to one scope. Satisfied by *guard.Factory.
type GuardFactory interface {
	ForScope(scope string, extra ...guard.Option) *guard.Guard
}

// CatalogReader is the read side of the bundled portfolio content.
type CatalogReader interface {
	Bundle() content.Bundle
	Profile() content.Profile
	Sections() []string
	Section(name string) (any, error)
	JSON() ([]byte, error)
	TypeScript(now time.Time) (string, error)
}

// ObservatoryHandler serves the hidden admin view: login, logout and the
// data dashboard with its exports.
type ObservatoryHandler struct {
	guards   GuardFactory
	catalog  CatalogReader
	timing   *auth.TimingDelay
	audit    *pkglogger.AuditLogger
	ipConfig *pkghttp.IPConfig
	logger   *slog.Logger
	now      func() time.Time
}

// NewObservatoryHandler creates a new ObservatoryHandler. timing and audit may be nil.
func NewObservatoryHandler(
	guards GuardFactory,
	catalog CatalogReader,
	timing *auth.TimingDelay,
	audit *pkglogger.AuditLogger,
	ipConfig *pkghttp.IPConfig,
	logger *slog.Logger,
) *ObservatoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ObservatoryHandler{
		guards:   guards,
		catalog:  catalog,
		timing:   timing,
		audit:    audit,
		ipConfig: ipConfig,
		logger:   logger,
		now:      time.Now,
	}
}

// ObservatoryLoginRequest represents the request body for the observatory login form.
// Field lengths are bounded by maxLoginBodyBytes.
type ObservatoryLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ObservatoryLoginResponse is returned on a successful login
type ObservatoryLoginResponse struct {
	Success bool `json:"success"`
}

// SectionsResponse lists the available section names
type SectionsResponse struct {
	Sections []string `json:"sections"`
}

// guardFor builds the guard for the request's scope. Returns nil when the
// request carries no scope.
func (h *ObservatoryHandler) guardFor(r *http.Request) *guard.Guard {
	scope := auth.GetScope(r)
	if scope == "" {
		return nil
	}
	ipAddress := pkghttp.ExtractClientIP(r, h.ipConfig)
	return h.guards.ForScope(scope, guard.WithClient(scope, ipAddress, r.UserAgent()))
}

// RequireSession lets a request through only while its scope holds a live
// session, sliding the session on every pass.
func (h *ObservatoryHandler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g := h.guardFor(r)
		if g == nil || !g.ValidateSession(r.Context()) {
			pkghttp.WriteUnauthorized(w, "Login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Session reports the guard state for the login view
// @Summary Observatory session status
// @Produce json
// @Success 200 {object} models.GuardStatus
// @Failure 401 {object} ErrorResponse
// @Router /{prefix}/session [get]
func (h *ObservatoryHandler) Session(w http.ResponseWriter, r *http.Request) {
	g := h.guardFor(r)
	if g == nil {
		pkghttp.WriteUnauthorized(w, "Login required")
		return
	}

	// Visiting the view counts as activity.
	g.ValidateSession(r.Context())
	pkghttp.WriteJSON(w, http.StatusOK, g.Status(r.Context()))
}

// Lock reports whether logins are currently refused
// @Summary Observatory lock status
// @Produce json
// @Success 200 {object} models.LockStatus
// @Router /{prefix}/lock [get]
func (h *ObservatoryHandler) Lock(w http.ResponseWriter, r *http.Request) {
	g := h.guardFor(r)
	if g == nil {
		pkghttp.WriteJSON(w, http.StatusOK, models.LockStatus{})
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, g.IsLockedOut(r.Context()))
}

// Login handles the observatory login form
// @Summary Observatory login
// @Accept json
// @Param request body ObservatoryLoginRequest true "Login request"
// @Produce json
// @Success 200 {object} ObservatoryLoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /{prefix}/login [post]
func (h *ObservatoryHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ObservatoryLoginRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	g := h.guardFor(r)
	if g == nil {
		pkghttp.WriteUnauthorized(w, "Login required")
		return
	}

	result := g.Login(r.Context(), req.Username, req.Password)
	if !result.Success {
		if err := h.timing.WaitFromContext(r.Context(), start, false); err != nil {
			return
		}
		if result.RetryAfter > 0 {
			pkghttp.WriteTooManyRequests(w, result.Error, result.RetryAfter)
			return
		}
		pkghttp.WriteUnauthorized(w, result.Error)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, ObservatoryLoginResponse{Success: true})
}

// Logout ends the observatory session
// @Summary Observatory logout
// @Produce json
// @Success 200 {object} ObservatoryLoginResponse
// @Router /{prefix}/logout [post]
func (h *ObservatoryHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if g := h.guardFor(r); g != nil {
		g.Logout(r.Context())
	}
	pkghttp.WriteJSON(w, http.StatusOK, ObservatoryLoginResponse{Success: true})
}

// Data returns the full bundled portfolio data. Requires a session.
// @Summary Observatory dashboard data
// @Produce json
// @Success 200 {object} content.Bundle
// @Failure 401 {object} ErrorResponse
// @Router /{prefix}/data [get]
func (h *ObservatoryHandler) Data(w http.ResponseWriter, r *http.Request) {
	pkghttp.WriteJSON(w, http.StatusOK, h.catalog.Bundle())
}

// DataSection returns one section of the bundled data. Requires a session.
// @Summary Observatory dashboard section
// @Param section path string true "Section name"
// @Produce json
// @Failure 404 {object} ErrorResponse
// @Router /{prefix}/data/{section} [get]
func (h *ObservatoryHandler) DataSection(w http.ResponseWriter, r *http.Request) {
	section, err := h.catalog.Section(chi.URLParam(r, "section"))
	if err != nil {
		if errors.Is(err, models.ErrInvalidSection) {
			pkghttp.WriteNotFound(w, "Unknown section")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, section)
}

// ExportJSON downloads the bundled data as a JSON file. Requires a session.
// @Summary Export portfolio data as JSON
// @Produce json
// @Router /{prefix}/export.json [get]
func (h *ObservatoryHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := h.catalog.JSON()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render json export", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	h.auditExport(r, "json")

	filename := content.ExportFilename(h.now())
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ExportTypeScript returns the bundled data as a TypeScript module. Requires a session.
// @Summary Export portfolio data as TypeScript
// @Produce plain
// @Router /{prefix}/export.ts [get]
func (h *ObservatoryHandler) ExportTypeScript(w http.ResponseWriter, r *http.Request) {
	source, err := h.catalog.TypeScript(h.now())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render typescript export", slog.Any("error", err))
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	h.auditExport(r, "ts")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(source))
}

func (h *ObservatoryHandler) auditExport(r *http.Request, format string) {
	if h.audit == nil {
		return
	}
	h.audit.LogDataAccess(pkglogger.AuditEvent{
		EventType: pkglogger.EventDataExport,
		Scope:     auth.GetScope(r),
		IPAddress: pkghttp.ExtractClientIP(r, h.ipConfig),
		UserAgent: r.UserAgent(),
		Success:   true,
		Metadata:  map[string]string{"format": format},
	})
}
