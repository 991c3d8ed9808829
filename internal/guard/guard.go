// Package guard implements the Observatory admin gate: a lockout after
// repeated failed logins and a sliding-expiry session, both kept as JSON
// records in a per-browser-session store.
//
// The credential check is a convenience gate for an unlisted page. It is not
// an access-control boundary: the configured credentials are shared and the
// state lives in the visitor's own scope.
package guard

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/BradenHooton/portfolio/internal/models"
	"github.com/BradenHooton/portfolio/internal/storage"
	pkgauth "github.com/BradenHooton/portfolio/pkg/auth"
	pkglogger "github.com/BradenHooton/portfolio/pkg/logger"
)

// TokenBytes is the amount of randomness in a session token.
const TokenBytes = 32

const (
	DefaultMaxAttempts    = 5
	DefaultLockDuration   = 15 * time.Minute
	DefaultSessionTimeout = 30 * time.Minute
)

// Config holds the credentials and thresholds the guard enforces.
type Config struct {
	Username       string
	Password       string
	PasswordHash   string // bcrypt; takes precedence over Password when set
	MaxAttempts    int
	LockDuration   time.Duration
	SessionTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.LockDuration <= 0 {
		c.LockDuration = DefaultLockDuration
	}
	if c.SessionTimeout <= 0 {
		c.SessionTimeout = DefaultSessionTimeout
	}
	return c
}

// Option customises a Guard.
type Option func(*Guard)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// WithRandom replaces crypto/rand as the token source.
func WithRandom(r io.Reader) Option {
	return func(g *Guard) { g.random = r }
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) { g.logger = logger }
}

func WithAuditLogger(audit *pkglogger.AuditLogger) Option {
	return func(g *Guard) { g.audit = audit }
}

// WithClient attaches request details to audit events.
func WithClient(scope, ipAddress, userAgent string) Option {
	return func(g *Guard) {
		g.scope = scope
		g.ipAddress = ipAddress
		g.userAgent = userAgent
	}
}

// Guard is bound to a single scope's Store. It is cheap to construct and is
// expected to be built per request.
type Guard struct {
	store  storage.Store
	cfg    Config
	now    func() time.Time
	random io.Reader
	logger *slog.Logger
	audit  *pkglogger.AuditLogger

	scope     string
	ipAddress string
	userAgent string
}

func New(store storage.Store, cfg Config, opts ...Option) *Guard {
	g := &Guard{
		store:  store,
		cfg:    cfg.withDefaults(),
		now:    time.Now,
		random: rand.Reader,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// IsLockedOut reports whether logins are currently refused. An expired lock is
// cleared as a side effect.
func (g *Guard) IsLockedOut(ctx context.Context) models.LockStatus {
	state, ok := readJSON[models.LockState](ctx, g.store, models.LockStateKey)
	if !ok || state.LockedUntil == nil {
		return models.LockStatus{}
	}

	now := g.now()
	if now.Before(*state.LockedUntil) {
		return models.LockStatus{
			Locked:           true,
			RemainingSeconds: ceilSeconds(state.LockedUntil.Sub(now)),
		}
	}

	g.clearLock(ctx)
	g.auditEvent(pkglogger.EventLockoutExpired, true, "")
	return models.LockStatus{}
}

// RecordFailedAttempt counts a failed login and starts the lock once the
// threshold is reached.
func (g *Guard) RecordFailedAttempt(ctx context.Context) models.AttemptResult {
	state, _ := readJSON[models.LockState](ctx, g.store, models.LockStateKey)
	state.Attempts++

	if state.Attempts >= g.cfg.MaxAttempts {
		until := g.now().Add(g.cfg.LockDuration)
		state.LockedUntil = &until
		g.persist(ctx, models.LockStateKey, state)
		return models.AttemptResult{Locked: true, AttemptsRemaining: 0}
	}

	g.persist(ctx, models.LockStateKey, state)
	return models.AttemptResult{AttemptsRemaining: g.cfg.MaxAttempts - state.Attempts}
}

// ValidateCredentials compares against the configured credentials without
// touching any state.
func (g *Guard) ValidateCredentials(username, password string) bool {
	if g.cfg.Username == "" {
		return false
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.cfg.Username)) == 1

	var passwordOK bool
	if g.cfg.PasswordHash != "" {
		passwordOK = pkgauth.ComparePassword(g.cfg.PasswordHash, password) == nil
	} else {
		passwordOK = g.cfg.Password != "" &&
			subtle.ConstantTimeCompare([]byte(password), []byte(g.cfg.Password)) == 1
	}

	return usernameOK && passwordOK
}

// Login is the only way a session gets created.
func (g *Guard) Login(ctx context.Context, username, password string) models.LoginResult {
	if status := g.IsLockedOut(ctx); status.Locked {
		g.auditEvent(pkglogger.EventLoginLocked, false, "locked_out")
		minutes := (status.RemainingSeconds + 59) / 60
		return models.LoginResult{
			Error:      fmt.Sprintf("Too many attempts. Try again in %s.", plural(minutes, "minute")),
			RetryAfter: time.Duration(status.RemainingSeconds) * time.Second,
		}
	}

	if !g.ValidateCredentials(username, password) {
		result := g.RecordFailedAttempt(ctx)
		if result.Locked {
			g.auditEvent(pkglogger.EventLockoutStarted, false, "max_attempts_exceeded")
			minutes := int64((g.cfg.LockDuration + time.Minute - 1) / time.Minute)
			return models.LoginResult{
				Error:      fmt.Sprintf("Account locked. Try again in %s.", plural(minutes, "minute")),
				RetryAfter: g.cfg.LockDuration,
			}
		}

		g.auditEvent(pkglogger.EventLoginFailed, false, "invalid_credentials")
		return models.LoginResult{
			Error: fmt.Sprintf("Invalid credentials. %s remaining.",
				plural(int64(result.AttemptsRemaining), "attempt")),
		}
	}

	if _, err := g.createSession(ctx); err != nil {
		g.logger.ErrorContext(ctx, "failed to create admin session", "error", err)
		return models.LoginResult{Error: "Authentication failed. Please try again."}
	}

	g.auditEvent(pkglogger.EventLoginSuccess, true, "")
	return models.LoginResult{Success: true}
}

// createSession stores a fresh AuthState and clears the lock record.
func (g *Guard) createSession(ctx context.Context) (string, error) {
	token, err := pkgauth.RandomHexFrom(g.random, TokenBytes)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	expiresAt := g.now().Add(g.cfg.SessionTimeout)
	state := models.AuthState{
		IsAuthenticated: true,
		Token:           token,
		ExpiresAt:       &expiresAt,
	}
	if err := writeJSON(ctx, g.store, models.AuthStateKey, state); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}

	g.clearLock(ctx)
	return token, nil
}

// ValidateSession reports whether the scope holds a live session and, if so,
// slides its expiry forward.
func (g *Guard) ValidateSession(ctx context.Context) bool {
	state, ok := readJSON[models.AuthState](ctx, g.store, models.AuthStateKey)
	if !ok || !state.IsAuthenticated || state.Token == "" || state.ExpiresAt == nil {
		return false
	}

	now := g.now()
	if !now.Before(*state.ExpiresAt) {
		g.DestroySession(ctx)
		g.auditEvent(pkglogger.EventSessionExpired, false, "session_expired")
		return false
	}

	expiresAt := now.Add(g.cfg.SessionTimeout)
	state.ExpiresAt = &expiresAt
	g.persist(ctx, models.AuthStateKey, state)
	return true
}

// DestroySession removes the session record. Safe to call without a session.
func (g *Guard) DestroySession(ctx context.Context) {
	if err := g.store.Remove(ctx, models.AuthStateKey); err != nil {
		g.logger.WarnContext(ctx, "failed to remove admin session", "error", err)
	}
}

// Logout destroys the session and records the event.
func (g *Guard) Logout(ctx context.Context) {
	g.DestroySession(ctx)
	g.auditEvent(pkglogger.EventLogout, true, "")
}

// Status is a read-only snapshot for the login view. Unlike ValidateSession
// it does not extend the session; it does clear an expired lock.
func (g *Guard) Status(ctx context.Context) models.GuardStatus {
	lock := g.IsLockedOut(ctx)
	status := models.GuardStatus{
		Locked:           lock.Locked,
		RemainingSeconds: lock.RemainingSeconds,
		MaxAttempts:      g.cfg.MaxAttempts,
	}

	if state, ok := readJSON[models.LockState](ctx, g.store, models.LockStateKey); ok {
		status.AttemptsUsed = state.Attempts
	}

	auth, ok := readJSON[models.AuthState](ctx, g.store, models.AuthStateKey)
	if ok && auth.IsAuthenticated && auth.Token != "" && auth.ExpiresAt != nil && g.now().Before(*auth.ExpiresAt) {
		status.Authenticated = true
		status.ExpiresAt = auth.ExpiresAt
	}

	return status
}

func (g *Guard) clearLock(ctx context.Context) {
	if err := g.store.Remove(ctx, models.LockStateKey); err != nil {
		g.logger.WarnContext(ctx, "failed to clear lock state", "error", err)
	}
}

// persist writes a record, logging instead of failing. A lost write degrades
// to an earlier state, never to a more permissive one than the caller saw.
func (g *Guard) persist(ctx context.Context, key string, v any) {
	if err := writeJSON(ctx, g.store, key, v); err != nil {
		g.logger.WarnContext(ctx, "failed to persist guard state", "key", key, "error", err)
	}
}

func (g *Guard) auditEvent(eventType string, success bool, reason string) {
	if g.audit == nil {
		return
	}
	g.audit.LogAuthAttempt(pkglogger.AuditEvent{
		EventType:     eventType,
		Scope:         g.scope,
		IPAddress:     g.ipAddress,
		UserAgent:     g.userAgent,
		Success:       success,
		FailureReason: reason,
	})
}

// readJSON is the only way guard records are read. A missing key, a backend
// error and an undecodable value all read as absent.
func readJSON[T any](ctx context.Context, store storage.Store, key string) (T, bool) {
	var zero T

	raw, err := store.Get(ctx, key)
	if err != nil {
		return zero, false
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return zero, false
	}
	return v, true
}

func writeJSON(ctx context.Context, store storage.Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, string(data))
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64((d + time.Second - 1) / time.Second)
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
