package logger

import (
	"context"
	"log/slog"
	"time"
)

// Audit event types emitted by the observatory guard and dashboard.
const (
	EventLoginSuccess   = "observatory_login_success"
	EventLoginFailed    = "observatory_login_failed"
	EventLoginLocked    = "observatory_login_locked"
	EventLockoutStarted = "observatory_lockout_started"
	EventLockoutExpired = "observatory_lockout_expired"
	EventSessionExpired = "observatory_session_expired"
	EventLogout         = "observatory_logout"
	EventDataExport     = "observatory_data_export"
)

// AuditEvent represents a security audit event
type AuditEvent struct {
	EventType     string
	Scope         string
	IPAddress     string
	UserAgent     string
	Success       bool
	FailureReason string
	Metadata      map[string]string
}

// AuditLogger provides audit logging functionality
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger,
	}
}

// LogAuthAttempt logs guard decisions. Failures are logged at warn level.
func (al *AuditLogger) LogAuthAttempt(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "auth"),
		slog.String("event_type", event.EventType),
		slog.Bool("success", event.Success),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}
	attrs = append(attrs, al.commonAttrs(event)...)

	if event.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", event.FailureReason))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	al.logger.LogAttrs(context.Background(), level, "audit", attrs...)
}

// LogDataAccess logs reads and exports of the bundled portfolio data.
func (al *AuditLogger) LogDataAccess(event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("audit_type", "data"),
		slog.String("event_type", event.EventType),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}
	attrs = append(attrs, al.commonAttrs(event)...)

	al.logger.LogAttrs(context.Background(), slog.LevelInfo, "audit", attrs...)
}

func (al *AuditLogger) commonAttrs(event AuditEvent) []slog.Attr {
	var attrs []slog.Attr
	if event.Scope != "" {
		attrs = append(attrs, slog.String("scope", TruncatedID(event.Scope)))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.UserAgent != "" {
		attrs = append(attrs, slog.String("user_agent", event.UserAgent))
	}
	for key, val := range event.Metadata {
		attrs = append(attrs, slog.String(key, val))
	}
	return attrs
}
