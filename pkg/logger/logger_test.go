package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizedEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"visitor@example.com", "v******@*******.com"},
		{"a@b.io", "a@*.io"},
		{"not-an-email", "[invalid-email]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizedEmail(tt.in))
	}
}

func TestTruncatedID(t *testing.T) {
	assert.Equal(t, "short", TruncatedID("short"))
	assert.Equal(t, "8f14e45f…", TruncatedID("8f14e45f-ceea-467f-a0b6-1e2f3a4b5c6d"))
}

func TestSanitizeQueryString(t *testing.T) {
	assert.True(t, SanitizeQueryString("username=admin&password=x"))
	assert.True(t, SanitizeQueryString("Token=abc"))
	assert.False(t, SanitizeQueryString("section=projects"))
	assert.False(t, SanitizeQueryString(""))
}

func TestAuditLogger_FailureLoggedAtWarn(t *testing.T) {
	var buf bytes.Buffer
	audit := NewAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	audit.LogAuthAttempt(AuditEvent{
		EventType:     EventLoginFailed,
		Scope:         "0123456789abcdef",
		IPAddress:     "203.0.113.10",
		Success:       false,
		FailureReason: "invalid_credentials",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, EventLoginFailed, entry["event_type"])
	assert.Equal(t, "01234567…", entry["scope"])
	assert.Equal(t, "invalid_credentials", entry["failure_reason"])
}

func TestAuditLogger_DataAccess(t *testing.T) {
	var buf bytes.Buffer
	audit := NewAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	audit.LogDataAccess(AuditEvent{
		EventType: EventDataExport,
		Metadata:  map[string]string{"format": "json"},
	})

	out := buf.String()
	assert.True(t, strings.Contains(out, `"audit_type":"data"`))
	assert.True(t, strings.Contains(out, `"format":"json"`))
	assert.True(t, strings.Contains(out, `"level":"INFO"`))
}
