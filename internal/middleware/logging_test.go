package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BradenHooton/portfolio/internal/auth"
)

func TestSecureLogger_RedactsSensitiveQuery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := SecureLogger(logger, nil)(okHandler())

	req := httptest.NewRequest("GET", "/observatory/login?username=admin&password=hunter2", nil)
	req = req.WithContext(auth.WithScope(req.Context(), "0b5f3c1e-7d2a-4f4e-9a61-1c2d3e4f5a6b"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if strings.Contains(out, "hunter2") || strings.Contains(out, "username=admin") {
		t.Fatalf("query string leaked into log: %s", out)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["path"] != "/observatory/login?[REDACTED]" {
		t.Errorf("path: got %v", entry["path"])
	}
	if entry["scope"] != "0b5f3c1e…" {
		t.Errorf("scope: got %v", entry["scope"])
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("status: got %v", entry["status"])
	}
}

func TestSecureLogger_ServerErrorsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := SecureLogger(logger, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/external", nil))

	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Errorf("expected error level, got %s", buf.String())
	}
}
