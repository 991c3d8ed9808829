package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/BradenHooton/portfolio/internal/auth"
	"github.com/BradenHooton/portfolio/internal/external"
	"github.com/BradenHooton/portfolio/internal/models"
	pkghttp "github.com/BradenHooton/portfolio/pkg/http"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithScopeContext puts a scope id on the request as ScopeMiddleware would
func WithScopeContext(req *http.Request, scope string) *http.Request {
	return req.WithContext(auth.WithScope(req.Context(), scope))
}

// WithChiRouteContext adds chi URL parameters to request context for testing
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response and returns it
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) pkghttp.ErrorResponse {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
	return resp
}

// MockContactService implements ContactServiceInterface for testing
type MockContactService struct {
	SubmitFunc func(ctx context.Context, req models.ContactRequest) error
}

func (m *MockContactService) Submit(ctx context.Context, req models.ContactRequest) error {
	if m.SubmitFunc == nil {
		return nil
	}
	return m.SubmitFunc(ctx, req)
}

// MockExternalData implements ExternalData for testing
type MockExternalData struct {
	SnapshotFunc func(ctx context.Context) external.Snapshot
	RefreshFunc  func(ctx context.Context) external.Snapshot
}

func (m *MockExternalData) Snapshot(ctx context.Context) external.Snapshot {
	if m.SnapshotFunc == nil {
		return external.Snapshot{}
	}
	return m.SnapshotFunc(ctx)
}

func (m *MockExternalData) Refresh(ctx context.Context) external.Snapshot {
	if m.RefreshFunc == nil {
		return external.Snapshot{}
	}
	return m.RefreshFunc(ctx)
}
