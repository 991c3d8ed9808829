package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/portfolio/internal/auth"
)

func serveWithScope(r *http.Request) (*httptest.ResponseRecorder, string) {
	var seen string
	handler := auth.ScopeMiddleware(auth.CookieConfig{Secure: true, SameSite: "lax"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = auth.GetScope(r)
		}),
	)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w, seen
}

func TestScopeMiddleware_IssuesScopeWhenMissing(t *testing.T) {
	w, scope := serveWithScope(httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(scope)
	require.NoError(t, err)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, auth.ScopeCookieName, c.Name)
	assert.Equal(t, scope, c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Zero(t, c.MaxAge)
	assert.True(t, c.Expires.IsZero())
}

func TestScopeMiddleware_ReusesValidScope(t *testing.T) {
	existing := uuid.NewString()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: auth.ScopeCookieName, Value: existing})

	w, scope := serveWithScope(r)

	assert.Equal(t, existing, scope)
	assert.Empty(t, w.Result().Cookies())
}

func TestScopeMiddleware_ReplacesMalformedScope(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: auth.ScopeCookieName, Value: "../../etc/passwd"})

	w, scope := serveWithScope(r)

	assert.NotEqual(t, "../../etc/passwd", scope)
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, scope, w.Result().Cookies()[0].Value)
}

func TestScopeFromContext_Empty(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, auth.GetScope(r))
}
