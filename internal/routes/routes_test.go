package routes_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BradenHooton/portfolio/internal/auth"
	"github.com/BradenHooton/portfolio/internal/config"
	"github.com/BradenHooton/portfolio/internal/content"
	"github.com/BradenHooton/portfolio/internal/guard"
	"github.com/BradenHooton/portfolio/internal/handlers"
	"github.com/BradenHooton/portfolio/internal/routes"
	"github.com/BradenHooton/portfolio/internal/storage"
)

const prefix = "/observatory-9x7k2m"

func newRouter(t *testing.T, adminCfg config.AdminConfig) http.Handler {
	t.Helper()

	catalog, err := content.Load()
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	factory := guard.NewFactory(storage.NewMemoryBackend(), guard.Config{
		Username: adminCfg.Username,
		Password: adminCfg.Password,
	}, guard.WithLogger(logger))

	router := chi.NewRouter()
	routes.RegisterRoutes(
		router,
		handlers.NewPortfolioHandler(catalog, &handlers.MockExternalData{}),
		handlers.NewObservatoryHandler(factory, catalog, nil, nil, nil, logger),
		handlers.NewContactHandler(&handlers.MockContactService{}, logger),
		&adminCfg,
		auth.CookieConfig{SameSite: "lax"},
		nil,
	)
	return router
}

func defaultAdmin() config.AdminConfig {
	return config.AdminConfig{
		Username:    "admin",
		Password:    "admin123",
		RoutePrefix: prefix,
	}
}

func serve(router http.Handler, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func scopeCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.ScopeCookieName {
			return c
		}
	}
	t.Fatal("no scope cookie issued")
	return nil
}

func TestObservatoryFlow(t *testing.T) {
	router := newRouter(t, defaultAdmin())

	w := serve(router, http.MethodGet, prefix+"/session", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := scopeCookie(t, w)

	w = serve(router, http.MethodGet, prefix+"/data", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodPost, prefix+"/login", `{"username":"admin","password":"admin123"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodGet, prefix+"/data", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// A browser without the cookie is a different scope.
	w = serve(router, http.MethodGet, prefix+"/data", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodPost, prefix+"/logout", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodGet, prefix+"/export.json", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExternalRefresh_RequiresSession(t *testing.T) {
	router := newRouter(t, defaultAdmin())

	w := serve(router, http.MethodPost, "/api/external/refresh", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, http.MethodPost, prefix+"/login", `{"username":"admin","password":"admin123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := scopeCookie(t, w)

	w = serve(router, http.MethodPost, "/api/external/refresh", "", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicRoutes(t *testing.T) {
	router := newRouter(t, defaultAdmin())

	for _, path := range []string{"/api/profile", "/api/sections", "/api/sections/skills", "/api/external"} {
		w := serve(router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Empty(t, w.Result().Cookies(), "public route %s should not issue a scope", path)
	}

	w := serve(router, http.MethodGet, "/robots.txt", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Disallow: "+prefix)
}

func TestLoginRateLimit(t *testing.T) {
	adminCfg := defaultAdmin()
	adminCfg.LoginRequestsPerMin = 2
	router := newRouter(t, adminCfg)

	body := `{"username":"admin","password":"wrong"}`
	w := serve(router, http.MethodPost, prefix+"/login", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = serve(router, http.MethodPost, prefix+"/login", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A fresh scope per request does not get around the per-IP limit.
	w = serve(router, http.MethodPost, prefix+"/login", body, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}
