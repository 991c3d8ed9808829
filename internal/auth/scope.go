package auth

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey is a custom type for context keys
type contextKey string

const ScopeContextKey contextKey = "scope"

// ScopeMiddleware makes sure every request carries a scope id. A missing or
// malformed cookie is replaced by a fresh random id, which starts a new empty
// scope in the store.
func ScopeMiddleware(config CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, err := GetScopeCookie(r)
			if err != nil || !validScope(scope) {
				scope = uuid.NewString()
				SetScopeCookie(w, scope, config)
			}

			ctx := WithScope(r.Context(), scope)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithScope stores a scope id in ctx.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, ScopeContextKey, scope)
}

// ScopeFromContext returns the scope id set by ScopeMiddleware, or "" outside it.
func ScopeFromContext(ctx context.Context) string {
	scope, _ := ctx.Value(ScopeContextKey).(string)
	return scope
}

// GetScope is ScopeFromContext for a request.
func GetScope(r *http.Request) string {
	return ScopeFromContext(r.Context())
}

func validScope(scope string) bool {
	id, err := uuid.Parse(scope)
	return err == nil && id.Version() == 4
}
