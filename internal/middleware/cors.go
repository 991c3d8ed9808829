package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int
}

// DefaultCORSConfig allows the configured origins to call the JSON API with
// cookies. Only the verbs the API actually serves are listed.
func DefaultCORSConfig(allowedOrigins []string) CORSConfig {
	return CORSConfig{
		AllowedOrigins: allowedOrigins,
		MaxAge:         3600,
	}
}

// CORS returns a CORS middleware handler. With no configured origins no CORS
// headers are sent at all, so browsers refuse every cross-origin call.
// cors.Options treats an empty list as "allow all", hence the early return.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	if len(config.AllowedOrigins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Retry-After", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           config.MaxAge,
	})
}
