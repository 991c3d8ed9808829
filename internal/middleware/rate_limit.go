package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	pkghttp "github.com/BradenHooton/portfolio/pkg/http"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int
	// IPConfig decides which proxy headers are trusted when keying by client IP.
	IPConfig *pkghttp.IPConfig
}

// DefaultLoginRateLimit limits observatory login attempts per client IP. It
// sits in front of the per-scope lockout, which a client can reset by
// dropping its cookie.
func DefaultLoginRateLimit(ipConfig *pkghttp.IPConfig) RateLimitConfig {
	return RateLimitConfig{RequestsPerMinute: 10, IPConfig: ipConfig}
}

// DefaultContactRateLimit limits contact form submissions per client IP.
func DefaultContactRateLimit(ipConfig *pkghttp.IPConfig) RateLimitConfig {
	return RateLimitConfig{RequestsPerMinute: 3, IPConfig: ipConfig}
}

// RateLimitByIP creates a middleware that rate limits requests by client IP
func RateLimitByIP(config RateLimitConfig) func(next http.Handler) http.Handler {
	return httprate.Limit(
		config.RequestsPerMinute,
		1*time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return pkghttp.ExtractClientIP(r, config.IPConfig), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			pkghttp.WriteTooManyRequests(w, "Rate limit exceeded", 0)
		}),
	)
}
