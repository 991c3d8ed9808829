package auth

import (
	"net/http"
)

// ScopeCookieName identifies the browser session a request belongs to.
const ScopeCookieName = "portfolio_scope"

// CookieConfig holds cookie configuration settings
type CookieConfig struct {
	Domain   string // Empty string = current host only
	Secure   bool   // HTTPS only
	SameSite string // "strict", "lax", or "none"
}

// SetScopeCookie issues the scope id as a session cookie. No Expires or MaxAge
// is set so the browser drops it when the session ends.
func SetScopeCookie(w http.ResponseWriter, scope string, config CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     ScopeCookieName,
		Value:    scope,
		Path:     "/",
		Domain:   config.Domain,
		HttpOnly: true,
		Secure:   config.Secure,
		SameSite: parseSameSite(config.SameSite),
	})
}

// GetScopeCookie retrieves the scope id from cookies
func GetScopeCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(ScopeCookieName)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

// parseSameSite converts string to http.SameSite constant
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
