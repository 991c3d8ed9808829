package handlers

import (
	"fmt"
	"net/http"
)

// Robots serves robots.txt, keeping crawlers out of the hidden prefix.
func Robots(hiddenPrefix string) http.HandlerFunc {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: %s\n", hiddenPrefix)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}
}
