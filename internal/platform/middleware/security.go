package middleware

import (
	"net/http"
	"strings"
)

// APIPrefix is the path prefix of the JSON API. Everything else is static content.
const APIPrefix = "/api/"

// Security returns middleware that sets OWASP-recommended security headers.
//
// Paths in skipPaths are left untouched (e.g. the interactive API docs).
// Cache-Control: no-store is only applied below APIPrefix so browsers may
// still cache the frontend bundle.
func Security(skipPaths ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range skipPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			h := w.Header()
			if strings.HasPrefix(r.URL.Path, APIPrefix) {
				h.Set("Cache-Control", "no-store")
			}
			h.Set("Content-Security-Policy", "frame-ancestors 'none'")
			h.Set("Cross-Origin-Opener-Policy", "same-origin")
			h.Set("Cross-Origin-Resource-Policy", "same-origin")
			h.Set(
				"Permissions-Policy",
				"accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
			)
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	}
}
