package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveSecurity(t *testing.T, path string, skip ...string) *httptest.ResponseRecorder {
	t.Helper()
	h := Security(skip...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestSecurityMiddlewareSetsHeaders(t *testing.T) {
	resp := serveSecurity(t, "/api/hello")

	tests := []struct {
		header string
		want   string
	}{
		{"Cache-Control", "no-store"},
		{"Content-Security-Policy", "frame-ancestors 'none'"},
		{"Cross-Origin-Opener-Policy", "same-origin"},
		{"Cross-Origin-Resource-Policy", "same-origin"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
	}
	for _, tt := range tests {
		if got := resp.Header().Get(tt.header); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.header, tt.want, got)
		}
	}
}

func TestSecurityMiddlewareLeavesStaticCacheable(t *testing.T) {
	resp := serveSecurity(t, "/assets/app.js")

	if got := resp.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("expected no Cache-Control on static assets, got %q", got)
	}
	if got := resp.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff on static assets, got %q", got)
	}
}

func TestSecurityMiddlewareSkipsPaths(t *testing.T) {
	resp := serveSecurity(t, "/api/docs", "/api/docs")

	if got := resp.Header().Get("X-Frame-Options"); got != "" {
		t.Fatalf("expected skipped path to have no security headers, got %q", got)
	}
}
