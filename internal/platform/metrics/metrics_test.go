package metrics

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/hello", RouteHello},
		{"/api/hello/", RouteAPIOther},
		{"/api/openapi.json", RouteAPIOther},
		{"/", RouteStatic},
		{"/assets/index.js", RouteStatic},
		{"/apiary.html", RouteStatic},
	}
	for _, tt := range tests {
		if got := RouteLabel(tt.path); got != tt.want {
			t.Errorf("RouteLabel(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMiddlewareCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/hello" {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = io.WriteString(w, "<html></html>")
	}))

	for range 3 {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/hello", nil))
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/index.html", nil))

	if got := testutil.ToFloat64(m.requests.WithLabelValues(RouteHello, http.MethodGet, "418")); got != 3 {
		t.Fatalf("expected 3 hello requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(RouteStatic, http.MethodGet, "200")); got != 1 {
		t.Fatalf("expected 1 static request, got %v", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 2 {
		t.Fatalf("expected 2 duration series, got %d", got)
	}
}

func TestHandlerExposesRegistry(t *testing.T) {
	reg := NewRegistry()
	m := New(reg)
	m.requests.WithLabelValues(RouteHello, http.MethodGet, "418").Inc()

	resp := httptest.NewRecorder()
	Handler(reg).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		`webservice_http_requests_total{code="418",method="GET",route="api_hello"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics output to contain %q", want)
		}
	}
}

func TestMethodLabel(t *testing.T) {
	tests := map[string]string{
		http.MethodGet:     http.MethodGet,
		http.MethodHead:    http.MethodHead,
		http.MethodOptions: http.MethodOptions,
		"get":              MethodOther,
		"BREW":             MethodOther,
		"X-JUNK-1":         MethodOther,
	}
	for in, want := range tests {
		if got := MethodLabel(in); got != want {
			t.Errorf("MethodLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMiddlewareBoundsMethodSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))

	for i := range 200 {
		req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
		req.Method = fmt.Sprintf("JUNK%d", i)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := testutil.CollectAndCount(m.requests); got != 1 {
		t.Fatalf("expected unknown methods to share one series, got %d", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues(RouteHello, MethodOther, "405")); got != 200 {
		t.Fatalf("expected 200 requests labelled other, got %v", got)
	}
}
