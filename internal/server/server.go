// Package server assembles the HTTP service: the API under /api, the static
// frontend for everything else, and an optional operations listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ctfkit/teapot-webservice/internal/http/health"
	"github.com/ctfkit/teapot-webservice/internal/http/static"
	"github.com/ctfkit/teapot-webservice/internal/http/v1/routes"
	applog "github.com/ctfkit/teapot-webservice/internal/platform/logging"
	"github.com/ctfkit/teapot-webservice/internal/platform/metrics"
	appmiddleware "github.com/ctfkit/teapot-webservice/internal/platform/middleware"
	"github.com/ctfkit/teapot-webservice/internal/platform/respond"
)

const (
	shutdownTimeout = 10 * time.Second
	maxBodyBytes    = 1 << 20
)

// Server holds the handlers built from one Config.
type Server struct {
	cfg      Config
	registry *prometheus.Registry
	handler  http.Handler
}

// New builds the routing table. It does not touch the network. Requests are
// instrumented only when the operations listener is enabled.
func New(cfg Config) *Server {
	s := &Server{cfg: cfg}
	var m *metrics.Metrics
	if cfg.MetricsAddress != "" {
		s.registry = metrics.NewRegistry()
		m = metrics.New(s.registry)
	}
	s.handler = s.routes(m)
	return s
}

func (s *Server) routes(m *metrics.Metrics) http.Handler {
	router := chi.NewRouter()
	router.NotFound(static.New(s.cfg.StaticDir).ServeHTTP)
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	var skipSecurity []string
	if s.cfg.APIDocs {
		skipSecurity = append(skipSecurity, routes.Prefix+"/docs")
	}
	router.Use(
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		applog.RequestLogger(),
	)
	if m != nil {
		router.Use(m.Middleware())
	}
	router.Use(
		applog.AccessLogger(),
		appmiddleware.Security(skipSecurity...),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		chimiddleware.RequestSize(maxBodyBytes),
		respond.Recoverer(),
	)

	api := humachi.New(router, routes.Config(s.cfg.Version, s.cfg.APIDocs))
	routes.Register(api)
	return router
}

// Handler serves the API and the static frontend.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// OpsHandler serves Prometheus metrics and the liveness probe. Without a
// metrics address it serves only the probe.
func (s *Server) OpsHandler() http.Handler {
	mux := http.NewServeMux()
	if s.registry != nil {
		mux.Handle("/metrics", metrics.Handler(s.registry))
	}
	mux.Handle(health.Path, health.Handler(s.cfg.Version))
	return mux
}

// Listen binds the service socket.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.cfg.BindAddress.String())
	if err != nil {
		return nil, fmt.Errorf("bind %s: %w", s.cfg.BindAddress, err)
	}
	return ln, nil
}

// ListenOps binds the operations socket, or returns nil when disabled.
func (s *Server) ListenOps() (net.Listener, error) {
	if s.cfg.MetricsAddress == "" {
		return nil, nil
	}
	ln, err := net.Listen("tcp", s.cfg.MetricsAddress)
	if err != nil {
		return nil, fmt.Errorf("bind metrics %s: %w", s.cfg.MetricsAddress, err)
	}
	return ln, nil
}

// Run binds the configured sockets and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	opsLn, err := s.ListenOps()
	if err != nil {
		_ = ln.Close()
		return err
	}
	return s.Serve(ctx, ln, opsLn)
}

// Serve accepts connections on ln, and on opsLn when it is not nil, until ctx
// is cancelled or a listener fails. Cancellation triggers a graceful shutdown
// bounded by a 10 second deadline and returns nil.
func (s *Server) Serve(ctx context.Context, ln, opsLn net.Listener) error {
	// Requests keep the logger but outlive the signal that starts shutdown.
	base := context.WithoutCancel(ctx)
	servers := []*http.Server{s.newHTTPServer(base, s.handler)}
	listeners := []net.Listener{ln}
	if opsLn != nil {
		servers = append(servers, s.newHTTPServer(base, s.OpsHandler()))
		listeners = append(listeners, opsLn)
	}

	listenErr := make(chan error, len(servers))
	for i, srv := range servers {
		l := listeners[i]
		applog.LogInfo(ctx, "server listening", zap.String("addr", l.Addr().String()))
		go func() {
			if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				listenErr <- fmt.Errorf("serve %s: %w", l.Addr(), err)
			}
		}()
	}

	var serveErr error
	select {
	case serveErr = <-listenErr:
		applog.LogError(ctx, "listen failed", serveErr)
	case <-ctx.Done():
		applog.LogInfo(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(base, shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			applog.LogError(shutdownCtx, "server shutdown error", err)
		}
	}
	applog.LogInfo(base, "server exited")
	return serveErr
}

func (s *Server) newHTTPServer(base context.Context, h http.Handler) *http.Server {
	return &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
		BaseContext:       func(net.Listener) context.Context { return base },
		ErrorLog:          zap.NewStdLog(applog.LoggerFromContext(base)),
	}
}
