// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	applog "github.com/ctfkit/teapot-webservice/internal/platform/logging"
)

// ObservedContext returns a context carrying a logger whose entries at or
// above level are recorded.
func ObservedContext(t *testing.T, level zapcore.Level) (context.Context, *observer.ObservedLogs) {
	t.Helper()
	core, recorded := observer.New(level)
	return applog.WithLogger(t.Context(), zap.New(core)), recorded
}

// WriteTree creates files under root. Keys are slash-separated paths.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// Reachable reports whether a TCP connection to addr succeeds within timeout.
func Reachable(addr string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// WaitUnreachable polls addr until it refuses connections or deadline passes.
func WaitUnreachable(t *testing.T, addr string, deadline time.Duration) {
	t.Helper()
	stop := time.Now().Add(deadline)
	for time.Now().Before(stop) {
		if !Reachable(addr, 50*time.Millisecond) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("%s still accepting connections after %s", addr, deadline)
}
