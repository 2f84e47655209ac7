package server

import (
	"net/netip"

	"github.com/ctfkit/teapot-webservice/internal/frontend"
)

// DefaultBindAddress is used when neither flag nor environment sets one.
const DefaultBindAddress = "127.0.0.1:3000"

// Config is fixed at startup.
type Config struct {
	// BindAddress is the socket the API and static files are served on.
	BindAddress netip.AddrPort
	// StaticDir is the frontend build output.
	StaticDir string
	// MetricsAddress enables the operations listener (/metrics, /healthz)
	// when non-empty.
	MetricsAddress string
	// APIDocs mounts the OpenAPI document and docs UI under /api.
	APIDocs bool
	Version string
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BindAddress: netip.MustParseAddrPort(DefaultBindAddress),
		StaticDir:   "./" + frontend.DistDir,
		Version:     "dev",
	}
}
