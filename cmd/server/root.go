package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/netip"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	applog "github.com/ctfkit/teapot-webservice/internal/platform/logging"
	"github.com/ctfkit/teapot-webservice/internal/server"
)

// Environment variables providing flag defaults.
const (
	envBindAddress    = "BIND_ADDRESS"
	envStaticDir      = "STATIC_DIR"
	envMetricsAddress = "METRICS_ADDRESS"
)

type runFunc func(ctx context.Context, cfg server.Config) error

// newRootCmd builds the CLI. Flags win over environment variables, which win
// over built-in defaults. A .env file in the working directory is loaded
// before the environment is read; it never overrides variables already set.
func newRootCmd(getenv func(string) string, run runFunc) *cobra.Command {
	cfg := server.DefaultConfig()
	bind := addrPortValue{addr: &cfg.BindAddress}

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Serve the teapot API and static frontend",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				applog.LogWarn(cmd.Context(), "failed to load .env file", zap.Error(err))
			}
			return applyEnv(cmd, getenv, &cfg, &bind)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(c.UsageString())
		return err
	})

	flags := cmd.Flags()
	flags.VarP(&bind, "bind-address", "b", "socket address to listen on (env "+envBindAddress+")")
	flags.StringVar(&cfg.StaticDir, "static-dir", cfg.StaticDir, "directory of static files (env "+envStaticDir+")")
	flags.StringVar(&cfg.MetricsAddress, "metrics-address", "", "address for /metrics and /healthz, empty disables (env "+envMetricsAddress+")")
	flags.BoolVar(&cfg.APIDocs, "api-docs", false, "serve the OpenAPI document and docs UI under /api")
	return cmd
}

func applyEnv(cmd *cobra.Command, getenv func(string) string, cfg *server.Config, bind *addrPortValue) error {
	flags := cmd.Flags()
	if v := getenv(envBindAddress); v != "" && !flags.Changed("bind-address") {
		if err := bind.Set(v); err != nil {
			return fmt.Errorf("%s: %w", envBindAddress, err)
		}
	}
	if v := getenv(envStaticDir); v != "" && !flags.Changed("static-dir") {
		cfg.StaticDir = v
	}
	if v := getenv(envMetricsAddress); v != "" && !flags.Changed("metrics-address") {
		cfg.MetricsAddress = v
	}
	return nil
}

// addrPortValue parses an IP literal and port, e.g. 127.0.0.1:3000 or [::1]:80.
type addrPortValue struct {
	addr *netip.AddrPort
}

func (v *addrPortValue) String() string {
	if v.addr == nil || !v.addr.IsValid() {
		return ""
	}
	return v.addr.String()
}

func (v *addrPortValue) Set(s string) error {
	ap, err := netip.ParseAddrPort(s)
	if err != nil {
		return fmt.Errorf("invalid socket address %q: %w", s, err)
	}
	*v.addr = ap
	return nil
}

func (*addrPortValue) Type() string {
	return "addrport"
}
