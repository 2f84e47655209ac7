// Command buildhook compiles the frontend before the server is built. It is
// run by `go generate` from the repository root, which exports PROJECT_ROOT.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ctfkit/teapot-webservice/internal/buildhook"
	"github.com/ctfkit/teapot-webservice/internal/frontend"
	applog "github.com/ctfkit/teapot-webservice/internal/platform/logging"
)

func main() {
	logger := applog.New(os.Stderr, zap.InfoLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = applog.WithLogger(ctx, logger)

	cmd := newRootCmd(os.Getenv, os.Stdout, buildhook.NewExecRunner())
	if err := cmd.ExecuteContext(ctx); err != nil {
		applog.LogError(ctx, "build hook failed", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(getenv func(string) string, out io.Writer, runner buildhook.Runner) *cobra.Command {
	var (
		npm    string
		script string
	)
	cmd := &cobra.Command{
		Use:           "buildhook",
		Short:         "Build the frontend bundle",
		Long:          "buildhook runs the frontend build script in the client directory and declares the paths that invalidate it.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildhook.ConfigFromEnv(getenv)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("npm") {
				cfg.NPM = npm
			}
			if cmd.Flags().Changed("script") {
				cfg.Script = script
			}
			return buildhook.Run(cmd.Context(), cfg, out, runner)
		},
	}
	cmd.Flags().StringVar(&npm, "npm", buildhook.DefaultNPM, "npm executable (env "+buildhook.NPMEnv+")")
	cmd.Flags().StringVar(&script, "script", frontend.BuildScript, "package.json script to run")
	return cmd
}
