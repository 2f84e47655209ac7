// Package buildhook compiles the frontend bundle before the server is built.
//
// It is driven by `go generate` from the repository root: it declares the
// paths whose changes should trigger another run, then invokes the npm build
// script in the frontend directory and fails on any non-zero exit.
package buildhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ctfkit/teapot-webservice/internal/frontend"
	applog "github.com/ctfkit/teapot-webservice/internal/platform/logging"
)

const (
	// RootEnv names the environment variable holding the repository root.
	RootEnv = "PROJECT_ROOT"
	// NPMEnv overrides the npm executable.
	NPMEnv = "NPM"
	// DefaultNPM is used when NPMEnv is unset.
	DefaultNPM = "npm"
)

// ErrProjectRootUnset is returned when RootEnv is missing or empty.
var ErrProjectRootUnset = errors.New(RootEnv + " is not set")

// Config describes one hook invocation.
type Config struct {
	// ProjectRoot is the absolute repository root.
	ProjectRoot string
	// FrontendDir is the frontend project, relative to ProjectRoot.
	FrontendDir string
	NPM         string
	Script      string
	Triggers    []string
}

// ConfigFromEnv builds a Config from the process environment. getenv is
// usually os.Getenv.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	root := strings.TrimSpace(getenv(RootEnv))
	if root == "" {
		return Config{}, ErrProjectRootUnset
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Config{}, fmt.Errorf("resolve %s %q: %w", RootEnv, root, err)
	}
	npm := getenv(NPMEnv)
	if npm == "" {
		npm = DefaultNPM
	}
	return Config{
		ProjectRoot: abs,
		FrontendDir: frontend.Dir,
		NPM:         npm,
		Script:      frontend.BuildScript,
		Triggers:    frontend.Triggers(),
	}, nil
}

// WorkDir is the directory the build command runs in.
func (c Config) WorkDir() string {
	return filepath.Join(c.ProjectRoot, filepath.FromSlash(c.FrontendDir))
}

// DeclareTriggers writes one rerun-if-changed line per trigger, in order.
func DeclareTriggers(w io.Writer, triggers []string) error {
	for _, t := range triggers {
		if _, err := fmt.Fprintf(w, "rerun-if-changed=%s\n", t); err != nil {
			return fmt.Errorf("declare trigger %q: %w", t, err)
		}
	}
	return nil
}

// Run declares the triggers on out and runs the build script through runner.
// Every call runs the command; there is no caching.
func Run(ctx context.Context, cfg Config, out io.Writer, runner Runner) error {
	if cfg.ProjectRoot == "" {
		return ErrProjectRootUnset
	}
	if err := DeclareTriggers(out, cfg.Triggers); err != nil {
		return err
	}
	for _, t := range cfg.Triggers {
		applog.LogInfo(ctx, "build trigger declared", zap.String("path", t))
	}

	cmd := Command{
		Name: cfg.NPM,
		Args: []string{"run", cfg.Script},
		Dir:  cfg.WorkDir(),
	}
	applog.LogInfo(ctx, "frontend build starting",
		zap.String("command", cmd.String()),
		zap.String("dir", cmd.Dir),
	)
	if err := runner.Run(ctx, cmd); err != nil {
		return fmt.Errorf("frontend build: %w", err)
	}
	applog.LogInfo(ctx, "frontend build finished", zap.String("dir", cmd.Dir))
	return nil
}
