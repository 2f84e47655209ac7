package buildhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command is an external program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner executes a Command to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command string
	Code    int
	Err     error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec, streaming their output. The child is
// killed when ctx is cancelled.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner streams child output to the process's own stdout and stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr

	err := c.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Command: cmd.String(), Code: exitErr.ExitCode(), Err: err}
	}
	return fmt.Errorf("spawn %s: %w", cmd.String(), err)
}
