// Package shell binds runbook steps to local shell commands.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/felixgeelhaar/runbook/internal/runbook"
	"github.com/felixgeelhaar/runbook/internal/task"
)

// Options configures how step commands are executed
type Options struct {
	// BaseDir resolves relative step workdirs; defaults to the current directory
	BaseDir string

	// Stdout and Stderr receive the command's output streams.
	// They default to the process's own streams.
	Stdout io.Writer
	Stderr io.Writer

	// DryRun prints the command instead of executing it
	DryRun bool
}

// NewFactory returns a runbook.ActionFactory producing shell actions
func NewFactory(opts Options) runbook.ActionFactory {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	return func(step runbook.Step) task.Action {
		return &Action{step: step, opts: opts}
	}
}

// Action runs one step's command via the shell
type Action struct {
	step runbook.Step
	opts Options
}

// Run implements task.Action
func (a *Action) Run(ctx context.Context) error {
	if a.opts.DryRun {
		fmt.Fprintf(a.opts.Stdout, "would run: %s\n", a.step.Run)
		return nil
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", a.step.Run)
	cmd.Stdout = a.opts.Stdout
	cmd.Stderr = a.opts.Stderr
	cmd.Dir = a.workdir()
	cmd.Env = a.env()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %q: %w", a.step.Run, err)
	}

	return nil
}

func (a *Action) workdir() string {
	if a.step.Workdir == "" {
		return a.opts.BaseDir
	}
	if filepath.IsAbs(a.step.Workdir) {
		return a.step.Workdir
	}
	return filepath.Join(a.opts.BaseDir, a.step.Workdir)
}

// env returns the process environment with the step's variables overlaid
func (a *Action) env() []string {
	if len(a.step.Env) == 0 {
		return nil
	}

	env := os.Environ()
	for k, v := range a.step.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	return env
}

var _ task.Action = (*Action)(nil)
