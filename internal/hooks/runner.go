// Package hooks runs the external commands that a configuration file binds
// to an operation. They are what "release" and "update" do on a given host;
// syscli itself attaches no meaning to either operation.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"syscli/internal/config"
	"syscli/internal/dispatch"
	"syscli/internal/logger"
)

// Runner executes hooks sequentially, streaming their output to the process streams.
type Runner struct {
	log    *logger.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a Runner whose children write to stdout and stderr.
func NewRunner(log *logger.Logger, stdout, stderr io.Writer) *Runner {
	return &Runner{
		log:    log,
		stdout: stdout,
		stderr: stderr,
	}
}

// Handlers builds a complete dispatch table from the hooks in cfg.
// Operations without hooks get a handler that logs and succeeds.
func (r *Runner) Handlers(cfg *config.Config) dispatch.Handlers {
	handlers := dispatch.Handlers{}
	for _, op := range dispatch.Operations() {
		handlers[op] = r.Handler(op, cfg.HooksFor(op))
	}
	return handlers
}

// Handler returns a dispatch.Handler that runs hooks for op in order.
func (r *Runner) Handler(op dispatch.Operation, hooks []config.Hook) dispatch.Handler {
	return func(ctx context.Context) error {
		if len(hooks) == 0 {
			r.log.Info("no hooks configured for %s", op)
			return nil
		}
		return r.Run(ctx, hooks)
	}
}

// Run executes hooks one after another and stops at the first failure.
func (r *Runner) Run(ctx context.Context, hooks []config.Hook) error {
	for i, h := range hooks {
		r.log.Info("running hook %d/%d: %s", i+1, len(hooks), h.Label())
		if err := r.runOne(ctx, h); err != nil {
			return fmt.Errorf("hook %q: %w", h.Label(), err)
		}
	}
	return nil
}

// runOne executes a single hook, applying its directory, environment and timeout.
func (r *Runner) runOne(ctx context.Context, h config.Hook) error {
	if len(h.Run) == 0 {
		return errors.New("no command to run")
	}
	timeout, err := h.TimeoutDuration()
	if err != nil {
		return err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r.log.Debug("+ %s", strings.Join(h.Run, " "))
	cmd := exec.CommandContext(ctx, h.Run[0], h.Run[1:]...)
	cmd.Dir = h.Dir
	cmd.Env = mergeEnv(os.Environ(), h.Env)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("timed out after %s", timeout)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return errors.New("interrupted")
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("exited with code %d", exitErr.ExitCode())
		}
		return err
	}
	return nil
}

// mergeEnv appends extra to base in key order. Later entries win in os/exec.
func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(base)+len(keys))
	env = append(env, base...)
	for _, k := range keys {
		env = append(env, k+"="+extra[k])
	}
	return env
}
