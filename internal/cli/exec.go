package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/turtle"
	"github.com/aretw0/turtle/pkg/domain"
	"github.com/aretw0/turtle/pkg/observability"
	"github.com/aretw0/turtle/pkg/ports"
)

// ExecOptions configures the 'exec' command.
type ExecOptions struct {
	Options

	// Lines are executed in order against one engine.
	Lines  []string
	Strict bool

	Stdout io.Writer
	Stderr io.Writer
}

// Exec runs each line as a command (or batch reference) and prints reports.
// Parse errors are printed and skipped unless strict; any other failure
// is returned once every line has run.
func Exec(ctx context.Context, opts ExecOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := createLogger(opts.Debug)

	var hooks domain.LifecycleHooks
	if opts.Debug {
		hooks = observability.AuditHooks(logger)
	}

	sink := ports.SinkFunc(func(_ context.Context, text string) error {
		_, err := fmt.Fprintln(opts.Stdout, text)
		return err
	})
	engine, cleanup, err := createEngine(ctx, cfg, logger, localLoader(), sink, hooks)
	defer cleanup()
	if err != nil {
		return err
	}

	strict := opts.Strict || cfg.Strict
	var failures []error
	for _, line := range opts.Lines {
		if _, err := engine.Execute(ctx, line); err != nil {
			if strict {
				return fmt.Errorf("strict mode: %w", err)
			}
			fmt.Fprintf(opts.Stderr, "Error: %v\n", err)
			if len(turtle.ParseErrors(err)) == 0 {
				failures = append(failures, err)
			}
		}
		if ctx.Err() != nil {
			break
		}
	}
	return handleExecutionError(errors.Join(failures...))
}
