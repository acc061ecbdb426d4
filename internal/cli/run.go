package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/turtle"
	"github.com/aretw0/turtle/internal/presentation/tui"
	"github.com/aretw0/turtle/pkg/adapters/file"
	"github.com/aretw0/turtle/pkg/adapters/memory"
	"github.com/aretw0/turtle/pkg/domain"
	"github.com/aretw0/turtle/pkg/observability"
	"github.com/aretw0/turtle/pkg/ports"
	"github.com/aretw0/turtle/pkg/runner"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Options

	// Files are command files replayed in order. Empty means standard input.
	Files    []string
	JSON     bool
	Headless bool
	Follow   bool
	Grid     bool
	Strict   bool

	Stdin  io.Reader
	Stdout io.Writer
}

// ErrFollowNeedsOneFile is returned when --follow is combined with zero or several files.
var ErrFollowNeedsOneFile = errors.New("--follow requires exactly one file")

// Run handles the 'run' command: an interactive or piped session on standard
// input, or a replay of command files.
func Run(ctx context.Context, opts RunOptions) error {
	if opts.Follow && len(opts.Files) != 1 {
		return ErrFollowNeedsOneFile
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	logger := createLogger(opts.Debug)

	handler, closeHandler, err := createHandler(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer closeHandler()

	var hooks domain.LifecycleHooks
	if opts.Debug {
		hooks = observability.AuditHooks(logger)
	}

	engine, cleanup, err := createEngine(ctx, cfg, logger, localLoader(), handler, hooks)
	defer cleanup()
	if err != nil {
		return err
	}

	runnerOpts := []runner.Option{
		runner.WithEngine(engine),
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
		runner.WithHeadless(opts.Headless),
		runner.WithStrict(opts.Strict || cfg.Strict),
	}
	if opts.Grid {
		render, err := tui.NewGridRenderer()
		if err != nil {
			return err
		}
		runnerOpts = append(runnerOpts, runner.WithRenderer(render))
	}

	if _, ok := handler.(*runner.ReadlineHandler); ok && !opts.Headless {
		tui.PrintBanner(opts.Stdout, turtle.Version)
	}

	logger.Debug("session started", "files", opts.Files, "follow", opts.Follow, "bounds", cfg.Grid)
	return handleExecutionError(runner.NewRunner(runnerOpts...).Run(ctx))
}

// createHandler picks the IO strategy: NDJSON, readline on a terminal, or
// plain text. With files, lines come from the files and output still goes
// through the chosen handler.
func createHandler(ctx context.Context, opts RunOptions, logger *slog.Logger) (runner.IOHandler, func(), error) {
	noop := func() {}

	var out runner.IOHandler
	switch {
	case opts.JSON:
		out = runner.NewJSONHandler(opts.Stdin, opts.Stdout)
	case len(opts.Files) == 0 && !opts.Headless && runner.IsTerminal(opts.Stdin) && runner.IsTerminal(opts.Stdout):
		rl, err := runner.NewReadlineHandler(runner.DefaultPrompt)
		if err != nil {
			return nil, noop, err
		}
		rl.Style = tui.ReportStyle()
		return rl, func() { _ = rl.Close() }, nil
	default:
		var textOpts []runner.TextHandlerOption
		if runner.IsTerminal(opts.Stdout) {
			textOpts = append(textOpts, runner.WithStyle(tui.ReportStyle()))
		}
		if len(opts.Files) > 0 || opts.Headless {
			textOpts = append(textOpts, runner.WithPrompt(""))
		}
		out = runner.NewTextHandler(opts.Stdin, opts.Stdout, textOpts...)
	}

	if len(opts.Files) == 0 {
		return out, noop, nil
	}

	if opts.Follow {
		follower, err := file.NewFollower(opts.Files[0], file.WithLogger(logger))
		if err != nil {
			return nil, noop, err
		}
		return &sourceHandler{InputSource: follower, out: out}, func() { _ = follower.Close() }, nil
	}

	var lines []string
	for _, path := range opts.Files {
		loaded, err := file.NewLoader(filepath.Dir(path)).Load(ctx, filepath.Base(path))
		if err != nil {
			return nil, noop, fmt.Errorf("failed to read %s: %w", path, err)
		}
		lines = append(lines, loaded...)
	}
	return &sourceHandler{InputSource: memory.NewSource(lines...), out: out}, noop, nil
}

// sourceHandler reads lines from a source other than the handler's own input.
type sourceHandler struct {
	ports.InputSource
	out runner.IOHandler
}

func (h *sourceHandler) Write(ctx context.Context, text string) error {
	return h.out.Write(ctx, text)
}

func (h *sourceHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.out.SystemOutput(ctx, msg)
}
