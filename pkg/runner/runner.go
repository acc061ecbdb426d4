package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/turtle"
	"github.com/aretw0/turtle/internal/logging"
	"github.com/aretw0/turtle/pkg/domain"
)

// ErrNoEngine is returned by Run when no engine was configured.
var ErrNoEngine = errors.New("runner: engine is required")

// Runner handles the read-execute loop of the Turtle engine using an IOHandler.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	Headless bool
	Strict   bool
	Renderer ViewRenderer

	engine Engine
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Run reads lines until input ends, the user types exit or quit, or ctx is done.
// Cancellation is a normal way to stop and yields a nil error.
func (r *Runner) Run(ctx context.Context) error {
	if r.engine == nil {
		return ErrNoEngine
	}
	handler := r.resolveHandler()

	for {
		line, err := handler.NextLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				r.Logger.Debug("runner stopped", "cause", ctx.Err())
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isExit(line) {
			return nil
		}

		transitions, err := r.engine.Execute(ctx, line)
		if err != nil {
			if err := r.handleError(ctx, handler, line, err); err != nil {
				return err
			}
		}
		r.render(ctx, handler, transitions)
	}
}

func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r.Handler
}

// handleError applies the failure policy: stop in strict mode, otherwise tell
// the user (unless headless) and keep going.
func (r *Runner) handleError(ctx context.Context, h IOHandler, line string, err error) error {
	if r.Strict {
		return fmt.Errorf("strict mode: %w", err)
	}

	if len(turtle.ParseErrors(err)) == 0 {
		// Parse errors were already logged by the engine.
		r.Logger.Error("command failed", "input", line, "error", err)
	}
	if r.Headless {
		return nil
	}
	if outErr := h.SystemOutput(ctx, fmt.Sprintf("Error: %v", err)); outErr != nil {
		return fmt.Errorf("output error: %w", outErr)
	}
	return nil
}

func (r *Runner) render(ctx context.Context, h IOHandler, transitions []domain.Transition) {
	if r.Renderer == nil || r.Headless {
		return
	}
	for _, t := range transitions {
		if t.Outcome != domain.OutcomeReported {
			continue
		}
		view, err := r.Renderer(r.engine.Bounds(), t.To)
		if err != nil {
			r.Logger.Warn("render failed", "error", err)
			continue
		}
		if err := h.SystemOutput(ctx, view); err != nil {
			r.Logger.Warn("view output failed", "error", err)
		}
	}
}

func isExit(line string) bool {
	return strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit")
}
