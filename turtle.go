package turtle

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aretw0/turtle/internal/compiler"
	"github.com/aretw0/turtle/internal/logging"
	"github.com/aretw0/turtle/internal/presentation/report"
	"github.com/aretw0/turtle/internal/runtime"
	"github.com/aretw0/turtle/internal/validator"
	"github.com/aretw0/turtle/pkg/domain"
	"github.com/aretw0/turtle/pkg/ports"
)

// Engine is the high-level entry point for the Turtle library.
// It owns one agent and serializes every parse-apply-report cycle,
// so it can be shared between goroutines (HTTP handlers, MCP tools).
type Engine struct {
	mu      sync.Mutex
	runtime *runtime.Engine
	parser  *compiler.Parser

	bounds domain.Bounds
	sink   ports.OutputSink
	loader ports.BatchLoader
	suffix string
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithBounds sets the grid. The default is the 5x5 grid (0,0)-(4,4).
func WithBounds(b domain.Bounds) Option {
	return func(e *Engine) {
		e.bounds = b
	}
}

// WithSink sets where reports are written. Without a sink reports are only
// returned in the transitions.
func WithSink(s ports.OutputSink) Option {
	return func(e *Engine) {
		e.sink = s
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls merge.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithBatchLoader enables batch references (lines ending in the batch suffix).
func WithBatchLoader(l ports.BatchLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithBatchSuffix changes the batch suffix (default ".txt").
func WithBatchSuffix(suffix string) Option {
	return func(e *Engine) {
		e.suffix = suffix
	}
}

// New initializes a new Turtle Engine with an unplaced agent.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		bounds: domain.DefaultBounds(),
		suffix: domain.DefaultBatchSuffix,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if err := eng.bounds.Validate(); err != nil {
		return nil, err
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.parser = compiler.NewParser(
		compiler.WithBatchSuffix(eng.suffix),
		compiler.WithBatchLoader(eng.loader),
	)

	eng.runtime = runtime.NewEngine(validator.New(eng.bounds),
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithReporter(report.New(eng.sink)),
	)

	return eng, nil
}

// Execute parses raw (a command line or a batch reference) and applies the
// resulting commands in order.
//
// Lines that fail to parse are skipped and their *domain.ParseError values are
// joined into the returned error, next to any sink failure. The transitions
// are returned in every case except when a batch could not be loaded at all.
func (e *Engine) Execute(ctx context.Context, raw string) ([]domain.Transition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmds, parseErr := e.parser.Parse(ctx, raw)
	if len(cmds) == 0 && parseErr != nil {
		return nil, parseErr
	}
	for _, pe := range ParseErrors(parseErr) {
		e.runtime.ReportParseError(ctx, pe)
	}

	errs := []error{parseErr}
	transitions := make([]domain.Transition, 0, len(cmds))
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		t, err := e.runtime.Apply(ctx, cmd)
		if err != nil {
			errs = append(errs, err)
		}
		transitions = append(transitions, t)
	}
	return transitions, errors.Join(errs...)
}

// Apply applies an already-built command, bypassing the parser.
func (e *Engine) Apply(ctx context.Context, cmd domain.Command) (domain.Transition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runtime.Apply(ctx, cmd)
}

// Position returns a snapshot of the agent's position.
func (e *Engine) Position() domain.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runtime.Position()
}

// Placed reports whether the agent has been validly placed.
func (e *Engine) Placed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.runtime.Placed()
}

// Bounds returns the grid the engine was built with.
func (e *Engine) Bounds() domain.Bounds {
	return e.bounds
}

// ParseErrors extracts every *domain.ParseError from err, including those
// inside errors.Join trees.
func ParseErrors(err error) []*domain.ParseError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []*domain.ParseError
		for _, inner := range joined.Unwrap() {
			out = append(out, ParseErrors(inner)...)
		}
		return out
	}
	var pe *domain.ParseError
	if errors.As(err, &pe) {
		return []*domain.ParseError{pe}
	}
	return nil
}
