package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/turtle/internal/logging"
	"github.com/aretw0/turtle/internal/presentation/report"
	"github.com/aretw0/turtle/internal/validator"
	"github.com/aretw0/turtle/pkg/domain"
)

// Engine drives the Machine and turns its transitions into side effects:
// reports go to the reporter, every step goes to the lifecycle hooks.
type Engine struct {
	machine  *Machine
	reporter *report.Reporter
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	clock    func() time.Time
}

// EngineOption configures the runtime engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithReporter sets where REPORT output goes. The default reporter only formats.
func WithReporter(r *report.Reporter) EngineOption {
	return func(e *Engine) {
		if r != nil {
			e.reporter = r
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(clock func() time.Time) EngineOption {
	return func(e *Engine) {
		e.clock = clock
	}
}

// NewEngine creates an engine whose machine is bounded by v.
func NewEngine(v *validator.Validator, opts ...EngineOption) *Engine {
	e := &Engine{
		machine:  NewMachine(v),
		reporter: report.New(nil),
		logger:   logging.NewNop(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Position returns a snapshot of the current position.
func (e *Engine) Position() domain.Position {
	return e.machine.Position()
}

// Placed reports whether the agent holds a valid position.
func (e *Engine) Placed() bool {
	return e.machine.Placed()
}

// Apply executes one command. The returned error only ever comes from the
// output sink; the transition itself is already committed when it is returned.
func (e *Engine) Apply(ctx context.Context, cmd domain.Command) (domain.Transition, error) {
	t := e.machine.Apply(cmd)

	var err error
	if t.Outcome == domain.OutcomeReported {
		t.Report, err = e.reporter.Report(ctx, t.To)
		if err != nil {
			e.logger.Error("report failed", "position", t.To, "error", err)
		} else {
			e.emitReport(ctx, t.To, t.Report)
		}
	}

	e.logger.Debug("command applied",
		"action", t.Command.Action,
		"outcome", t.Outcome,
		"position", t.To,
	)
	e.emitTransition(ctx, t)
	return t, err
}

// ReportParseError logs a rejected line and notifies the hooks.
func (e *Engine) ReportParseError(ctx context.Context, pe *domain.ParseError) {
	e.logger.Warn("ignoring unparseable command", "input", pe.Input, "line", pe.Line, "error", pe.Err)
	if e.hooks.OnParseError == nil {
		return
	}
	e.hooks.OnParseError(ctx, &domain.ParseErrorEvent{
		EventBase: e.base(domain.EventParseError),
		Err:       pe,
	})
}

func (e *Engine) emitTransition(ctx context.Context, t domain.Transition) {
	if e.hooks.OnTransition == nil {
		return
	}
	e.hooks.OnTransition(ctx, &domain.TransitionEvent{
		EventBase:  e.base(domain.EventTransition),
		Transition: t,
	})
}

func (e *Engine) emitReport(ctx context.Context, p domain.Position, text string) {
	if e.hooks.OnReport == nil {
		return
	}
	e.hooks.OnReport(ctx, &domain.ReportEvent{
		EventBase: e.base(domain.EventReport),
		Position:  p,
		Text:      text,
	})
}

func (e *Engine) base(typ domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: e.clock(), Type: typ}
}
