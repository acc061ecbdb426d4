package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithEngine configures the engine that executes lines.
func WithEngine(engine Engine) Option {
	return func(r *Runner) {
		r.engine = engine
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithHeadless suppresses system messages; errors only reach the log.
func WithHeadless(headless bool) Option {
	return func(r *Runner) {
		r.Headless = headless
	}
}

// WithStrict makes the first failing line (parse, batch or sink error) end the run.
func WithStrict(strict bool) Option {
	return func(r *Runner) {
		r.Strict = strict
	}
}

// WithRenderer shows a view after every REPORT.
func WithRenderer(renderer ViewRenderer) Option {
	return func(r *Runner) {
		r.Renderer = renderer
	}
}
