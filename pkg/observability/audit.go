package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/turtle/pkg/domain"
)

// AuditHooks logs every event at info level.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.InfoContext(ctx, "transition",
				"action", e.Transition.Command.Action,
				"outcome", e.Transition.Outcome,
				"from", e.Transition.From,
				"to", e.Transition.To,
			)
		},
		OnReport: func(ctx context.Context, e *domain.ReportEvent) {
			logger.InfoContext(ctx, "report", "text", e.Text)
		},
		OnParseError: func(ctx context.Context, e *domain.ParseErrorEvent) {
			logger.InfoContext(ctx, "parse_error", "input", e.Err.Input, "line", e.Err.Line)
		},
	}
}
