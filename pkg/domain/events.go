package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTransition EventType = "transition"
	EventReport     EventType = "report"
	EventParseError EventType = "parse_error"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// TransitionEvent is emitted for every applied command, including no-ops.
type TransitionEvent struct {
	EventBase
	Transition Transition `json:"transition"`
}

// ReportEvent is emitted after a report reached the output sink.
type ReportEvent struct {
	EventBase
	Position Position `json:"position"`
	Text     string   `json:"text"`
}

// ParseErrorEvent is emitted for each line the parser rejected.
type ParseErrorEvent struct {
	EventBase
	Err *ParseError `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnTransition func(context.Context, *TransitionEvent)
	OnReport     func(context.Context, *ReportEvent)
	OnParseError func(context.Context, *ParseErrorEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransition: chain(h.OnTransition, other.OnTransition),
		OnReport:     chain(h.OnReport, other.OnReport),
		OnParseError: chain(h.OnParseError, other.OnParseError),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
