package ports

import (
	"context"
	"errors"
)

// OutputSink receives formatted reports. Writes preserve REPORT order.
type OutputSink interface {
	Write(ctx context.Context, text string) error
}

// ReportReader is implemented by sinks that keep what they received.
type ReportReader interface {
	Reports(ctx context.Context) ([]string, error)
}

// MultiSink writes every report to each sink in order.
// All sinks are attempted; their errors are joined.
type MultiSink []OutputSink

func (m MultiSink) Write(ctx context.Context, text string) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Write(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SinkFunc adapts a function to OutputSink.
type SinkFunc func(ctx context.Context, text string) error

func (f SinkFunc) Write(ctx context.Context, text string) error {
	return f(ctx, text)
}
