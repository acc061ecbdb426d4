package report

import (
	"context"
	"fmt"

	"github.com/aretw0/turtle/pkg/domain"
	"github.com/aretw0/turtle/pkg/ports"
)

// Format renders a position as "X,Y,FACING", e.g. "0,0,WEST".
func Format(p domain.Position) string {
	return p.String()
}

// Reporter formats positions and hands them to an output sink.
type Reporter struct {
	sink ports.OutputSink
}

// New creates a reporter. A nil sink only formats.
func New(sink ports.OutputSink) *Reporter {
	return &Reporter{sink: sink}
}

// Report formats p, writes it to the sink and returns the written text.
func (r *Reporter) Report(ctx context.Context, p domain.Position) (string, error) {
	text := Format(p)
	if r.sink == nil {
		return text, nil
	}
	if err := r.sink.Write(ctx, text); err != nil {
		return text, fmt.Errorf("failed to write report: %w", err)
	}
	return text, nil
}
