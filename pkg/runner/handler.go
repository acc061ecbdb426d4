package runner

import (
	"context"

	"github.com/aretw0/turtle/pkg/domain"
	"github.com/aretw0/turtle/pkg/ports"
)

// IOHandler defines the strategy for interacting with the user.
// It is both where command lines come from and where reports go, which
// allows switching between Text, Readline and JSON modes as a unit.
type IOHandler interface {
	ports.InputSource
	ports.OutputSink

	// SystemOutput presents a meta-message (errors, grid views) that is not a report.
	SystemOutput(ctx context.Context, msg string) error
}

// Engine is what the Runner drives. *turtle.Engine satisfies it.
type Engine interface {
	Execute(ctx context.Context, raw string) ([]domain.Transition, error)
	Position() domain.Position
	Bounds() domain.Bounds
}

// ViewRenderer turns a position into a human-readable view, e.g. a grid.
type ViewRenderer func(bounds domain.Bounds, p domain.Position) (string, error)
