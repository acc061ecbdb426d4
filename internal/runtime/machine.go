package runtime

import (
	"github.com/aretw0/turtle/internal/validator"
	"github.com/aretw0/turtle/pkg/domain"
)

// Machine is the position state machine. It is the sole owner and sole mutator
// of the agent's Position; callers only ever receive copies.
//
// Machine is not safe for concurrent use. The engine facade serializes access.
type Machine struct {
	validator *validator.Validator
	current   domain.Position
}

// NewMachine creates a machine in the unplaced sentinel state.
func NewMachine(v *validator.Validator) *Machine {
	return &Machine{
		validator: v,
		current:   domain.Unplaced,
	}
}

// Position returns a snapshot of the current state.
func (m *Machine) Position() domain.Position {
	return m.current
}

// Placed reports whether a valid PLACE has happened.
func (m *Machine) Placed() bool {
	return m.validator.IsValidPosition(m.current)
}

// Apply runs cmd against the current position and commits the result.
func (m *Machine) Apply(cmd domain.Command) domain.Transition {
	t := Next(m.validator, m.current, cmd)
	m.current = t.To
	return t
}

// Next computes the transition for cmd applied to current without side effects.
// It is total: every input yields either a replaced or a retained position.
func Next(v *validator.Validator, current domain.Position, cmd domain.Command) domain.Transition {
	t := domain.Transition{
		Command: cmd,
		From:    current,
		To:      current,
	}

	switch cmd.Action {
	case domain.ActionPlace:
		// Only the coordinate gates PLACE; the facing is copied as given.
		if !v.IsValidCoordinate(cmd.Target.Coordinate) {
			t.Outcome = domain.OutcomeRejected
			return t
		}
		t.To = cmd.Target

	case domain.ActionMove:
		if !v.IsValidCoordinate(current.Coordinate) {
			t.Outcome = domain.OutcomeRejected
			return t
		}
		offset, ok := offsets[current.Facing]
		if !ok {
			t.Outcome = domain.OutcomeRejected
			return t
		}
		candidate := current.Coordinate.Add(offset)
		if !v.IsValidCoordinate(candidate) {
			t.Outcome = domain.OutcomeRejected
			return t
		}
		t.To.Coordinate = candidate

	case domain.ActionLeft, domain.ActionRight:
		if !v.IsValidFacing(current.Facing) {
			t.Outcome = domain.OutcomeRejected
			return t
		}
		t.To.Facing = turns[turn{from: current.Facing, action: cmd.Action}]

	case domain.ActionReport:
		if v.IsValidPosition(current) {
			t.Outcome = domain.OutcomeReported
		} else {
			t.Outcome = domain.OutcomeSuppressed
		}
		return t

	default:
		t.Outcome = domain.OutcomeIgnored
		return t
	}

	t.Outcome = domain.OutcomeApplied
	return t
}
