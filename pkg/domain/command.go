package domain

// Command is one parsed instruction.
// Target is meaningful only when Action is ActionPlace.
type Command struct {
	Action Action   `json:"action"`
	Target Position `json:"target"`

	// Raw is the source text, kept for logs and error reports.
	Raw string `json:"raw,omitempty"`
}

// Place builds a PLACE command.
func Place(x, y int, f Facing) Command {
	return Command{Action: ActionPlace, Target: NewPosition(x, y, f)}
}

// Move builds a MOVE command.
func Move() Command { return Command{Action: ActionMove} }

// Left builds a LEFT command.
func Left() Command { return Command{Action: ActionLeft} }

// Right builds a RIGHT command.
func Right() Command { return Command{Action: ActionRight} }

// Report builds a REPORT command.
func Report() Command { return Command{Action: ActionReport} }

// Unknown builds the no-op command produced for unrecognized input.
func Unknown(raw string) Command { return Command{Action: ActionUnknown, Raw: raw} }
