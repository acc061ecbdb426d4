package domain

// Outcome classifies what a command did to the state.
type Outcome string

const (
	OutcomeApplied    Outcome = "applied"    // Position replaced
	OutcomeRejected   Outcome = "rejected"   // Would violate bounds or needs a facing; position retained
	OutcomeReported   Outcome = "reported"   // REPORT on a placed agent
	OutcomeSuppressed Outcome = "suppressed" // REPORT before placement
	OutcomeIgnored    Outcome = "ignored"    // Unrecognized command
)

// Transition is the record of one command applied to one position.
// From and To are equal unless Outcome is OutcomeApplied.
type Transition struct {
	Command Command  `json:"command"`
	From    Position `json:"from"`
	To      Position `json:"to"`
	Outcome Outcome  `json:"outcome"`

	// Report carries the formatted position when Outcome is OutcomeReported.
	Report string `json:"report,omitempty"`
}

// Changed is true when the position was replaced.
func (t Transition) Changed() bool {
	return t.Outcome == OutcomeApplied
}
