package domain

import "strings"

// Action is the tag of a Command.
type Action string

const (
	ActionPlace   Action = "PLACE"
	ActionMove    Action = "MOVE"
	ActionLeft    Action = "LEFT"
	ActionRight   Action = "RIGHT"
	ActionReport  Action = "REPORT"
	ActionUnknown Action = "UNKNOWN" // Unrecognized verb, applied as a no-op
)

// Actions lists the verbs of the command language.
var Actions = []Action{ActionPlace, ActionMove, ActionLeft, ActionRight, ActionReport}

// ParseAction matches a verb case-insensitively. Unknown verbs yield ActionUnknown.
func ParseAction(verb string) Action {
	for _, a := range Actions {
		if strings.EqualFold(verb, string(a)) {
			return a
		}
	}
	return ActionUnknown
}

// IsTurn is true for LEFT and RIGHT.
func (a Action) IsTurn() bool {
	return a == ActionLeft || a == ActionRight
}
