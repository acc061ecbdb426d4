package domain

import "strings"

// Facing is the compass direction the agent points to.
// The zero value is FacingUndefined, used only before the agent is placed.
type Facing int

const (
	FacingUndefined Facing = iota
	North
	East
	South
	West
)

var facingNames = map[Facing]string{
	FacingUndefined: "UNDEFINED",
	North:           "NORTH",
	East:            "EAST",
	South:           "SOUTH",
	West:            "WEST",
}

// Facings lists the four valid directions in clockwise order.
var Facings = []Facing{North, East, South, West}

// String returns the canonical upper-case name (e.g. "NORTH").
func (f Facing) String() string {
	if name, ok := facingNames[f]; ok {
		return name
	}
	return facingNames[FacingUndefined]
}

// ParseFacing matches s case-insensitively against the four directions.
// Anything else yields FacingUndefined; the caller decides whether that matters.
func ParseFacing(s string) Facing {
	for _, f := range Facings {
		if strings.EqualFold(s, facingNames[f]) {
			return f
		}
	}
	return FacingUndefined
}

// MarshalText renders the canonical name, so JSON and YAML see "NORTH" instead of 1.
func (f Facing) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText is the lenient inverse of MarshalText.
func (f *Facing) UnmarshalText(text []byte) error {
	*f = ParseFacing(string(text))
	return nil
}
