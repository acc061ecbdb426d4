package validator

import "github.com/aretw0/turtle/pkg/domain"

// Validator answers whether coordinates and facings are allowed on a grid.
// It is immutable and safe to share.
type Validator struct {
	bounds domain.Bounds
}

// New creates a validator for the given inclusive bounds.
func New(bounds domain.Bounds) *Validator {
	return &Validator{bounds: bounds}
}

// Bounds returns the grid this validator enforces.
func (v *Validator) Bounds() domain.Bounds {
	return v.bounds
}

// IsValidCoordinate checks both axes against the inclusive bounds.
func (v *Validator) IsValidCoordinate(c domain.Coordinate) bool {
	return v.bounds.Contains(c)
}

// IsValidFacing rejects the undefined sentinel and anything outside the compass.
func (v *Validator) IsValidFacing(f domain.Facing) bool {
	switch f {
	case domain.North, domain.East, domain.South, domain.West:
		return true
	}
	return false
}

// IsValidPosition is true when the agent is placed on the grid with a defined facing.
func (v *Validator) IsValidPosition(p domain.Position) bool {
	return v.IsValidCoordinate(p.Coordinate) && v.IsValidFacing(p.Facing)
}
