package domain

import "fmt"

// Coordinate is an integer point on the grid. It has no bounds of its own.
type Coordinate struct {
	X int `json:"x" mapstructure:"x" yaml:"x"`
	Y int `json:"y" mapstructure:"y" yaml:"y"`
}

// Add returns the coordinate offset by o.
func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y}
}

// Bounds is the inclusive rectangle of valid coordinates.
type Bounds struct {
	Min Coordinate `json:"min" mapstructure:"min" yaml:"min"`
	Max Coordinate `json:"max" mapstructure:"max" yaml:"max"`
}

// DefaultBounds returns the 5x5 grid (0,0)-(4,4).
func DefaultBounds() Bounds {
	return Bounds{
		Min: Coordinate{X: 0, Y: 0},
		Max: Coordinate{X: 4, Y: 4},
	}
}

// Validate reports ErrInvalidBounds when Min exceeds Max on either axis or
// when the grid contains the Unplaced coordinate.
func (b Bounds) Validate() error {
	if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y {
		return fmt.Errorf("%w: min=(%d,%d) max=(%d,%d)", ErrInvalidBounds, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	}
	if b.Contains(Unplaced.Coordinate) {
		return fmt.Errorf("%w: grid must not contain (%d,%d), the unplaced coordinate",
			ErrInvalidBounds, Unplaced.Coordinate.X, Unplaced.Coordinate.Y)
	}
	return nil
}

// Contains reports whether c lies inside the inclusive rectangle.
func (b Bounds) Contains(c Coordinate) bool {
	return c.X >= b.Min.X && c.X <= b.Max.X && c.Y >= b.Min.Y && c.Y <= b.Max.Y
}

// Width is the number of columns.
func (b Bounds) Width() int {
	return b.Max.X - b.Min.X + 1
}

// Height is the number of rows.
func (b Bounds) Height() int {
	return b.Max.Y - b.Min.Y + 1
}
