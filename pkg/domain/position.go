package domain

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Position is the agent's complete state at an instant.
type Position struct {
	Coordinate Coordinate `json:"coordinate"`
	Facing     Facing     `json:"facing"`
}

// Unplaced is the sentinel state held before the first valid PLACE.
// Bounds.Validate rejects grids that contain its coordinate, so the
// validator alone gates every command issued in this state.
var Unplaced = Position{
	Coordinate: Coordinate{X: -1, Y: -1},
	Facing:     FacingUndefined,
}

// NewPosition builds a Position from its parts.
func NewPosition(x, y int, f Facing) Position {
	return Position{Coordinate: Coordinate{X: x, Y: y}, Facing: f}
}

// String renders the position as "X,Y,FACING".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d,%s", p.Coordinate.X, p.Coordinate.Y, p.Facing)
}

// LogValue implements slog.LogValuer.
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("x", p.Coordinate.X),
		slog.Int("y", p.Coordinate.Y),
		slog.String("facing", p.Facing.String()),
	)
}

// ParsePosition is the inverse of String. It is strict: exactly three fields,
// integer coordinates and one of the four facings.
func ParsePosition(s string) (Position, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 {
		return Position{}, fmt.Errorf("%w: position %q", ErrParse, s)
	}
	x, err := strconv.Atoi(parts[0])
	if err != nil {
		return Position{}, fmt.Errorf("%w: x in %q", ErrParse, s)
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return Position{}, fmt.Errorf("%w: y in %q", ErrParse, s)
	}
	f := ParseFacing(parts[2])
	if f == FacingUndefined {
		return Position{}, fmt.Errorf("%w: facing in %q", ErrParse, s)
	}
	return NewPosition(x, y, f), nil
}
