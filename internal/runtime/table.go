package runtime

import "github.com/aretw0/turtle/pkg/domain"

type turn struct {
	from   domain.Facing
	action domain.Action
}

// turns is the complete (facing, turn) -> facing table.
var turns = map[turn]domain.Facing{
	{domain.East, domain.ActionLeft}:   domain.North,
	{domain.East, domain.ActionRight}:  domain.South,
	{domain.West, domain.ActionLeft}:   domain.South,
	{domain.West, domain.ActionRight}:  domain.North,
	{domain.North, domain.ActionLeft}:  domain.West,
	{domain.North, domain.ActionRight}: domain.East,
	{domain.South, domain.ActionLeft}:  domain.East,
	{domain.South, domain.ActionRight}: domain.West,
}

// offsets holds the unit step for each valid facing. South decrements Y.
var offsets = map[domain.Facing]domain.Coordinate{
	domain.North: {X: 0, Y: 1},
	domain.East:  {X: 1, Y: 0},
	domain.South: {X: 0, Y: -1},
	domain.West:  {X: -1, Y: 0},
}
