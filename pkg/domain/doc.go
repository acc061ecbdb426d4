/*
Package domain contains the core value types of the Turtle interpreter.

It defines the grid model (Coordinate, Bounds), the agent state (Facing, Position),
the command language (Action, Command) and the record of an applied command
(Transition). This package is kept pure and free of I/O, following Hexagonal
Architecture principles: validation lives in internal/validator and state changes
in internal/runtime.

# Key Entities

  - Position: the agent's complete state (Coordinate + Facing). Unplaced is the sentinel
    used before the first valid PLACE.
  - Command: a tagged union over the actions. Only PLACE carries a Target.
  - Transition: what a single command did (From, To, Outcome).
  - ParseError: the only error the command language surfaces to callers.
*/
package domain
