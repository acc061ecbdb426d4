/*
Package turtle is a command interpreter for a single agent on a bounded grid.

The agent starts unplaced. PLACE X,Y,F puts it on the grid facing NORTH, EAST,
SOUTH or WEST; MOVE steps one cell forward; LEFT and RIGHT rotate it 90 degrees;
REPORT writes its position as "X,Y,FACING". Any command that would take the agent
off the grid is dropped and the position is kept, so the agent can never fall.

# Architecture

The package follows a Hexagonal layout. The core (parser, validator, state
machine and reporter) lives under internal/ and only talks to the outside world
through the ports in pkg/ports:

  - InputSource: where command lines come from (terminal, file, NDJSON stream).
  - OutputSink: where reports go (stdout, Redis, memory).
  - BatchLoader: resolves batch references such as "route.txt" to lines.

Adapters for HTTP, MCP, Redis, files and memory live under pkg/adapters.

# Usage

	eng, err := turtle.New(turtle.WithSink(ports.SinkFunc(func(_ context.Context, s string) error {
		fmt.Println(s)
		return nil
	})))
	if err != nil {
		log.Fatal(err)
	}

	for _, line := range []string{"PLACE 0,0,NORTH", "MOVE", "REPORT"} {
		if _, err := eng.Execute(ctx, line); err != nil {
			log.Println(err)
		}
	}
	// Output: 0,1,NORTH

Lines that cannot be parsed (for example "PLACE 1,2") are reported as
*domain.ParseError and otherwise ignored. Unknown verbs are ignored silently.
*/
package turtle
