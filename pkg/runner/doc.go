/*
Package runner implements the read-execute loop for the Turtle engine.

It is the bridge between the Engine and the outside world: an IOHandler supplies
command lines and receives reports, while the Runner feeds each line to the engine
and decides what a failure means (log and continue, or stop in strict mode).

# Key Components

  - Runner: reads lines until EOF, "exit" or "quit", or context cancellation.
  - TextHandler: plain line IO with a "> " prompt when attached to a terminal.
  - ReadlineHandler: interactive line editing with verb completion.
  - JSONHandler: NDJSON in, one JSON object per report out.

# Usage

	handler := runner.NewTextHandler(os.Stdin, os.Stdout)
	eng, _ := turtle.New(turtle.WithSink(handler))

	r := runner.NewRunner(
		runner.WithEngine(eng),
		runner.WithInputHandler(handler),
	)
	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
