/*
Package ports defines the driven ports (interfaces) for the Turtle interpreter.

These interfaces decouple the core logic from external implementations, allowing
the same engine to read commands from a terminal, a file, an HTTP request or an
MCP client, and to deliver reports to a console, a Redis list or a test recorder.

# Key Interfaces

  - InputSource: supplies one command line per call, io.EOF at the end.
  - OutputSink: receives formatted reports, in REPORT order.
  - BatchLoader: resolves a batch-file reference into its lines.
*/
package ports
