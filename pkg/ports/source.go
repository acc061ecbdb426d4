package ports

import "context"

// InputSource supplies command lines one at a time.
// It does not care whether lines originate from a terminal or a file.
type InputSource interface {
	// NextLine blocks until a line is available, the context is done, or input ends.
	// End of input is reported as io.EOF.
	NextLine(ctx context.Context) (string, error)
}
