package domain

const (
	// DefaultBatchSuffix marks an input string as a reference to a file of commands.
	DefaultBatchSuffix = ".txt"
)
