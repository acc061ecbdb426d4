package ports

import (
	"context"
	"errors"
)

// ErrBatchNotFound is returned by loaders for an unknown reference.
var ErrBatchNotFound = errors.New("batch not found")

// BatchLoader resolves a batch-file reference (e.g. "commands.txt") into its lines, in order.
type BatchLoader interface {
	Load(ctx context.Context, ref string) ([]string, error)
}

// BatchLoaderFunc adapts a function to BatchLoader.
type BatchLoaderFunc func(ctx context.Context, ref string) ([]string, error)

func (f BatchLoaderFunc) Load(ctx context.Context, ref string) ([]string, error) {
	return f(ctx, ref)
}
