package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunOutputSinkContract verifies that a sink which can read back its reports
// keeps them in write order and does not alter the text.
// The sink must be empty when the contract starts.
func RunOutputSinkContract(t *testing.T, sink interface {
	OutputSink
	ReportReader
}) {
	t.Helper()
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		reports, err := sink.Reports(ctx)
		require.NoError(t, err)
		assert.Empty(t, reports)
	})

	t.Run("Order Preserved", func(t *testing.T) {
		want := []string{"0,0,NORTH", "0,1,NORTH", "0,1,WEST"}
		for _, r := range want {
			require.NoError(t, sink.Write(ctx, r))
		}

		got, err := sink.Reports(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

// RunBatchLoaderContract verifies that a loader returns the lines of ref in order
// and fails for a reference it does not know.
func RunBatchLoaderContract(t *testing.T, loader BatchLoader, ref string, want []string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load", func(t *testing.T) {
		lines, err := loader.Load(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, want, lines)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := loader.Load(ctx, "does-not-exist.txt")
		assert.Error(t, err)
	})
}
