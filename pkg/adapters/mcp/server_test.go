package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/turtle"
	"github.com/aretw0/turtle/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := turtle.New()
	require.NoError(t, err)
	return NewServer(eng, nil)
}

func TestHandleExecute(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	for _, line := range []string{"PLACE 0,0,NORTH", "MOVE"} {
		_, err := s.handleExecute(ctx, mcp.CallToolRequest{}, ExecuteArgs{Command: line})
		require.NoError(t, err)
	}
	resp, err := s.handleExecute(ctx, mcp.CallToolRequest{}, ExecuteArgs{Command: "REPORT"})
	require.NoError(t, err)

	assert.Equal(t, []string{"0,1,NORTH"}, resp.Reports)
	assert.Equal(t, PositionResponse{X: 0, Y: 1, Facing: "NORTH", Placed: true}, resp.Position)
}

func TestHandleExecute_ParseError(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleExecute(context.Background(), mcp.CallToolRequest{}, ExecuteArgs{Command: "PLACE 1"})
	require.NoError(t, err, "parse errors are reported in the result, not as tool failures")
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "PLACE 1")
	assert.False(t, resp.Position.Placed)
}

func TestHandleExecute_BatchWithoutLoader(t *testing.T) {
	s := newTestServer(t)

	_, err := s.handleExecute(context.Background(), mcp.CallToolRequest{}, ExecuteArgs{Command: "route.txt"})
	assert.Error(t, err)
}

func TestHandlePlaceAndApply(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handlePlace(ctx, mcp.CallToolRequest{}, PlaceArgs{X: 4, Y: 4, Facing: "east"})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, resp.Transitions[0].Outcome)

	resp, err = s.apply(ctx, domain.Move())
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, resp.Transitions[0].Outcome)

	resp, err = s.apply(ctx, domain.Report())
	require.NoError(t, err)
	assert.Equal(t, []string{"4,4,EAST"}, resp.Reports)

	resp, err = s.handlePlace(ctx, mcp.CallToolRequest{}, PlaceArgs{X: 9, Y: 0, Facing: "NORTH"})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, resp.Transitions[0].Outcome)
	assert.Equal(t, PositionResponse{X: 4, Y: 4, Facing: "EAST", Placed: true}, resp.Position)
}
