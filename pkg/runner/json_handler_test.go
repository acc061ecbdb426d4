package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/turtle/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHandler_NextLine(t *testing.T) {
	input := "\"PLACE 1,2,EAST\"\nMOVE\n\"REPORT\""
	handler := NewJSONHandler(strings.NewReader(input), io.Discard)
	ctx := context.Background()

	for _, want := range []string{"PLACE 1,2,EAST", "MOVE", "REPORT"} {
		got, err := handler.NextLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := handler.NextLine(ctx)
	assert.Equal(t, io.EOF, err)
}

func TestJSONHandler_Write(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(strings.NewReader(""), buf)

	require.NoError(t, handler.Write(context.Background(), "3,3,NORTH"))
	require.NoError(t, handler.SystemOutput(context.Background(), "hello"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var report JSONReport
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &report))
	assert.Equal(t, JSONReport{X: 3, Y: 3, Facing: domain.North, Report: "3,3,NORTH"}, report)
	assert.JSONEq(t, `{"x":3,"y":3,"facing":"NORTH","report":"3,3,NORTH"}`, lines[0])
	assert.JSONEq(t, `{"system":"hello"}`, lines[1])
}

func TestJSONHandler_WriteRejectsGarbage(t *testing.T) {
	handler := NewJSONHandler(strings.NewReader(""), io.Discard)
	assert.ErrorIs(t, handler.Write(context.Background(), "not a report"), domain.ErrParse)
}
