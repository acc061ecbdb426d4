package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/turtle/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFacing(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Facing
	}{
		{"NORTH", domain.North},
		{"north", domain.North},
		{"EaSt", domain.East},
		{"south", domain.South},
		{"WEST", domain.West},
		{"", domain.FacingUndefined},
		{"UP", domain.FacingUndefined},
		{"UNDEFINED", domain.FacingUndefined},
		{" NORTH", domain.FacingUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ParseFacing(tt.in))
		})
	}
}

func TestFacing_String(t *testing.T) {
	assert.Equal(t, "NORTH", domain.North.String())
	assert.Equal(t, "WEST", domain.West.String())
	assert.Equal(t, "UNDEFINED", domain.FacingUndefined.String())
	assert.Equal(t, "UNDEFINED", domain.Facing(42).String())
}

func TestFacing_JSON(t *testing.T) {
	data, err := json.Marshal(domain.NewPosition(1, 2, domain.South))
	require.NoError(t, err)
	assert.JSONEq(t, `{"coordinate":{"x":1,"y":2},"facing":"SOUTH"}`, string(data))

	var p domain.Position
	require.NoError(t, json.Unmarshal([]byte(`{"coordinate":{"x":3,"y":4},"facing":"east"}`), &p))
	assert.Equal(t, domain.NewPosition(3, 4, domain.East), p)
}

func TestParseAction(t *testing.T) {
	assert.Equal(t, domain.ActionPlace, domain.ParseAction("place"))
	assert.Equal(t, domain.ActionReport, domain.ParseAction("Report"))
	assert.Equal(t, domain.ActionUnknown, domain.ParseAction("JUMP"))
	assert.Equal(t, domain.ActionUnknown, domain.ParseAction(""))
	assert.True(t, domain.ActionLeft.IsTurn())
	assert.False(t, domain.ActionMove.IsTurn())
}
