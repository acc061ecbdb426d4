package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/turtle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "turtle version "+turtle.Version+"\n", out)
}

func TestExecCommand(t *testing.T) {
	out, err := execute(t, "", "exec", "--env-file", "", "PLACE 0,0,NORTH", "MOVE", "REPORT")
	require.NoError(t, err)
	assert.Equal(t, "0,1,NORTH\n", out)
}

func TestExecCommand_RequiresArgs(t *testing.T) {
	_, err := execute(t, "", "exec")
	assert.Error(t, err)
}

func TestRunCommand_Piped(t *testing.T) {
	out, err := execute(t, "PLACE 0,0,EAST\nMOVE\nREPORT\n", "run", "--headless")
	require.NoError(t, err)
	assert.Equal(t, "1,0,EAST\n", out)
}
