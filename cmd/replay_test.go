package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grovetools/santorini/testutil"
)

func TestReplayCommand(t *testing.T) {
	manager := testutil.ScriptedGame(t)
	logPath := testutil.TempGameLog(t, manager)
	t.Chdir(t.TempDir())

	cmd := NewReplayCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{logPath})

	require.NoError(t, cmd.Execute())

	require.Contains(t, out.String(), "turn 1: b|place_worker|0|0")
	require.Contains(t, out.String(), "turn 5: b|move|0|0|0|1")
	require.Contains(t, out.String(), "turn 6: b|build|0|1|0|0")
}

func TestReplayCommandMissingLog(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := NewReplayCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"does-not-exist.log"})

	require.Error(t, cmd.Execute())
}
