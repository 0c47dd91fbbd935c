package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/santorini/game"
)

func TestParsePlainCoordinates(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"0 0", []int{0, 0}, false},
		{"1,2,3,4", []int{1, 2, 3, 4}, false},
		{"  2 3  ", []int{2, 3}, false},
		{"a b", nil, true},
		{"1 x", nil, true},
	}

	for _, tt := range tests {
		got, err := parsePlainCoordinates(tt.input)
		if tt.wantErr {
			require.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.want, got)
	}
}

func TestRunPlainGameAppliesTurnsUntilEOF(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("0 0\n4 4\n"))
	cmd.SetOut(&out)

	manager := game.NewManager()
	require.NoError(t, runPlainGame(cmd, manager, ""))

	require.Len(t, manager.History(), 2)
	require.Contains(t, out.String(), "player b: place_worker")
	require.Contains(t, out.String(), "player w: place_worker")
}

func TestRunPlainGameReportsIllegalInput(t *testing.T) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader("0 0\n0 0\nnope\n"))
	cmd.SetOut(&out)

	manager := game.NewManager()
	require.NoError(t, runPlainGame(cmd, manager, ""))

	require.Len(t, manager.History(), 1)
	require.Contains(t, out.String(), "ILLEGAL_MOVE")
	require.Contains(t, out.String(), "invalid coordinate")
}
