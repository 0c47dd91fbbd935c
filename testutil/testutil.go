// Package testutil holds fixture helpers shared by package tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grovetools/santorini/board"
	"github.com/grovetools/santorini/game"
	"github.com/grovetools/santorini/gamelog"
)

// InitGitRepo initializes a git repository in the given directory
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()

	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		t.Skip("git not available")
	}

	cmd = exec.Command("git", "config", "user.name", "Test User")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to configure git user.name: %v", err)
	}

	cmd = exec.Command("git", "config", "user.email", "test@example.com")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to configure git user.email: %v", err)
	}
}

// PlaceWorkers applies the standard opening: each player's workers placed at
// the given coordinates, alternating players in order.
func PlaceWorkers(t *testing.T, m *game.Manager, placements ...[2]int) {
	t.Helper()
	for _, p := range placements {
		turn, err := board.NewTurn(m.ActivePlayer(), board.ActionPlaceWorker, []int{p[0], p[1]})
		require.NoError(t, err)
		require.NoError(t, m.Apply(turn))
	}
}

// ScriptedGame returns a manager with the placement phase finished and one
// move/build exchange played. Useful as a realistic mid-game fixture.
func ScriptedGame(t *testing.T) *game.Manager {
	t.Helper()
	m := game.NewManager()
	PlaceWorkers(t, m, [2]int{0, 0}, [2]int{4, 4}, [2]int{0, 4}, [2]int{4, 0})

	apply := func(color board.Color, action board.Action, coords ...int) {
		turn, err := board.NewTurn(color, action, coords)
		require.NoError(t, err)
		require.NoError(t, m.Apply(turn))
	}
	apply(board.Blue, board.ActionMove, 0, 0, 0, 1)
	apply(board.Blue, board.ActionBuild, 0, 1, 0, 0)
	return m
}

// TempGameLog writes the manager's game to a log file in a temp directory and
// returns the path.
func TempGameLog(t *testing.T, m *game.Manager) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.log")
	require.NoError(t, gamelog.Save(path, m))
	return path
}

// WriteConfigFile writes a santorini.yml with the given content into dir and
// returns the path.
func WriteConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "santorini.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
