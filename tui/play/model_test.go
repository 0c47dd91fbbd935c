package play

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/santorini/game"
)

func enterValue(t *testing.T, m Model, value string) Model {
	t.Helper()
	m.input.SetValue(value)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func TestSubmitAppliesTurn(t *testing.T) {
	mgr := game.NewManager()
	m := New(mgr)

	m = enterValue(t, m, "0 0")
	require.Empty(t, m.errMsg)
	require.Len(t, mgr.History(), 1)
	require.Equal(t, "", m.input.Value(), "input should reset after a valid turn")
}

func TestSubmitReportsIllegalTurn(t *testing.T) {
	mgr := game.NewManager()
	m := New(mgr)

	m = enterValue(t, m, "0 0")
	// Same square again: occupied
	m = enterValue(t, m, "0 0")
	require.NotEmpty(t, m.errMsg)
	require.Len(t, mgr.History(), 1)

	m = enterValue(t, m, "not numbers")
	require.Contains(t, m.errMsg, "invalid coordinate")
}

func TestSubmitSavesTurns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	require.NoError(t, os.WriteFile(path, []byte("5|5|4|2\nb|w\n"), 0644))

	mgr := game.NewManager()
	m := New(mgr, WithSavePath(path))

	m = enterValue(t, m, "0 0")
	require.Empty(t, m.errMsg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "b|place_worker|0|0")
}

func TestViewShowsPromptAndBoard(t *testing.T) {
	mgr := game.NewManager()
	m := New(mgr)
	m.plainBoard = true

	view := m.View()
	require.Contains(t, view, "player b")
	require.Contains(t, view, "place_worker")
	require.Contains(t, view, "0")
}

func TestEscQuits(t *testing.T) {
	mgr := game.NewManager()
	m := New(mgr)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.True(t, updated.(Model).quit)
	require.Equal(t, "", strings.TrimSpace(updated.(Model).View()))
}
