package gamelog

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/santorini/board"
	"github.com/grovetools/santorini/errors"
	"github.com/grovetools/santorini/game"
)

// scriptedGame plays the placement phase plus one full move/build turn.
func scriptedGame(t *testing.T) *game.Manager {
	t.Helper()
	m := game.NewManager()

	turns := []board.Turn{
		board.PlaceWorkerTurn{Color: board.Blue, X: 0, Y: 0},
		board.PlaceWorkerTurn{Color: board.White, X: 4, Y: 4},
		board.PlaceWorkerTurn{Color: board.Blue, X: 1, Y: 1},
		board.PlaceWorkerTurn{Color: board.White, X: 3, Y: 3},
		board.MoveTurn{Color: board.Blue, StartX: 0, StartY: 0, EndX: 0, EndY: 1},
		board.BuildTurn{Color: board.Blue, WorkerX: 0, WorkerY: 1, BuildX: 0, BuildY: 0},
	}
	for _, turn := range turns {
		if err := m.Apply(turn); err != nil {
			t.Fatalf("Scripted turn %+v failed: %v", turn, err)
		}
	}
	return m
}

func TestWriteFormat(t *testing.T) {
	m := scriptedGame(t)

	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("Expected 8 lines (2 header + 6 turns), got %d", len(lines))
	}
	if lines[0] != "5|5|4|2" {
		t.Errorf("Unexpected board record: %q", lines[0])
	}
	if lines[1] != "b|w" {
		t.Errorf("Unexpected player order record: %q", lines[1])
	}
	if lines[2] != "b|place_worker|0|0" {
		t.Errorf("Unexpected first turn record: %q", lines[2])
	}
	if lines[6] != "b|move|0|0|0|1" {
		t.Errorf("Unexpected move record: %q", lines[6])
	}
	if lines[7] != "b|build|0|1|0|0" {
		t.Errorf("Unexpected build record: %q", lines[7])
	}
}

func TestRoundTrip(t *testing.T) {
	m := scriptedGame(t)

	path := filepath.Join(t.TempDir(), "game.log")
	if err := Save(path, m); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded.History()) != len(m.History()) {
		t.Fatalf("Expected %d history entries, got %d", len(m.History()), len(loaded.History()))
	}
	if loaded.ActivePlayer() != m.ActivePlayer() {
		t.Errorf("Active player mismatch: %s vs %s", loaded.ActivePlayer(), m.ActivePlayer())
	}
	if loaded.CurrentAction() != m.CurrentAction() {
		t.Errorf("Current action mismatch: %s vs %s", loaded.CurrentAction(), m.CurrentAction())
	}
	if loaded.Board().BlockHeight(0, 0) != 1 {
		t.Error("Replayed board should have the built block")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.log"))
	if !errors.Is(err, errors.ErrCodeGameLogNotFound) {
		t.Errorf("Expected GAME_LOG_NOT_FOUND, got %v", err)
	}
}

func TestReadRejectsCorruptLogs(t *testing.T) {
	tests := []struct {
		name string
		log  string
	}{
		{"empty", ""},
		{"bad board parameters", "5|x|4|2\nb|w\n"},
		{"too few board parameters", "5|5|4\nb|w\n"},
		{"bad color", "5|5|4|2\nb|q\n"},
		{"bad action", "5|5|4|2\nb|w\nb|fly|0|0\n"},
		{"bad coordinate", "5|5|4|2\nb|w\nb|place_worker|0|zero\n"},
		{"wrong coordinate count", "5|5|4|2\nb|w\nb|place_worker|0\n"},
		{"illegal replayed turn", "5|5|4|2\nb|w\nw|place_worker|0|0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.log))
			if !errors.Is(err, errors.ErrCodeGameLogParse) {
				t.Errorf("Expected GAME_LOG_PARSE, got %v", err)
			}
		})
	}
}

func TestAppendTurn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")

	m := game.NewManager()
	if err := Save(path, m); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := AppendTurn(path, board.PlaceWorkerTurn{Color: board.Blue, X: 2, Y: 2}); err != nil {
		t.Fatalf("AppendTurn failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after append failed: %v", err)
	}
	if len(loaded.History()) != 1 {
		t.Errorf("Expected 1 history entry, got %d", len(loaded.History()))
	}
}

func TestFollow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")

	m := game.NewManager()
	if err := Save(path, m); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	follower, err := Follow(path, FollowOptions{FromStart: true, Poll: true})
	if err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	defer follower.Stop()

	if err := AppendTurn(path, board.PlaceWorkerTurn{Color: board.Blue, X: 2, Y: 2}); err != nil {
		t.Fatalf("AppendTurn failed: %v", err)
	}

	select {
	case turn := <-follower.Turns:
		place, ok := turn.(board.PlaceWorkerTurn)
		if !ok {
			t.Fatalf("Expected a place turn, got %T", turn)
		}
		if place.X != 2 || place.Y != 2 || place.Color != board.Blue {
			t.Errorf("Unexpected turn: %+v", place)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for the followed turn")
	}
}
