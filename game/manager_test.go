package game

import (
	"testing"

	"github.com/grovetools/santorini/board"
	"github.com/grovetools/santorini/errors"
)

// placeAll runs the standard placement phase: two workers per player,
// alternating blue and white.
func placeAll(t *testing.T, m *Manager) {
	t.Helper()
	placements := []board.PlaceWorkerTurn{
		{Color: board.Blue, X: 0, Y: 0},
		{Color: board.White, X: 4, Y: 4},
		{Color: board.Blue, X: 1, Y: 1},
		{Color: board.White, X: 3, Y: 3},
	}
	for _, p := range placements {
		if err := m.Apply(p); err != nil {
			t.Fatalf("Placement %+v failed: %v", p, err)
		}
	}
}

func TestPlacementPhase(t *testing.T) {
	m := NewManager()

	if m.CurrentAction() != board.ActionPlaceWorker {
		t.Errorf("Fresh game should start with placement, got %s", m.CurrentAction())
	}
	if m.ActivePlayer() != board.Blue {
		t.Errorf("Blue should start, got %s", m.ActivePlayer())
	}

	placeAll(t, m)

	if m.CurrentAction() != board.ActionMove {
		t.Errorf("After placement the action should be move, got %s", m.CurrentAction())
	}
	if m.ActivePlayer() != board.Blue {
		t.Errorf("Blue should move first, got %s", m.ActivePlayer())
	}
}

func TestOutOfOrderPlayer(t *testing.T) {
	m := NewManager()

	err := m.Apply(board.PlaceWorkerTurn{Color: board.White, X: 0, Y: 0})
	if !errors.Is(err, errors.ErrCodeTurnOutOfOrder) {
		t.Errorf("Expected TURN_OUT_OF_ORDER, got %v", err)
	}
}

func TestOutOfOrderAction(t *testing.T) {
	m := NewManager()

	err := m.Apply(board.MoveTurn{Color: board.Blue, StartX: 0, StartY: 0, EndX: 1, EndY: 1})
	if !errors.Is(err, errors.ErrCodeTurnOutOfOrder) {
		t.Errorf("Expected TURN_OUT_OF_ORDER during placement, got %v", err)
	}
}

func TestMoveThenBuildRotatesPlayers(t *testing.T) {
	m := NewManager()
	placeAll(t, m)

	if err := m.Apply(board.MoveTurn{Color: board.Blue, StartX: 0, StartY: 0, EndX: 0, EndY: 1}); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	// Same player builds with the moved worker
	if m.ActivePlayer() != board.Blue {
		t.Errorf("Mover should still be active for the build, got %s", m.ActivePlayer())
	}
	if m.CurrentAction() != board.ActionBuild {
		t.Errorf("Action after move should be build, got %s", m.CurrentAction())
	}

	if err := m.Apply(board.BuildTurn{Color: board.Blue, WorkerX: 0, WorkerY: 1, BuildX: 0, BuildY: 0}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if m.ActivePlayer() != board.White {
		t.Errorf("White should be active after blue's build, got %s", m.ActivePlayer())
	}
	if m.CurrentAction() != board.ActionMove {
		t.Errorf("Action after build should be move, got %s", m.CurrentAction())
	}
}

func TestBuildMustFollowOwnMove(t *testing.T) {
	m := NewManager()
	placeAll(t, m)

	if err := m.Apply(board.MoveTurn{Color: board.Blue, StartX: 0, StartY: 0, EndX: 0, EndY: 1}); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	// Building with the other worker is illegal
	err := m.Apply(board.BuildTurn{Color: board.Blue, WorkerX: 1, WorkerY: 1, BuildX: 1, BuildY: 2})
	if !errors.Is(err, errors.ErrCodeIllegalMove) {
		t.Errorf("Expected ILLEGAL_MOVE for building with an unmoved worker, got %v", err)
	}
}

func TestBuildAsFirstTurn(t *testing.T) {
	b := board.New(board.WithMaxWorkersPerPlayer(1))
	b.Workers = []board.Worker{
		{X: 0, Y: 0, Color: board.Blue},
		{X: 4, Y: 4, Color: board.White},
	}
	m := NewManager(WithBoard(b))

	// Placement is done, but build cannot be the first recorded turn. The
	// manager rejects it as out of order before the move/build check fires.
	err := m.Apply(board.BuildTurn{Color: board.Blue, WorkerX: 0, WorkerY: 0, BuildX: 0, BuildY: 1})
	if !errors.Is(err, errors.ErrCodeTurnOutOfOrder) {
		t.Errorf("Expected TURN_OUT_OF_ORDER, got %v", err)
	}
}

func TestWinByReachingTopLevel(t *testing.T) {
	b := board.New(board.WithMaxWorkersPerPlayer(1))
	b.Workers = []board.Worker{
		{X: 0, Y: 0, Height: 2, Color: board.Blue},
		{X: 4, Y: 4, Height: 0, Color: board.White},
	}
	b.Blocks[0][0] = 2
	b.Blocks[0][1] = 3

	m := NewManager(WithBoard(b))

	if err := m.Apply(board.MoveTurn{Color: board.Blue, StartX: 0, StartY: 0, EndX: 1, EndY: 0}); err != nil {
		t.Fatalf("Winning move failed: %v", err)
	}

	over, err := m.InEndGameState()
	if err != nil {
		t.Fatalf("InEndGameState failed: %v", err)
	}
	if !over {
		t.Fatal("Game should be over after reaching the top level")
	}

	winner, ok := m.Winner()
	if !ok || winner != board.Blue {
		t.Errorf("Blue should win, got %s (ok=%v)", winner, ok)
	}
}

func TestEliminationWhenMoverCannotBuild(t *testing.T) {
	// 3x1 board: blue in the middle, white on the right. Blue's only move is
	// into the left corner, whose only neighbor is then a full-height tower.
	b := board.New(board.WithDimensions(1, 3), board.WithMaxWorkersPerPlayer(1))
	b.Workers = []board.Worker{
		{X: 1, Y: 0, Height: 4, Color: board.Blue},
		{X: 2, Y: 0, Height: 0, Color: board.White},
	}
	b.Blocks[0][1] = 4

	m := NewManager(WithBoard(b))

	if err := m.Apply(board.MoveTurn{Color: board.Blue, StartX: 1, StartY: 0, EndX: 0, EndY: 0}); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	over, err := m.InEndGameState()
	if err != nil {
		t.Fatalf("InEndGameState failed: %v", err)
	}
	if !over {
		t.Fatal("Game should be over after blue's elimination")
	}

	winner, ok := m.Winner()
	if !ok || winner != board.White {
		t.Errorf("White should win by elimination, got %s (ok=%v)", winner, ok)
	}
}

func TestHistoryAndSubscribe(t *testing.T) {
	m := NewManager()
	ch := m.Subscribe()
	defer m.Unsubscribe(ch)

	placeAll(t, m)

	history := m.History()
	if len(history) != 4 {
		t.Fatalf("Expected 4 history entries, got %d", len(history))
	}
	if history[0].Action != board.ActionPlaceWorker || history[0].ActivePlayer != board.Blue {
		t.Errorf("Unexpected first entry: %+v", history[0])
	}

	// Each applied turn is published
	for i := 0; i < 4; i++ {
		select {
		case state := <-ch:
			if state.Turn == nil {
				t.Error("Published state should carry its turn")
			}
		default:
			t.Fatalf("Expected 4 published states, got %d", i)
		}
	}
}

func TestReset(t *testing.T) {
	m := NewManager()
	placeAll(t, m)

	m.Reset()

	if len(m.History()) != 0 {
		t.Error("Reset should clear history")
	}
	if m.CurrentAction() != board.ActionPlaceWorker {
		t.Error("Reset should restore the placement phase")
	}
	if len(m.Board().Workers) != 0 {
		t.Error("Reset should restore the initial board")
	}
}
