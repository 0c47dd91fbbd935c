// Package game orchestrates Santorini turns: player and phase ordering,
// per-turn board snapshots, elimination, and win detection.
package game

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/santorini/board"
	"github.com/grovetools/santorini/errors"
)

// State is one entry in the game history: the turn that was played and the
// board it produced.
type State struct {
	ActivePlayer board.Color
	Board        *board.Board
	Action       board.Action
	Turn         board.Turn
}

// DefaultPlayerOrder is the standard two-player order.
var DefaultPlayerOrder = []board.Color{board.Blue, board.White}

// Manager runs the turn state machine.
// It is thread-safe and supports pub/sub for live spectating.
type Manager struct {
	mu sync.RWMutex

	initialBoard *board.Board
	initialOrder []board.Color

	board       *board.Board
	playerOrder []board.Color
	turnOrder   []board.Action
	history     []State

	subscribers map[chan State]struct{}
	logger      *logrus.Entry
}

// Option configures a new Manager.
type Option func(*Manager)

// WithBoard sets the initial board.
func WithBoard(b *board.Board) Option {
	return func(m *Manager) {
		m.initialBoard = b
	}
}

// WithPlayerOrder sets the player turn order.
func WithPlayerOrder(order []board.Color) Option {
	return func(m *Manager) {
		m.initialOrder = append([]board.Color(nil), order...)
	}
}

// WithLogger sets the logger used for game events.
func WithLogger(logger *logrus.Entry) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a manager for a fresh game.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		subscribers: make(map[chan State]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.initialBoard == nil {
		m.initialBoard = board.New()
	}
	if len(m.initialOrder) == 0 {
		m.initialOrder = append([]board.Color(nil), DefaultPlayerOrder...)
	}
	if m.logger == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		m.logger = logrus.NewEntry(silent)
	}

	m.board = m.initialBoard.Clone()
	m.playerOrder = append([]board.Color(nil), m.initialOrder...)
	m.turnOrder = []board.Action{board.ActionMove, board.ActionBuild}
	return m
}

// InitialBoard returns the board the game started from.
func (m *Manager) InitialBoard() *board.Board {
	return m.initialBoard
}

// InitialPlayerOrder returns the player order the game started with.
func (m *Manager) InitialPlayerOrder() []board.Color {
	return append([]board.Color(nil), m.initialOrder...)
}

// Board returns the current board.
func (m *Manager) Board() *board.Board {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.board
}

// History returns the game history so far.
func (m *Manager) History() []State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]State(nil), m.history...)
}

// ActivePlayer is the first player in the rotating order.
func (m *Manager) ActivePlayer() board.Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.playerOrder[0]
}

// CurrentAction is place_worker while any player can still place a worker,
// otherwise the first action in the rotating move/build order.
func (m *Manager) CurrentAction() board.Action {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentActionLocked()
}

func (m *Manager) currentActionLocked() board.Action {
	for _, c := range m.playerOrder {
		if m.board.PlayerCanPlaceWorkers(c) {
			return board.ActionPlaceWorker
		}
	}
	return m.turnOrder[0]
}

// previousStateLocked returns the most recent history entry, or nil for a
// fresh game.
func (m *Manager) previousStateLocked() *State {
	if len(m.history) == 0 {
		return nil
	}
	return &m.history[len(m.history)-1]
}

// Apply validates and applies one turn, advancing the active player and turn
// phase. The turn's player and action must match the expected ones.
func (m *Manager) Apply(turn board.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.WithFields(logrus.Fields{
		"player": string(turn.Player()),
		"action": string(turn.Action()),
		"coords": turn.Coordinates(),
	}).Debug("applying turn")

	if turn.Player() != m.playerOrder[0] {
		return errors.TurnOutOfOrder(string(m.playerOrder[0]), string(turn.Player()))
	}
	if turn.Action() != m.currentActionLocked() {
		return errors.TurnOutOfOrder(string(m.currentActionLocked()), string(turn.Action()))
	}

	b := m.board.Clone()
	active := m.playerOrder[0]
	cantBuildAfterMove := false

	switch t := turn.(type) {
	case board.PlaceWorkerTurn:
		if err := b.PlaceWorker(active, t.X, t.Y); err != nil {
			return err
		}

	case board.MoveTurn:
		if err := b.Move(active, t.StartX, t.StartY, t.EndX, t.EndY); err != nil {
			return err
		}
		lose, err := b.PlayerInLoseStateAfterMove(t.EndX, t.EndY)
		if err != nil {
			return err
		}
		cantBuildAfterMove = lose

	case board.BuildTurn:
		if err := m.checkMovedWorkerBeforeBuild(t.WorkerX, t.WorkerY); err != nil {
			return err
		}
		if err := b.Build(active, t.WorkerX, t.WorkerY, t.BuildX, t.BuildY); err != nil {
			return err
		}

	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown turn type")
	}

	state := State{
		ActivePlayer: active,
		Board:        b,
		Action:       turn.Action(),
		Turn:         turn,
	}
	m.history = append(m.history, state)
	m.board = b

	inWin, err := m.boardWinStateLocked()
	if err != nil {
		return err
	}

	if !inWin {
		// A move is followed by a build from the same player, unless that
		// worker cannot build (the player is about to be eliminated).
		if turn.Action() != board.ActionMove || cantBuildAfterMove {
			m.rotatePlayerLocked()
		}
		if !cantBuildAfterMove {
			m.rotateActionLocked(turn.Action())
		}
	}

	m.publishLocked(state)
	return nil
}

// checkMovedWorkerBeforeBuild ensures the building worker is the one that
// moved on the immediately preceding turn.
func (m *Manager) checkMovedWorkerBeforeBuild(workerX, workerY int) error {
	prev := m.previousStateLocked()
	if prev == nil {
		return errors.IllegalMove("cannot build as the first turn of the game")
	}

	if prev.Action != board.ActionMove {
		return errors.IllegalMove("must move before build, but got " + string(prev.Action))
	}

	moveTurn := prev.Turn.(board.MoveTurn)
	if moveTurn.EndX != workerX || moveTurn.EndY != workerY {
		return errors.IllegalMove("must build with the last worker to move").
			WithDetail("movedTo", []int{moveTurn.EndX, moveTurn.EndY}).
			WithDetail("buildingWith", []int{workerX, workerY})
	}
	return nil
}

// InEndGameState removes players in a loss state and reports whether the
// game is over. A player loses when they have no legal move, or no legal
// build after their move. A player wins by reaching the top level or by
// being the last one standing.
func (m *Manager) InEndGameState() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeIfCantBuildLocked()
	m.removeIfCantMoveLocked()

	if len(m.playerOrder) == 1 {
		m.logger.WithField("player", string(m.playerOrder[0])).Info("player won: last player standing")
		return true, nil
	}

	inWin, err := m.boardWinStateLocked()
	if err != nil {
		return false, err
	}
	if inWin {
		m.logger.WithField("player", string(m.playerOrder[0])).Info("player won: reached the top level")
	}
	return inWin, nil
}

// Winner returns the winning player once the game is over.
func (m *Manager) Winner() (board.Color, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.playerOrder) == 1 {
		return m.playerOrder[0], true
	}
	if win, err := m.boardWinStateLocked(); err == nil && win {
		return m.playerOrder[0], true
	}
	return "", false
}

func (m *Manager) removeIfCantBuildLocked() {
	prev := m.previousStateLocked()
	if prev == nil || len(m.playerOrder) == 1 || prev.Action != board.ActionMove {
		return
	}

	moveTurn := prev.Turn.(board.MoveTurn)
	lose, err := prev.Board.PlayerInLoseStateAfterMove(moveTurn.EndX, moveTurn.EndY)
	if err != nil || !lose {
		return
	}

	m.logger.WithField("player", string(prev.ActivePlayer)).Info("player lost: no valid builds")
	m.removePlayerLocked(prev.ActivePlayer)
}

func (m *Manager) removeIfCantMoveLocked() {
	prev := m.previousStateLocked()
	if prev == nil || len(m.playerOrder) == 1 || m.currentActionLocked() != board.ActionMove {
		return
	}

	active := m.playerOrder[0]
	if prev.Board.PlayerInLoseStateBeforeMove(active) {
		m.logger.WithField("player", string(active)).Info("player lost: no valid moves")
		m.removePlayerLocked(active)
	}
}

func (m *Manager) boardWinStateLocked() (bool, error) {
	prev := m.previousStateLocked()
	if prev == nil {
		return false, nil
	}
	return prev.Board.PlayerInWinState(m.playerOrder[0])
}

func (m *Manager) rotatePlayerLocked() {
	head := m.playerOrder[0]
	m.playerOrder = append(m.playerOrder[1:], head)
}

// rotateActionLocked advances the move/build order once worker placement is
// finished.
func (m *Manager) rotateActionLocked(applied board.Action) {
	for _, c := range m.playerOrder {
		if m.board.PlayerCanPlaceWorkers(c) {
			return
		}
	}
	if applied == board.ActionPlaceWorker {
		return
	}
	head := m.turnOrder[0]
	m.turnOrder = append(m.turnOrder[1:], head)
}

func (m *Manager) removePlayerLocked(color board.Color) {
	for i, c := range m.playerOrder {
		if c == color {
			m.playerOrder = append(m.playerOrder[:i], m.playerOrder[i+1:]...)
			return
		}
	}
}

// Reset restores the initial board and orders and clears the history.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.board = m.initialBoard.Clone()
	m.playerOrder = append([]board.Color(nil), m.initialOrder...)
	m.turnOrder = []board.Action{board.ActionMove, board.ActionBuild}
	m.history = nil
}

// Subscribe creates a new subscription channel for applied turns.
func (m *Manager) Subscribe() chan State {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan State, 64) // Buffered
	m.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (m *Manager) Unsubscribe(ch chan State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subscribers, ch)
	close(ch)
}

func (m *Manager) publishLocked(state State) {
	for ch := range m.subscribers {
		select {
		case ch <- state:
		default:
			// Non-blocking send so a slow spectator cannot stall the game
		}
	}
}
