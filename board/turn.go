package board

import (
	"fmt"

	"github.com/grovetools/santorini/errors"
)

// Color identifies a player and how that player is rendered on the board.
type Color string

const (
	Blue  Color = "b"
	White Color = "w"
)

// ParseColor converts a color code from user input or a game log.
func ParseColor(s string) (Color, error) {
	switch Color(s) {
	case Blue, White:
		return Color(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown player color '%s'", s))
}

// Action names one of the three things a player can do on their turn.
type Action string

const (
	ActionPlaceWorker Action = "place_worker"
	ActionMove        Action = "move"
	ActionBuild       Action = "build"
)

// ParseAction converts an action code from user input or a game log.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionPlaceWorker, ActionMove, ActionBuild:
		return Action(s), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown turn action '%s'", s))
}

// Turn is one player action with its coordinates.
type Turn interface {
	Action() Action
	Player() Color
	// Coordinates returns the turn's coordinate payload in game log order.
	Coordinates() []int
}

// PlaceWorkerTurn places a new worker at (X, Y).
type PlaceWorkerTurn struct {
	Color Color
	X     int
	Y     int
}

func (t PlaceWorkerTurn) Action() Action      { return ActionPlaceWorker }
func (t PlaceWorkerTurn) Player() Color       { return t.Color }
func (t PlaceWorkerTurn) Coordinates() []int  { return []int{t.X, t.Y} }

// MoveTurn moves the worker at (StartX, StartY) to (EndX, EndY).
type MoveTurn struct {
	Color  Color
	StartX int
	StartY int
	EndX   int
	EndY   int
}

func (t MoveTurn) Action() Action     { return ActionMove }
func (t MoveTurn) Player() Color      { return t.Color }
func (t MoveTurn) Coordinates() []int { return []int{t.StartX, t.StartY, t.EndX, t.EndY} }

// BuildTurn builds at (BuildX, BuildY) with the worker at (WorkerX, WorkerY).
type BuildTurn struct {
	Color   Color
	WorkerX int
	WorkerY int
	BuildX  int
	BuildY  int
}

func (t BuildTurn) Action() Action     { return ActionBuild }
func (t BuildTurn) Player() Color      { return t.Color }
func (t BuildTurn) Coordinates() []int { return []int{t.WorkerX, t.WorkerY, t.BuildX, t.BuildY} }

// NewTurn builds a Turn from an action and its coordinate payload, as read
// from a game log or interactive input.
func NewTurn(color Color, action Action, coords []int) (Turn, error) {
	switch action {
	case ActionPlaceWorker:
		if len(coords) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				fmt.Sprintf("place_worker takes 2 coordinates, got %d", len(coords)))
		}
		return PlaceWorkerTurn{Color: color, X: coords[0], Y: coords[1]}, nil
	case ActionMove:
		if len(coords) != 4 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				fmt.Sprintf("move takes 4 coordinates, got %d", len(coords)))
		}
		return MoveTurn{Color: color, StartX: coords[0], StartY: coords[1], EndX: coords[2], EndY: coords[3]}, nil
	case ActionBuild:
		if len(coords) != 4 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				fmt.Sprintf("build takes 4 coordinates, got %d", len(coords)))
		}
		return BuildTurn{Color: color, WorkerX: coords[0], WorkerY: coords[1], BuildX: coords[2], BuildY: coords[3]}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown turn action '%s'", action))
}
