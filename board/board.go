// Package board tracks the Santorini board: worker positions, building
// heights, and the legality rules for placing, moving, and building.
package board

import (
	"fmt"

	"github.com/grovetools/santorini/errors"
)

// Worker is a single worker on the board.
type Worker struct {
	X      int
	Y      int
	Height int
	Color  Color
}

// neighborShifts are the 8 offsets a worker can move or build to.
var neighborShifts = [8][2]int{
	{0, -1}, {0, 1},
	{-1, 0}, {-1, -1}, {-1, 1},
	{1, 0}, {1, -1}, {1, 1},
}

// Board holds worker positions and building heights and enforces the rules
// for actions on the board state.
type Board struct {
	Length              int
	Width               int
	MaxHeight           int
	MaxWorkersPerPlayer int

	Workers []Worker
	// Blocks[y][x] is the building height at that square.
	Blocks [][]int
}

// Option configures a new board.
type Option func(*Board)

// WithDimensions sets the board's length (y extent) and width (x extent).
func WithDimensions(length, width int) Option {
	return func(b *Board) {
		b.Length = length
		b.Width = width
	}
}

// WithMaxHeight sets the maximum building height.
func WithMaxHeight(maxHeight int) Option {
	return func(b *Board) {
		b.MaxHeight = maxHeight
	}
}

// WithMaxWorkersPerPlayer sets the number of workers each player places.
func WithMaxWorkersPerPlayer(n int) Option {
	return func(b *Board) {
		b.MaxWorkersPerPlayer = n
	}
}

// New creates a Santorini board. Without options it is the standard game:
// a 5x5 grid, buildings up to height 4, two workers per player.
func New(opts ...Option) *Board {
	b := &Board{
		Length:              5,
		Width:               5,
		MaxHeight:           4,
		MaxWorkersPerPlayer: 2,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.Blocks = make([][]int, b.Length)
	for y := range b.Blocks {
		b.Blocks[y] = make([]int, b.Width)
	}
	return b
}

// Clone returns a deep copy of the board. The game manager snapshots the
// board once per applied turn.
func (b *Board) Clone() *Board {
	clone := &Board{
		Length:              b.Length,
		Width:               b.Width,
		MaxHeight:           b.MaxHeight,
		MaxWorkersPerPlayer: b.MaxWorkersPerPlayer,
		Workers:             make([]Worker, len(b.Workers)),
		Blocks:              make([][]int, len(b.Blocks)),
	}
	copy(clone.Workers, b.Workers)
	for y, row := range b.Blocks {
		clone.Blocks[y] = make([]int, len(row))
		copy(clone.Blocks[y], row)
	}
	return clone
}

// Reset clears workers and buildings back to the initial state.
func (b *Board) Reset() {
	b.Workers = nil
	for y := range b.Blocks {
		for x := range b.Blocks[y] {
			b.Blocks[y][x] = 0
		}
	}
}

// PlaceWorker places a worker of the given color at (x, y).
func (b *Board) PlaceWorker(color Color, x, y int) error {
	if !b.PlayerCanPlaceWorkers(color) {
		return errors.IllegalMove(
			fmt.Sprintf("too many workers for color %q, max workers is %d", color, b.MaxWorkersPerPlayer)).
			WithDetail("color", string(color))
	}
	if !b.IsValidPlacement(color, x, y) {
		return errors.IllegalMove(fmt.Sprintf("cannot place worker at (%d, %d)", x, y)).
			WithDetail("x", x).
			WithDetail("y", y)
	}

	b.Workers = append(b.Workers, Worker{X: x, Y: y, Height: 0, Color: color})
	return nil
}

// Move moves the worker at (startX, startY) to (endX, endY).
func (b *Board) Move(color Color, startX, startY, endX, endY int) error {
	idx, ok := b.workerIndexAt(startX, startY)
	if !ok {
		return errors.IllegalMove(fmt.Sprintf("no worker at (%d, %d)", startX, startY))
	}

	if b.Workers[idx].Color != color {
		return errors.IllegalMove(fmt.Sprintf(
			"player %s is trying to move worker at (%d, %d) but that worker is color %s",
			color, startX, startY, b.Workers[idx].Color))
	}

	if !b.IsValidMove(b.Workers[idx], endX, endY) {
		return errors.IllegalMove(fmt.Sprintf("(%d, %d) to (%d, %d)", startX, startY, endX, endY))
	}

	b.Workers[idx].X = endX
	b.Workers[idx].Y = endY
	b.Workers[idx].Height = b.BlockHeight(endX, endY)
	return nil
}

// Build builds one block at (buildX, buildY) with the worker at
// (workerX, workerY).
func (b *Board) Build(color Color, workerX, workerY, buildX, buildY int) error {
	worker, ok := b.WorkerAt(workerX, workerY)
	if !ok {
		return errors.IllegalMove(fmt.Sprintf("no worker at (%d, %d)", workerX, workerY))
	}

	if worker.Color != color {
		return errors.IllegalMove(fmt.Sprintf(
			"player %s is trying to build with worker at (%d, %d) but that worker is color %s",
			color, workerX, workerY, worker.Color))
	}

	if !b.IsValidBuild(worker, buildX, buildY) {
		return errors.IllegalMove(fmt.Sprintf(
			"worker at (%d, %d) building at (%d, %d)", workerX, workerY, buildX, buildY))
	}

	b.Blocks[buildY][buildX]++
	return nil
}

// IsValidPlacement reports whether (x, y) is a legal placement for a new
// worker of the given color.
func (b *Board) IsValidPlacement(color Color, x, y int) bool {
	if !b.isOnBoard(x, y) {
		return false
	}
	return b.PlayerCanPlaceWorkers(color) && !b.workerOnSpace(x, y)
}

// IsValidMove reports whether the worker can legally move to (x, y). The
// target must be on the board, at most one level up, below the maximum
// height, unoccupied, and adjacent to the worker.
func (b *Board) IsValidMove(worker Worker, x, y int) bool {
	if !b.isOnBoard(x, y) {
		return false
	}
	h := b.BlockHeight(x, y)
	return h <= worker.Height+1 &&
		h < b.MaxHeight &&
		!b.workerOnSpace(x, y) &&
		b.isNeighboringSpace(worker, x, y)
}

// IsValidBuild reports whether the worker can legally build at (x, y).
func (b *Board) IsValidBuild(worker Worker, x, y int) bool {
	if !b.isOnBoard(x, y) {
		return false
	}
	return b.BlockHeight(x, y) < b.MaxHeight &&
		!b.workerOnSpace(x, y) &&
		b.isNeighboringSpace(worker, x, y)
}

// ValidPlacements returns all legal placement turns for a player.
func (b *Board) ValidPlacements(color Color) []PlaceWorkerTurn {
	var placements []PlaceWorkerTurn
	for x := 0; x < b.Width; x++ {
		for y := 0; y < b.Length; y++ {
			if b.IsValidPlacement(color, x, y) {
				placements = append(placements, PlaceWorkerTurn{Color: color, X: x, Y: y})
			}
		}
	}
	return placements
}

// ValidMoves returns all legal move turns for a worker.
func (b *Board) ValidMoves(worker Worker) []MoveTurn {
	var moves []MoveTurn
	for _, s := range neighborShifts {
		x, y := worker.X+s[0], worker.Y+s[1]
		if b.IsValidMove(worker, x, y) {
			moves = append(moves, MoveTurn{
				Color:  worker.Color,
				StartX: worker.X,
				StartY: worker.Y,
				EndX:   x,
				EndY:   y,
			})
		}
	}
	return moves
}

// ValidBuilds returns all legal build turns for a worker.
func (b *Board) ValidBuilds(worker Worker) []BuildTurn {
	var builds []BuildTurn
	for _, s := range neighborShifts {
		x, y := worker.X+s[0], worker.Y+s[1]
		if b.IsValidBuild(worker, x, y) {
			builds = append(builds, BuildTurn{
				Color:   worker.Color,
				WorkerX: worker.X,
				WorkerY: worker.Y,
				BuildX:  x,
				BuildY:  y,
			})
		}
	}
	return builds
}

// WorkersWithColor returns the workers belonging to a player.
func (b *Board) WorkersWithColor(color Color) []Worker {
	var workers []Worker
	for _, w := range b.Workers {
		if w.Color == color {
			workers = append(workers, w)
		}
	}
	return workers
}

// WorkerAt returns the worker occupying (x, y), if any.
func (b *Board) WorkerAt(x, y int) (Worker, bool) {
	if idx, ok := b.workerIndexAt(x, y); ok {
		return b.Workers[idx], true
	}
	return Worker{}, false
}

// BlockHeight returns the building height at (x, y).
func (b *Board) BlockHeight(x, y int) int {
	return b.Blocks[y][x]
}

// PlayerCanPlaceWorkers reports whether the player may still place a worker.
func (b *Board) PlayerCanPlaceWorkers(color Color) bool {
	return b.numWorkers(color) < b.MaxWorkersPerPlayer
}

// PlayerCanMove reports whether the player has any legal move.
func (b *Board) PlayerCanMove(color Color) bool {
	for _, w := range b.WorkersWithColor(color) {
		if len(b.ValidMoves(w)) != 0 {
			return true
		}
	}
	return false
}

// PlayerCanBuild reports whether the player has any legal build.
func (b *Board) PlayerCanBuild(color Color) bool {
	for _, w := range b.WorkersWithColor(color) {
		if len(b.ValidBuilds(w)) != 0 {
			return true
		}
	}
	return false
}

// PlayerInWinState reports whether the player has a worker on the top
// occupiable level. More than one worker up there is an illegal board state.
func (b *Board) PlayerInWinState(color Color) (bool, error) {
	count := 0
	for _, w := range b.WorkersWithColor(color) {
		if w.Height == b.MaxHeight-1 {
			count++
		}
	}

	if count > 1 {
		return false, errors.IllegalBoardState(
			fmt.Sprintf("%d workers of color %s are in a winning position", count, color))
	}
	return count == 1, nil
}

// PlayerInLoseStateBeforeMove reports whether the player has no legal move
// at the start of their turn.
func (b *Board) PlayerInLoseStateBeforeMove(color Color) bool {
	return !b.PlayerCanMove(color)
}

// PlayerInLoseStateAfterMove reports whether the worker at (x, y), which
// moved last turn, has no legal build.
func (b *Board) PlayerInLoseStateAfterMove(x, y int) (bool, error) {
	worker, ok := b.WorkerAt(x, y)
	if !ok {
		return false, errors.IllegalBoardState(fmt.Sprintf("no worker at (%d, %d)", x, y))
	}
	return len(b.ValidBuilds(worker)) == 0, nil
}

func (b *Board) isOnBoard(x, y int) bool {
	return 0 <= x && x < b.Width && 0 <= y && y < b.Length
}

func (b *Board) workerOnSpace(x, y int) bool {
	_, ok := b.workerIndexAt(x, y)
	return ok
}

func (b *Board) workerIndexAt(x, y int) (int, bool) {
	for idx, w := range b.Workers {
		if w.X == x && w.Y == y {
			return idx, true
		}
	}
	return 0, false
}

func (b *Board) isNeighboringSpace(worker Worker, x, y int) bool {
	dx, dy := x-worker.X, y-worker.Y
	for _, s := range neighborShifts {
		if s[0] == dx && s[1] == dy {
			return true
		}
	}
	return false
}

func (b *Board) numWorkers(color Color) int {
	n := 0
	for _, w := range b.Workers {
		if w.Color == color {
			n++
		}
	}
	return n
}
