package gamelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grovetools/santorini/board"
	"github.com/grovetools/santorini/errors"
	"github.com/grovetools/santorini/game"
)

// Read replays a game log into a fresh manager. Every logged turn passes
// through the rules engine, so a corrupt or illegal log fails loudly.
func Read(r io.Reader, opts ...game.Option) (*game.Manager, error) {
	scanner := bufio.NewScanner(r)
	line := 0

	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		line++
		return strings.TrimRight(scanner.Text(), "\r\n"), true
	}

	boardLine, ok := next()
	if !ok {
		return nil, errors.GameLogParse(1, "missing board parameters")
	}
	b, err := ParseBoardLine(boardLine)
	if err != nil {
		return nil, err
	}

	orderLine, ok := next()
	if !ok {
		return nil, errors.GameLogParse(2, "missing player order")
	}
	order, err := ParsePlayerOrderLine(orderLine)
	if err != nil {
		return nil, err
	}

	opts = append([]game.Option{game.WithBoard(b), game.WithPlayerOrder(order)}, opts...)
	m := game.NewManager(opts...)

	for {
		text, ok := next()
		if !ok {
			break
		}
		if text == "" {
			continue
		}

		turn, err := ParseTurnLine(text)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeGameLogParse,
				fmt.Sprintf("game log line %d", line)).
				WithDetail("line", line)
		}
		if err := m.Apply(turn); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeGameLogParse,
				fmt.Sprintf("game log line %d: replaying turn failed", line)).
				WithDetail("line", line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load replays a game log file into a fresh manager.
func Load(path string, opts ...game.Option) (*game.Manager, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeGameLogNotFound,
				fmt.Sprintf("game log not found: %s", path)).
				WithDetail("path", path)
		}
		return nil, err
	}
	defer file.Close()

	return Read(file, opts...)
}

// ParseBoardLine parses the board parameter record (log line 1).
func ParseBoardLine(text string) (*board.Board, error) {
	fields, err := intFields(text)
	if err != nil {
		return nil, errors.GameLogParse(1, err.Error())
	}
	if len(fields) != 4 {
		return nil, errors.GameLogParse(1,
			fmt.Sprintf("expected 4 board parameters, got %d", len(fields)))
	}

	return board.New(
		board.WithDimensions(fields[0], fields[1]),
		board.WithMaxHeight(fields[2]),
		board.WithMaxWorkersPerPlayer(fields[3]),
	), nil
}

// ParsePlayerOrderLine parses the player order record (log line 2).
func ParsePlayerOrderLine(text string) ([]board.Color, error) {
	parts := strings.Split(strings.TrimSpace(text), Delimiter)
	order := make([]board.Color, 0, len(parts))
	for _, p := range parts {
		color, err := board.ParseColor(p)
		if err != nil {
			return nil, errors.GameLogParse(2, err.Error())
		}
		order = append(order, color)
	}
	return order, nil
}

// ParseTurnLine parses a single turn record.
func ParseTurnLine(text string) (board.Turn, error) {
	parts := strings.Split(strings.TrimSpace(text), Delimiter)
	if len(parts) < 3 {
		return nil, fmt.Errorf("expected at least 3 fields, got %d", len(parts))
	}

	color, err := board.ParseColor(parts[0])
	if err != nil {
		return nil, err
	}
	action, err := board.ParseAction(parts[1])
	if err != nil {
		return nil, err
	}

	coords := make([]int, 0, len(parts)-2)
	for _, p := range parts[2:] {
		c, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad coordinate %q", p)
		}
		coords = append(coords, c)
	}

	return board.NewTurn(color, action, coords)
}

func intFields(text string) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(text), Delimiter)
	fields := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad integer field %q", p)
		}
		fields = append(fields, n)
	}
	return fields, nil
}
