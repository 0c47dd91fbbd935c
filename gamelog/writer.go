// Package gamelog reads and writes the pipe-delimited game log format.
//
// A log has one record per line: the board parameters, the initial player
// order, then one line per applied turn.
package gamelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grovetools/santorini/board"
	"github.com/grovetools/santorini/game"
)

// Delimiter separates fields within a game log record.
const Delimiter = "|"

// Write serializes the manager's game to w.
func Write(w io.Writer, m *game.Manager) error {
	bw := bufio.NewWriter(w)

	// Board parameters
	b := m.InitialBoard()
	params := []string{
		strconv.Itoa(b.Length),
		strconv.Itoa(b.Width),
		strconv.Itoa(b.MaxHeight),
		strconv.Itoa(b.MaxWorkersPerPlayer),
	}
	if _, err := fmt.Fprintln(bw, strings.Join(params, Delimiter)); err != nil {
		return err
	}

	// Player order
	order := m.InitialPlayerOrder()
	colors := make([]string, len(order))
	for i, c := range order {
		colors[i] = string(c)
	}
	if _, err := fmt.Fprintln(bw, strings.Join(colors, Delimiter)); err != nil {
		return err
	}

	// Turns
	for _, state := range m.History() {
		if _, err := fmt.Fprintln(bw, FormatTurn(state.Turn)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// FormatTurn renders one turn as a game log record.
func FormatTurn(t board.Turn) string {
	fields := []string{string(t.Player()), string(t.Action())}
	for _, c := range t.Coordinates() {
		fields = append(fields, strconv.Itoa(c))
	}
	return strings.Join(fields, Delimiter)
}

// Save writes the manager's game to a file.
func Save(path string, m *game.Manager) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := Write(file, m); err != nil {
		return err
	}
	return file.Close()
}

// AppendTurn appends a single turn record to an existing log file. The play
// loop uses this to keep the log current while a game is in progress.
func AppendTurn(path string, t board.Turn) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, FormatTurn(t)); err != nil {
		return err
	}
	return file.Close()
}
