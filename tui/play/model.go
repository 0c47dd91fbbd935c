// Package play is the interactive Bubble Tea front end for playing a game in
// the terminal.
package play

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/santorini/board"
	"github.com/grovetools/santorini/game"
	"github.com/grovetools/santorini/gamelog"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E6C384"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB4CA"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E82424"))
	winStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98BB6C"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#727169"))
)

// Model is the Bubble Tea model for an interactive game.
type Model struct {
	manager  *game.Manager
	input    textinput.Model
	savePath string
	logger   *logrus.Entry

	// Monochrome terminals get the plain board rendering.
	plainBoard bool

	errMsg string
	over   bool
	winner board.Color
	quit   bool
}

// Option configures the play model.
type Option func(*Model)

// WithSavePath appends each applied turn to the game log at path.
func WithSavePath(path string) Option {
	return func(m *Model) {
		m.savePath = path
	}
}

// WithLogger sets the logger for game events.
func WithLogger(logger *logrus.Entry) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// New creates a play model driving the given game.
func New(manager *game.Manager, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "x y"
	ti.Prompt = "> "
	ti.CharLimit = 16
	ti.Width = 20
	ti.Focus()

	m := Model{
		manager:    manager,
		input:      ti,
		plainBoard: termenv.ColorProfile() == termenv.Ascii,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.over {
				m.quit = true
				return m, tea.Quit
			}
			m.submit()
			return m, nil
		}
		if m.over && msg.String() == "q" {
			m.quit = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit parses the typed coordinates and applies the turn.
func (m *Model) submit() {
	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		return
	}

	coords, err := parseCoordinates(raw)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	turn, err := board.NewTurn(m.manager.ActivePlayer(), m.manager.CurrentAction(), coords)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	if err := m.manager.Apply(turn); err != nil {
		m.errMsg = err.Error()
		return
	}

	m.errMsg = ""
	m.input.Reset()

	if m.savePath != "" {
		if err := gamelog.AppendTurn(m.savePath, turn); err != nil {
			if m.logger != nil {
				m.logger.WithError(err).Error("failed to append turn to game log")
			}
			m.errMsg = "failed to save turn: " + err.Error()
		}
	}

	over, err := m.manager.InEndGameState()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	if over {
		m.over = true
		if winner, ok := m.manager.Winner(); ok {
			m.winner = winner
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quit {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Santorini"))
	sb.WriteString("\n\n")

	if m.plainBoard {
		sb.WriteString(m.manager.Board().String())
	} else {
		sb.WriteString(m.manager.Board().Render())
	}
	sb.WriteString("\n")

	if m.over {
		sb.WriteString(winStyle.Render(fmt.Sprintf("Player %q wins!", string(m.winner))))
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("Press enter or q to exit."))
		sb.WriteString("\n")
		return sb.String()
	}

	action := m.manager.CurrentAction()
	sb.WriteString(promptStyle.Render(fmt.Sprintf("player %s: %s %s",
		string(m.manager.ActivePlayer()), string(action), usageFor(action))))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")

	if m.errMsg != "" {
		sb.WriteString(errorStyle.Render(m.errMsg))
		sb.WriteString("\n")
	}
	sb.WriteString(mutedStyle.Render("esc to quit"))
	sb.WriteString("\n")
	return sb.String()
}

// usageFor describes the coordinates an action expects.
func usageFor(action board.Action) string {
	if action == board.ActionPlaceWorker {
		return "(x y)"
	}
	return "(fromX fromY toX toY)"
}

// parseCoordinates parses whitespace or comma separated integers.
func parseCoordinates(raw string) ([]int, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ','
	})
	coords := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q", f)
		}
		coords = append(coords, n)
	}
	return coords, nil
}
