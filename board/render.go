package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	blueWorkerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB4CA")).Bold(true)
	whiteWorkerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DCD7BA")).Bold(true)
	heightStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#727169"))
	topHeightStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#98BB6C"))
	cellBorderStyle  = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#363646")).
				Padding(0, 1)
)

// String renders the board as a plain text grid with worker color letters
// and building heights, one row per line.
func (b *Board) String() string {
	// One extra column per cell for the optional worker letter
	justify := b.MaxHeight + 1

	var sb strings.Builder
	for y := 0; y < b.Length; y++ {
		cells := make([]string, b.Width)
		for x := 0; x < b.Width; x++ {
			cell := b.cellText(x, y)
			cells[x] = fmt.Sprintf("%*s", justify, cell)
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Render renders the board as a colored grid for terminal display.
func (b *Board) Render() string {
	rows := make([]string, b.Length)
	for y := 0; y < b.Length; y++ {
		cells := make([]string, b.Width)
		for x := 0; x < b.Width; x++ {
			height := b.BlockHeight(x, y)

			heightText := fmt.Sprintf("%d", height)
			if height == b.MaxHeight-1 {
				heightText = topHeightStyle.Render(heightText)
			} else {
				heightText = heightStyle.Render(heightText)
			}

			workerText := " "
			if worker, ok := b.WorkerAt(x, y); ok {
				switch worker.Color {
				case Blue:
					workerText = blueWorkerStyle.Render(string(worker.Color))
				default:
					workerText = whiteWorkerStyle.Render(string(worker.Color))
				}
			}

			cells[x] = cellBorderStyle.Render(workerText + heightText)
		}
		rows[y] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (b *Board) cellText(x, y int) string {
	cell := fmt.Sprintf("%d", b.BlockHeight(x, y))
	if worker, ok := b.WorkerAt(x, y); ok {
		cell = string(worker.Color) + cell
	}
	return cell
}
