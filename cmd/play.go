package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/santorini/board"
	"github.com/grovetools/santorini/cli"
	"github.com/grovetools/santorini/config"
	"github.com/grovetools/santorini/game"
	"github.com/grovetools/santorini/gamelog"
	"github.com/grovetools/santorini/logging"
	"github.com/grovetools/santorini/tui/play"
)

func NewPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Long: `Starts an interactive game. Players take turns placing workers, then
moving and building, until one worker reaches the top level.

Coordinates are zero-based "x y" pairs; moves and builds take
"fromX fromY toX toY".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger("play")
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return handler.Handle(err)
			}
			if err := cfg.Validate(); err != nil {
				return handler.Handle(err)
			}

			loadPath, _ := cmd.Flags().GetString("load")
			savePath, _ := cmd.Flags().GetString("save")
			plain, _ := cmd.Flags().GetBool("plain")

			var manager *game.Manager
			if loadPath != "" {
				manager, err = gamelog.Load(loadPath)
				if err != nil {
					return handler.Handle(err)
				}
			} else {
				manager = newManagerFromConfig(cfg, logger)
			}

			if savePath == "" && loadPath == "" {
				savePath = defaultSavePath(cfg)
			}
			if loadPath != "" && savePath == "" {
				savePath = loadPath
			}
			if savePath != "" {
				if err := ensureGameLog(savePath, manager); err != nil {
					return handler.Handle(err)
				}
				logger.WithField("path", savePath).Info("saving game log")
			}

			if plain {
				return handler.Handle(runPlainGame(cmd, manager, savePath))
			}

			model := play.New(manager,
				play.WithSavePath(savePath),
				play.WithLogger(logger),
			)
			_, err = tea.NewProgram(model).Run()
			return handler.Handle(err)
		},
	}

	cmd.Flags().String("save", "", "Path to write the game log to")
	cmd.Flags().String("load", "", "Resume a game from an existing game log")
	cmd.Flags().Bool("plain", false, "Use a plain line-based prompt instead of the TUI")
	return cmd
}

// newManagerFromConfig builds a fresh game from the loaded configuration.
func newManagerFromConfig(cfg *config.Config, logger *logrus.Entry) *game.Manager {
	b := board.New(
		board.WithDimensions(cfg.Board.Length, cfg.Board.Width),
		board.WithMaxHeight(cfg.Board.MaxHeight),
		board.WithMaxWorkersPerPlayer(cfg.Board.MaxWorkersPerPlayer),
	)

	order := make([]board.Color, 0, len(cfg.Players))
	for _, p := range cfg.Players {
		if c, err := board.ParseColor(p); err == nil {
			order = append(order, c)
		}
	}

	return game.NewManager(
		game.WithBoard(b),
		game.WithPlayerOrder(order),
		game.WithLogger(logger),
	)
}

// defaultSavePath returns a timestamped log path under the configured log
// directory.
func defaultSavePath(cfg *config.Config) string {
	name := time.Now().Format("20060102-150405") + ".log"
	return filepath.Join(cfg.LogDir, name)
}

// ensureGameLog writes the log header (and any replayed history) so turns can
// be appended as they are played.
func ensureGameLog(path string, manager *game.Manager) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return gamelog.Save(path, manager)
}

// runPlainGame is the line-based game loop: print the board, prompt for the
// expected turn, apply it, repeat until the game ends.
func runPlainGame(cmd *cobra.Command, manager *game.Manager, savePath string) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		over, err := manager.InEndGameState()
		if err != nil {
			return err
		}
		if over {
			break
		}

		fmt.Fprintln(out)
		fmt.Fprint(out, manager.Board().String())

		action := manager.CurrentAction()
		usage := "(x y)"
		if action != board.ActionPlaceWorker {
			usage = "(fromX fromY toX toY)"
		}
		fmt.Fprintf(out, "player %s: %s %s: ", string(manager.ActivePlayer()), string(action), usage)

		if !scanner.Scan() {
			return scanner.Err()
		}

		coords, err := parsePlainCoordinates(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}

		turn, err := board.NewTurn(manager.ActivePlayer(), action, coords)
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}
		if err := manager.Apply(turn); err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}
		if savePath != "" {
			if err := gamelog.AppendTurn(savePath, turn); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, manager.Board().String())
	if winner, ok := manager.Winner(); ok {
		fmt.Fprintf(out, "player %q wins!\n", string(winner))
	}
	return nil
}

func parsePlainCoordinates(raw string) ([]int, error) {
	fields := strings.FieldsFunc(strings.TrimSpace(raw), func(r rune) bool {
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
