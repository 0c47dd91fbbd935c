package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/grovetools/santorini/cli"
	"github.com/grovetools/santorini/game"
	"github.com/grovetools/santorini/gamelog"
	"github.com/grovetools/santorini/logging"
)

func NewReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <game-log>",
		Short: "Replay a logged game turn by turn",
		Long: `Replays a game log, printing the board after each turn. With --follow the
log is tailed so a game in progress can be watched as it is played.

Examples:
  # Replay a finished game
  santorini replay .santorini/games/20260830-101500.log

  # Watch a live game from another terminal
  santorini replay --follow .santorini/games/current.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger("replay")
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

			follow, _ := cmd.Flags().GetBool("follow")
			out := cmd.OutOrStdout()

			manager, err := gamelog.Load(args[0], game.WithLogger(logger))
			if err != nil {
				return handler.Handle(err)
			}

			for i, state := range manager.History() {
				fmt.Fprintf(out, "turn %d: %s\n", i+1, gamelog.FormatTurn(state.Turn))
				fmt.Fprint(out, state.Board.String())
				fmt.Fprintln(out)
			}

			if !follow {
				if winner, ok := manager.Winner(); ok {
					fmt.Fprintf(out, "player %q wins!\n", string(winner))
				}
				return nil
			}

			follower, err := gamelog.Follow(args[0], gamelog.FollowOptions{Logger: logger})
			if err != nil {
				return handler.Handle(err)
			}
			defer follower.Stop()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

			count := len(manager.History())
			for {
				select {
				case <-sig:
					return nil
				case turn, ok := <-follower.Turns:
					if !ok {
						return nil
					}
					if err := manager.Apply(turn); err != nil {
						return handler.Handle(err)
					}
					count++
					fmt.Fprintf(out, "turn %d: %s\n", count, gamelog.FormatTurn(turn))
					fmt.Fprint(out, manager.Board().String())
					fmt.Fprintln(out)

					if winner, ok := manager.Winner(); ok {
						fmt.Fprintf(out, "player %q wins!\n", string(winner))
						return nil
					}
				}
			}
		},
	}

	cmd.Flags().BoolP("follow", "f", false, "Keep tailing the log for new turns")
	return cmd
}
