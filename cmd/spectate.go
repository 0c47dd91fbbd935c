package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/santorini/cli"
	"github.com/grovetools/santorini/game"
	"github.com/grovetools/santorini/gamelog"
	"github.com/grovetools/santorini/logging"
	"github.com/grovetools/santorini/server"
)

func NewSpectateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectate <game-log>",
		Short: "Serve a live game over HTTP",
		Long: `Follows a game log and serves the board state over HTTP. Spectators can
poll /api/state, fetch /api/history, or subscribe to /api/stream for
Server-Sent Events as turns are played.

Examples:
  # Serve a live game on the default address
  santorini spectate .santorini/games/current.log

  # Pick a port and watch from a browser
  santorini spectate --addr :9000 .santorini/games/current.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger("spectate")
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)

			addr, _ := cmd.Flags().GetString("addr")
			logPath := args[0]

			// Replay the log so late spectators still get the full game
			manager, err := gamelog.Load(logPath, game.WithLogger(logger))
			if err != nil {
				return handler.Handle(err)
			}

			b := manager.InitialBoard()
			srv := server.New(logger, manager)
			srv.SetRunningConfig(&server.RunningConfig{
				BoardLength:         b.Length,
				BoardWidth:          b.Width,
				MaxHeight:           b.MaxHeight,
				MaxWorkersPerPlayer: b.MaxWorkersPerPlayer,
				LogPath:             logPath,
				StartedAt:           time.Now(),
			})

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// Feed new turns from the log into the game
			follower, err := gamelog.Follow(logPath, gamelog.FollowOptions{Logger: logger})
			if err != nil {
				return handler.Handle(err)
			}
			defer follower.Stop()

			go func() {
				for turn := range follower.Turns {
					if err := manager.Apply(turn); err != nil {
						logger.WithError(err).Error("logged turn did not apply")
					}
				}
			}()

			// Watch the log directory so deletion of the followed file is
			// reported instead of silently stalling the stream
			go watchLogDir(ctx, logPath, logger)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sig
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				srv.Shutdown(shutdownCtx)
				cancel()
			}()

			if err := srv.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
				return handler.Handle(err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "127.0.0.1:7320", "Address to serve the spectator API on")
	return cmd
}

// watchLogDir reports out-of-band changes to the followed game log, such as
// the file being removed or a new game starting in the same directory.
func watchLogDir(ctx context.Context, logPath string, logger *logrus.Entry) {
	watcher, err := server.NewLogWatcher(filepath.Dir(logPath), 100, logger)
	if err != nil {
		logger.WithError(err).Warn("could not watch game log directory")
		return
	}
	defer watcher.Close()

	go watcher.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events():
			if !ok {
				return
			}
			switch {
			case ev.Path == logPath && ev.Type == server.LogRemoved:
				logger.Warn("followed game log was removed; stream will stall until it reappears")
			case ev.Path != logPath && ev.Type == server.LogCreated:
				logger.WithField("path", ev.Path).Info("new game log appeared")
			}
		}
	}
}
