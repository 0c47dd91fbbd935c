// Package server provides the HTTP spectator server: board state over a JSON
// API and live turn updates over Server-Sent Events.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/grovetools/santorini/board"
	"github.com/grovetools/santorini/game"
)

// RunningConfig describes the game the server is spectating. Exposed via
// /api/config so clients can verify what they connected to.
type RunningConfig struct {
	BoardLength         int       `json:"board_length"`
	BoardWidth          int       `json:"board_width"`
	MaxHeight           int       `json:"max_height"`
	MaxWorkersPerPlayer int       `json:"max_workers_per_player"`
	LogPath             string    `json:"log_path,omitempty"`
	StartedAt           time.Time `json:"started_at"`
}

// Server serves the spectator HTTP API for a running game.
type Server struct {
	logger        *logrus.Entry
	manager       *game.Manager
	server        *http.Server
	runningConfig *RunningConfig
}

// New creates a new Server for the given game.
func New(logger *logrus.Entry, manager *game.Manager) *Server {
	return &Server{
		logger:  logger,
		manager: manager,
	}
}

// SetRunningConfig sets the running configuration reported by /api/config.
func (s *Server) SetRunningConfig(cfg *RunningConfig) {
	s.runningConfig = cfg
}

// Handler returns the HTTP handler serving the spectator API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/state", s.handleGetState)
	mux.HandleFunc("/api/history", s.handleGetHistory)
	mux.HandleFunc("/api/stream", s.handleStreamState)
	mux.HandleFunc("/api/config", s.handleGetConfig)

	return mux
}

// ListenAndServe starts the spectator server on the given address.
// It blocks until the server stops or fails.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: h2c.NewHandler(s.Handler(), &http2.Server{}),
	}

	s.logger.WithField("addr", addr).Info("Spectator server listening")
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleGetState returns the current board and active player as JSON.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	update := apiStateUpdate{
		UpdateType:   "state",
		ActivePlayer: string(s.manager.ActivePlayer()),
		Action:       string(s.manager.CurrentAction()),
		Board:        convertBoard(s.manager.Board()),
	}
	if winner, over := s.manager.Winner(); over {
		update.Winner = string(winner)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(update)
}

// handleGetHistory returns every applied turn as JSON.
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	history := s.manager.History()
	turns := make([]apiTurn, 0, len(history))
	for _, st := range history {
		turns = append(turns, convertTurn(st.Turn))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"turns": turns,
		"count": len(turns),
	})
}

// handleGetConfig returns the running configuration as JSON.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	if s.runningConfig == nil {
		http.Error(w, "config not initialized", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.runningConfig)
}

// handleStreamState provides Server-Sent Events (SSE) for real-time turn
// updates. Clients subscribe to this endpoint to see the game as it is played.
func (s *Server) handleStreamState(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.manager.Subscribe()
	defer s.manager.Unsubscribe(ch)

	// Send initial ping to confirm connection
	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	s.logger.Debug("SSE client connected")

	// Send current state immediately so the client has a board right away
	initial := apiStateUpdate{
		UpdateType:   "initial",
		ActivePlayer: string(s.manager.ActivePlayer()),
		Action:       string(s.manager.CurrentAction()),
		Board:        convertBoard(s.manager.Board()),
	}
	if data, err := json.Marshal(initial); err == nil {
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case state, ok := <-ch:
			if !ok {
				return
			}
			update := convertToAPIUpdate(state)
			data, err := json.Marshal(update)
			if err != nil {
				s.logger.WithError(err).Error("Failed to marshal update")
				continue
			}
			// SSE format: "data: {json}\n\n"
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// apiStateUpdate is the public wire format for board states.
type apiStateUpdate struct {
	UpdateType   string   `json:"update_type"`
	ActivePlayer string   `json:"active_player,omitempty"`
	Action       string   `json:"action,omitempty"`
	Winner       string   `json:"winner,omitempty"`
	Turn         *apiTurn `json:"turn,omitempty"`
	Board        apiBoard `json:"board"`
}

type apiTurn struct {
	Player      string `json:"player"`
	Action      string `json:"action"`
	Coordinates []int  `json:"coordinates"`
}

type apiBoard struct {
	Length    int         `json:"length"`
	Width     int         `json:"width"`
	MaxHeight int         `json:"max_height"`
	Blocks    [][]int     `json:"blocks"`
	Workers   []apiWorker `json:"workers"`
}

type apiWorker struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Height int    `json:"height"`
	Color  string `json:"color"`
}

// convertToAPIUpdate converts an applied game state to the public wire format.
func convertToAPIUpdate(state game.State) apiStateUpdate {
	turn := convertTurn(state.Turn)
	return apiStateUpdate{
		UpdateType:   "turn",
		ActivePlayer: string(state.ActivePlayer),
		Action:       string(state.Action),
		Turn:         &turn,
		Board:        convertBoard(state.Board),
	}
}

func convertTurn(t board.Turn) apiTurn {
	return apiTurn{
		Player:      string(t.Player()),
		Action:      string(t.Action()),
		Coordinates: t.Coordinates(),
	}
}

func convertBoard(b *board.Board) apiBoard {
	workers := make([]apiWorker, 0, len(b.Workers))
	for _, w := range b.Workers {
		workers = append(workers, apiWorker{
			X:      w.X,
			Y:      w.Y,
			Height: w.Height,
			Color:  string(w.Color),
		})
	}
	return apiBoard{
		Length:    b.Length,
		Width:     b.Width,
		MaxHeight: b.MaxHeight,
		Blocks:    b.Blocks,
		Workers:   workers,
	}
}
