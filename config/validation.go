package config

import (
	"fmt"

	"github.com/grovetools/santorini/errors"
)

// validColors are the player color codes the board understands.
var validColors = map[string]bool{
	"b": true,
	"w": true,
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Board.Length <= 0 {
		return errors.New(errors.ErrCodeConfigValidation, "board.length must be positive").
			WithDetail("length", c.Board.Length)
	}
	if c.Board.Width <= 0 {
		return errors.New(errors.ErrCodeConfigValidation, "board.width must be positive").
			WithDetail("width", c.Board.Width)
	}
	if c.Board.MaxHeight <= 0 {
		return errors.New(errors.ErrCodeConfigValidation, "board.max_height must be positive").
			WithDetail("maxHeight", c.Board.MaxHeight)
	}
	if c.Board.MaxWorkersPerPlayer <= 0 {
		return errors.New(errors.ErrCodeConfigValidation, "board.max_workers_per_player must be positive").
			WithDetail("maxWorkersPerPlayer", c.Board.MaxWorkersPerPlayer)
	}

	if len(c.Players) < 2 {
		return errors.New(errors.ErrCodeConfigValidation, "at least two players are required").
			WithDetail("players", c.Players)
	}

	seen := make(map[string]bool)
	for _, p := range c.Players {
		if !validColors[p] {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("unknown player color '%s'", p)).
				WithDetail("color", p)
		}
		if seen[p] {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("duplicate player color '%s'", p)).
				WithDetail("color", p)
		}
		seen[p] = true
	}

	// The board must be able to seat every worker
	totalWorkers := len(c.Players) * c.Board.MaxWorkersPerPlayer
	if totalWorkers > c.Board.Length*c.Board.Width {
		return errors.New(errors.ErrCodeConfigValidation, "board is too small for the configured number of workers").
			WithDetail("workers", totalWorkers).
			WithDetail("squares", c.Board.Length*c.Board.Width)
	}

	return nil
}
