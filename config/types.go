package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../tools/schema-generator/

// BoardConfig defines the dimensions of the game board.
type BoardConfig struct {
	Length              int `yaml:"length,omitempty" toml:"length,omitempty" jsonschema:"description=Number of squares along the y-axis of the board (default: 5)"`
	Width               int `yaml:"width,omitempty" toml:"width,omitempty" jsonschema:"description=Number of squares along the x-axis of the board (default: 5)"`
	MaxHeight           int `yaml:"max_height,omitempty" toml:"max_height,omitempty" jsonschema:"description=Maximum building height (default: 4)"`
	MaxWorkersPerPlayer int `yaml:"max_workers_per_player,omitempty" toml:"max_workers_per_player,omitempty" jsonschema:"description=Workers each player places during setup (default: 2)"`
}

// Config is the root structure of santorini.yml.
type Config struct {
	Version string      `yaml:"version" toml:"version" jsonschema:"required,description=Configuration version (e.g. '1.0')"`
	Board   BoardConfig `yaml:"board,omitempty" toml:"board,omitempty" jsonschema:"description=Board dimensions and limits"`
	Players []string    `yaml:"players,omitempty" toml:"players,omitempty" jsonschema:"description=Player turn order as color codes (e.g. ['b' 'w'])"`
	LogDir  string      `yaml:"log_dir,omitempty" toml:"log_dir,omitempty" jsonschema:"description=Directory where game logs are saved"`

	// Extensions captures unknown top-level sections (e.g. "logging") so that
	// subsystems can decode their own configuration without the core schema
	// having to know about them.
	Extensions map[string]interface{} `yaml:"-" toml:"-" jsonschema:"-"`
}

// knownTopLevelKeys are the sections owned by the core config schema.
var knownTopLevelKeys = map[string]bool{
	"version": true,
	"board":   true,
	"players": true,
	"log_dir": true,
}

// UnmarshalYAML decodes the known fields and collects everything else into
// Extensions.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	type rawConfig struct {
		Version string      `yaml:"version"`
		Board   BoardConfig `yaml:"board"`
		Players []string    `yaml:"players"`
		LogDir  string      `yaml:"log_dir"`
	}

	var raw rawConfig
	if err := node.Decode(&raw); err != nil {
		return err
	}

	c.Version = raw.Version
	c.Board = raw.Board
	c.Players = raw.Players
	c.LogDir = raw.LogDir

	var full map[string]interface{}
	if err := node.Decode(&full); err != nil {
		return err
	}
	for key := range full {
		if knownTopLevelKeys[key] {
			delete(full, key)
		}
	}
	if len(full) > 0 {
		c.Extensions = full
	}

	return nil
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.Board.Length == 0 {
		c.Board.Length = 5
	}
	if c.Board.Width == 0 {
		c.Board.Width = 5
	}
	if c.Board.MaxHeight == 0 {
		c.Board.MaxHeight = 4
	}
	if c.Board.MaxWorkersPerPlayer == 0 {
		c.Board.MaxWorkersPerPlayer = 2
	}
	if len(c.Players) == 0 {
		c.Players = []string{"b", "w"}
	}
	if c.LogDir == "" {
		c.LogDir = ".santorini/games"
	}
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded santorini.yml into the provided target struct. The target must be a
// pointer. This provides a type-safe way for subsystems to access their
// custom configuration sections.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct, using `yaml` tags for
	// consistency with file-based decoding.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
