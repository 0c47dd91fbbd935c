package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromBytesDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("version: \"1.0\"\n"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Board.Length != 5 || cfg.Board.Width != 5 {
		t.Errorf("Expected default 5x5 board, got %dx%d", cfg.Board.Width, cfg.Board.Length)
	}
	if cfg.Board.MaxHeight != 4 {
		t.Errorf("Expected default max height 4, got %d", cfg.Board.MaxHeight)
	}
	if cfg.Board.MaxWorkersPerPlayer != 2 {
		t.Errorf("Expected default 2 workers per player, got %d", cfg.Board.MaxWorkersPerPlayer)
	}
	if len(cfg.Players) != 2 || cfg.Players[0] != "b" || cfg.Players[1] != "w" {
		t.Errorf("Expected default player order [b w], got %v", cfg.Players)
	}
}

// TestExtensions verifies that custom sections in santorini.yml are properly
// captured and decodable.
func TestExtensions(t *testing.T) {
	yamlContent := []byte(`
version: "1.0"
board:
  length: 6
  width: 6

logging:
  level: debug
  report_caller: true

spectate:
  listen: "127.0.0.1:7777"
`)

	cfg, err := LoadFromBytes(yamlContent)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Extensions == nil {
		t.Fatal("Extensions map should not be nil")
	}
	if _, ok := cfg.Extensions["logging"]; !ok {
		t.Fatal("Expected 'logging' extension to be present")
	}
	if _, ok := cfg.Extensions["board"]; ok {
		t.Error("Known sections should not appear in Extensions")
	}

	type logConfig struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}
	var logCfg logConfig
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		t.Fatalf("Failed to unmarshal logging extension: %v", err)
	}
	if logCfg.Level != "debug" || !logCfg.ReportCaller {
		t.Errorf("Unexpected logging extension: %+v", logCfg)
	}

	// Non-existent extension should not error and leave the target zero-valued
	var unknown logConfig
	if err := cfg.UnmarshalExtension("unknown", &unknown); err != nil {
		t.Fatalf("UnmarshalExtension should not error for non-existent keys: %v", err)
	}
	if unknown.Level != "" {
		t.Error("Expected zero value for non-existent extension")
	}
}

func TestLoadTOML(t *testing.T) {
	tomlContent := []byte(`
version = "1.0"
players = ["w", "b"]

[board]
length = 4
width = 4
max_height = 3
max_workers_per_player = 1

[logging]
level = "warn"
`)

	cfg, err := LoadTOMLBytes(tomlContent)
	if err != nil {
		t.Fatalf("Failed to load TOML config: %v", err)
	}

	if cfg.Board.Length != 4 || cfg.Board.MaxHeight != 3 {
		t.Errorf("Unexpected board config: %+v", cfg.Board)
	}
	if len(cfg.Players) != 2 || cfg.Players[0] != "w" {
		t.Errorf("Unexpected players: %v", cfg.Players)
	}
	if _, ok := cfg.Extensions["logging"]; !ok {
		t.Error("Expected 'logging' extension from TOML")
	}
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(root, "santorini.yml")
	if err := os.WriteFile(configPath, []byte("version: \"1.0\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfigFile(nested)
	if err != nil {
		t.Fatalf("FindConfigFile failed: %v", err)
	}
	if found != configPath {
		t.Errorf("Expected %s, got %s", configPath, found)
	}
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	if err != nil {
		t.Fatalf("GenerateSchema failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Expected non-empty schema")
	}
}
