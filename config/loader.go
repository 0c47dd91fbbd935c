package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/santorini/errors"
)

// configFileNames are the recognized configuration file names, in order of
// preference.
var configFileNames = []string{"santorini.yml", "santorini.yaml", "santorini.toml"}

// FindConfigFile walks up from startDir looking for a configuration file.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.ConfigNotFound(filepath.Join(startDir, configFileNames[0]))
		}
		dir = parent
	}
}

// LoadDefault loads the configuration found by searching from the current
// working directory, with defaults applied.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	path, err := FindConfigFile(cwd)
	if err != nil {
		return nil, err
	}

	return Load(path)
}

// Load reads and decodes a configuration file, dispatching on its extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, err
	}

	if strings.HasSuffix(path, ".toml") {
		return LoadTOMLBytes(data)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes decodes YAML configuration data and applies defaults.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}
	cfg.SetDefaults()
	return &cfg, nil
}

// LoadTOMLBytes decodes TOML configuration data and applies defaults. Unknown
// top-level tables are collected into Extensions, mirroring the YAML path.
func LoadTOMLBytes(data []byte) (*Config, error) {
	var full map[string]interface{}
	if err := toml.Unmarshal(data, &full); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &cfg,
		TagName: "toml",
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create config decoder")
	}
	if err := decoder.Decode(full); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode TOML configuration")
	}

	for key := range full {
		if knownTopLevelKeys[key] {
			delete(full, key)
		}
	}
	if len(full) > 0 {
		cfg.Extensions = full
	}

	cfg.SetDefaults()
	return &cfg, nil
}
