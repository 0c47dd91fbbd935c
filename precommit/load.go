package precommit

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/grovetools/santorini/errors"
)

// Load reads and decodes a pre-commit configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeHookConfigNotFound,
				"hook configuration not found: "+path).
				WithDetail("path", path)
		}
		return nil, err
	}
	return LoadBytes(data)
}

// LoadBytes decodes pre-commit configuration data. Unknown fields are
// rejected so typos in the config surface immediately.
func LoadBytes(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeHookConfigInvalid,
			"failed to parse hook configuration")
	}
	return &cfg, nil
}

// FindConfig locates .pre-commit-config.yaml in the given repository root.
func FindConfig(repoPath string) (string, error) {
	path := filepath.Join(repoPath, ConfigFileName)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", errors.New(errors.ErrCodeHookConfigNotFound,
			"hook configuration not found: "+path).
			WithDetail("path", path)
	}
	return path, nil
}
