package precommit

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

const preCommitHookTemplate = `#!/bin/sh
# Santorini git hook - pre-commit
# Auto-generated, do not edit directly

if ! command -v pre-commit >/dev/null 2>&1; then
    echo "pre-commit not found. Skipping pre-commit hook."
    exit 0
fi

cd "$(git rev-parse --show-toplevel)"

if [ ! -f "{{.ConfigFile}}" ]; then
    echo "{{.ConfigFile}} not found. Skipping pre-commit hook."
    exit 0
fi

exec pre-commit run --config "{{.ConfigFile}}"
`

// hookMarker identifies hook scripts managed by this tool.
const hookMarker = "Santorini git hook"

// HookManager installs and removes the generated pre-commit git hook. The
// generated script only delegates to the external pre-commit framework;
// hook execution itself stays outside this repository.
type HookManager struct {
	configFile string
}

// NewHookManager creates a new hook manager. An empty configFile means the
// canonical .pre-commit-config.yaml.
func NewHookManager(configFile string) *HookManager {
	if configFile == "" {
		configFile = ConfigFileName
	}
	return &HookManager{
		configFile: configFile,
	}
}

// InstallHook installs the pre-commit git hook into the repository at
// repoPath. A pre-existing foreign hook is backed up first.
func (m *HookManager) InstallHook(ctx context.Context, repoPath string) error {
	hooksDir := filepath.Join(repoPath, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("create hooks directory: %w", err)
	}

	hookPath := filepath.Join(hooksDir, "pre-commit")

	// Check if hook already exists
	if _, err := os.Stat(hookPath); err == nil {
		if !m.isManagedHook(hookPath) {
			// Backup existing hook
			backupPath := hookPath + ".pre-santorini"
			if err := os.Rename(hookPath, backupPath); err != nil {
				return fmt.Errorf("backup existing hook: %w", err)
			}
		}
	}

	tmpl, err := template.New("pre-commit").Parse(preCommitHookTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		ConfigFile string
	}{
		ConfigFile: m.configFile,
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	// Write hook file with executable permissions
	// #nosec G306 - Git hooks need to be executable
	if err := os.WriteFile(hookPath, buf.Bytes(), 0755); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}

	return nil
}

// UninstallHook removes the managed pre-commit git hook, leaving foreign
// hooks untouched.
func (m *HookManager) UninstallHook(ctx context.Context, repoPath string) error {
	hookPath := filepath.Join(repoPath, ".git", "hooks", "pre-commit")

	if m.isManagedHook(hookPath) {
		if err := os.Remove(hookPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove pre-commit hook: %w", err)
		}
	}

	return nil
}

// isManagedHook checks if a hook file was generated by this tool.
func (m *HookManager) isManagedHook(hookPath string) bool {
	content, err := os.ReadFile(hookPath)
	if err != nil {
		return false
	}
	return bytes.Contains(content, []byte(hookMarker))
}
