package precommit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grovetools/santorini/errors"
	"github.com/grovetools/santorini/testutil"
)

const sampleConfig = `repos:
  - repo: https://github.com/astral-sh/ruff-pre-commit
    rev: v0.1.9
    hooks:
      - id: ruff
        args: [--fix]
  - repo: https://github.com/psf/black
    rev: 23.12.1
    hooks:
      - id: black
        language_version: python3.11
  - repo: https://github.com/pre-commit/mirrors-mypy
    rev: v1.8.0
    hooks:
      - id: mypy
`

func TestLoadBytes(t *testing.T) {
	cfg, err := LoadBytes([]byte(sampleConfig))
	require.NoError(t, err)

	require.Len(t, cfg.Repos, 3)
	require.Equal(t, "https://github.com/psf/black", cfg.Repos[1].Repo)
	require.Equal(t, "23.12.1", cfg.Repos[1].Rev)
	require.Equal(t, []string{"ruff", "black", "mypy"}, cfg.HookIDs())
	require.Equal(t, []string{"--fix"}, cfg.Repos[0].Hooks[0].Args)
	require.Equal(t, "python3.11", cfg.Repos[1].Hooks[0].LanguageVersion)
}

func TestLoadBytesRejectsUnknownFields(t *testing.T) {
	_, err := LoadBytes([]byte("repos:\n  - repo: x\n    revision: y\n    hooks: [{id: z}]\n"))
	if !errors.Is(err, errors.ErrCodeHookConfigInvalid) {
		t.Errorf("Expected HOOK_CONFIG_INVALID for unknown field, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadBytes([]byte(sampleConfig))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no repos", func(c *Config) { c.Repos = nil }},
		{"empty repo url", func(c *Config) { c.Repos[0].Repo = "" }},
		{"empty rev", func(c *Config) { c.Repos[0].Rev = "" }},
		{"no hooks", func(c *Config) { c.Repos[0].Hooks = nil }},
		{"empty hook id", func(c *Config) { c.Repos[0].Hooks[0].ID = "" }},
		{"duplicate hook id", func(c *Config) {
			c.Repos[0].Hooks = append(c.Repos[0].Hooks, Hook{ID: "ruff"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadBytes([]byte(sampleConfig))
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			if !errors.Is(err, errors.ErrCodeHookConfigInvalid) {
				t.Errorf("Expected HOOK_CONFIG_INVALID, got %v", err)
			}
		})
	}
}

func TestSchemaValidator(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)

	require.NoError(t, v.ValidateYAML([]byte(sampleConfig)))

	bad := []struct {
		name string
		doc  string
	}{
		{"missing repos", "unrelated: true\n"},
		{"repos not a list", "repos: 3\n"},
		{"missing rev", "repos:\n  - repo: x\n    hooks: [{id: y}]\n"},
		{"empty hooks", "repos:\n  - repo: x\n    rev: y\n    hooks: []\n"},
		{"unknown hook field", "repos:\n  - repo: x\n    rev: y\n    hooks: [{id: z, entry: cmd}]\n"},
	}

	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidateYAML([]byte(tt.doc)); err == nil {
				t.Error("Expected schema validation to fail")
			}
		})
	}
}

func TestFindConfig(t *testing.T) {
	dir := t.TempDir()

	_, err := FindConfig(dir)
	if !errors.Is(err, errors.ErrCodeHookConfigNotFound) {
		t.Errorf("Expected HOOK_CONFIG_NOT_FOUND, got %v", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0600))

	found, err := FindConfig(dir)
	require.NoError(t, err)
	require.Equal(t, path, found)
}

func TestInstallAndUninstallHook(t *testing.T) {
	repo := t.TempDir()
	testutil.InitGitRepo(t, repo)

	m := NewHookManager("")
	ctx := context.Background()

	require.NoError(t, m.InstallHook(ctx, repo))

	hookPath := filepath.Join(repo, ".git", "hooks", "pre-commit")
	content, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(content), hookMarker))
	require.True(t, strings.Contains(string(content), ConfigFileName))

	info, err := os.Stat(hookPath)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&0111, "hook should be executable")

	// Installing again over our own hook must not create a backup
	require.NoError(t, m.InstallHook(ctx, repo))
	_, err = os.Stat(hookPath + ".pre-santorini")
	require.True(t, os.IsNotExist(err))

	require.NoError(t, m.UninstallHook(ctx, repo))
	_, err = os.Stat(hookPath)
	require.True(t, os.IsNotExist(err))
}

func TestInstallBacksUpForeignHook(t *testing.T) {
	repo := t.TempDir()
	hooksDir := filepath.Join(repo, ".git", "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0755))

	foreign := []byte("#!/bin/sh\necho custom hook\n")
	hookPath := filepath.Join(hooksDir, "pre-commit")
	require.NoError(t, os.WriteFile(hookPath, foreign, 0755))

	m := NewHookManager("")
	require.NoError(t, m.InstallHook(context.Background(), repo))

	backup, err := os.ReadFile(hookPath + ".pre-santorini")
	require.NoError(t, err)
	require.Equal(t, foreign, backup)

	// Uninstall leaves the foreign backup in place
	require.NoError(t, m.UninstallHook(context.Background(), repo))
	_, err = os.Stat(hookPath + ".pre-santorini")
	require.NoError(t, err)
}
