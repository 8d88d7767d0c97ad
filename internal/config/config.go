// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - configuration structure, loading and persistence.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/nlterm/internal/util"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config is the root configuration structure.
type Config struct {
	// Root is the sandbox directory every command is confined to.
	Root string `toml:"root"`

	// HistoryFile is the readline history path. Empty means
	// ~/.nlterm/history.
	HistoryFile string `toml:"history_file"`

	// HistoryDB is the SQLite command log path. Empty means
	// ~/.nlterm/history.db.
	HistoryDB string `toml:"history_db"`

	// HistoryLimit caps the number of persisted command log rows.
	HistoryLimit int `toml:"history_limit"`

	// Prompt is the prompt prefix shown before the relative cwd.
	Prompt string `toml:"prompt"`

	// Suggestions is the maximum number of "did you mean" entries
	// shown when natural-language resolution fails.
	Suggestions int `toml:"suggestions"`

	// Color controls styled output: "auto", "always" or "never".
	Color string `toml:"color"`

	// AssistURL overrides the code-assistance API base URL.
	AssistURL string `toml:"assist_url"`

	// AssistModel overrides the code-assistance model.
	AssistModel string `toml:"assist_model"`

	// AssistKey is the code-assistance API key. Env-only; never
	// written to the config file.
	AssistKey string `toml:"-"`
}

// Default returns the default configuration.
func Default() *Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &Config{
		Root:         cwd,
		HistoryLimit: 1000,
		Prompt:       "nlterm",
		Suggestions:  3,
		Color:        "auto",
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the nlterm configuration directory (~/.nlterm).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".nlterm"), nil
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the configuration from disk, fills defaults for missing
// fields, and applies environment overrides. A missing file is not an
// error; defaults are returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: defaults plus env overrides.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.fillDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration atomically.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// fillDefaults populates empty fields with defaults so partial config
// files keep working across upgrades.
func (c *Config) fillDefaults() {
	def := Default()
	if c.Root == "" {
		c.Root = def.Root
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = def.HistoryLimit
	}
	if c.Prompt == "" {
		c.Prompt = def.Prompt
	}
	if c.Suggestions <= 0 {
		c.Suggestions = def.Suggestions
	}
	if c.Color == "" {
		c.Color = def.Color
	}
	if c.HistoryFile == "" {
		if dir, err := ConfigDir(); err == nil {
			c.HistoryFile = filepath.Join(dir, "history")
		}
	}
	if c.HistoryDB == "" {
		if dir, err := ConfigDir(); err == nil {
			c.HistoryDB = filepath.Join(dir, "history.db")
		}
	}
}

// applyEnvOverrides applies NLTERM_* environment variables on top of
// file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NLTERM_ROOT"); v != "" {
		c.Root = v
	}
	if v := os.Getenv("NLTERM_HISTORY"); v != "" {
		c.HistoryFile = v
	}
	if v := os.Getenv("NLTERM_COLOR"); v != "" {
		c.Color = v
	}
	if v := os.Getenv("NLTERM_ASSIST_URL"); v != "" {
		c.AssistURL = v
	}
	if v := os.Getenv("NLTERM_ASSIST_KEY"); v != "" {
		c.AssistKey = v
	}
}

// Validate checks configuration invariants. A nonexistent root is the
// one startup condition considered fatal.
func (c *Config) Validate() error {
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("root directory %q does not exist: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %q is not a directory", c.Root)
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	return nil
}

// =============================================================================
// GLOBAL SINGLETON
// =============================================================================

var (
	globalConfig *Config
	globalMu     sync.RWMutex
	globalOnce   sync.Once
)

// Global returns the process-wide configuration, loading it on first
// use. Load errors fall back to defaults; startup code calls Load
// directly and reports errors itself.
func Global() *Config {
	globalOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalMu.Lock()
		globalConfig = cfg
		globalMu.Unlock()
	})
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalOnce.Do(func() {})
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}

// ResetGlobalForTesting clears the singleton. Test helper only.
func ResetGlobalForTesting() {
	globalMu.Lock()
	globalConfig = nil
	globalMu.Unlock()
	globalOnce = sync.Once{}
}
