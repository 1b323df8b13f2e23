// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config handles loading and validation of agora configuration.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/agoradev/agora-tui/internal/util"
)

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the top-level agora configuration.
type Config struct {
	API APIConfig `toml:"api" json:"api"`
	UI  UIConfig  `toml:"ui" json:"ui"`
}

// APIConfig holds the endpoint base URLs and HTTP behavior.
// The three resource groups are deployed independently, so each has
// its own base URL rather than a shared host.
type APIConfig struct {
	BoardURL    string `toml:"board_url" json:"board_url"`
	AuthURL     string `toml:"auth_url" json:"auth_url"`
	ForumURL    string `toml:"forum_url" json:"forum_url"`
	TimeoutSecs int    `toml:"timeout_secs" json:"timeout_secs"`
}

// UIConfig holds display preferences.
type UIConfig struct {
	// CompactMode collapses message spacing on small terminals.
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// MouseEnabled turns on mouse wheel scrolling in viewports.
	MouseEnabled bool `toml:"mouse_enabled" json:"mouse_enabled"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BoardURL:    "http://localhost:8081/board",
			AuthURL:     "http://localhost:8082/auth",
			ForumURL:    "http://localhost:8083/forum",
			TimeoutSecs: 15,
		},
		UI: UIConfig{
			CompactMode:  false,
			MouseEnabled: true,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// envConfigDir overrides the config directory, mainly for tests.
const envConfigDir = "AGORA_CONFIG_DIR"

// ConfigDir returns the agora configuration directory (~/.agora).
func ConfigDir() (string, error) {
	if dir := os.Getenv(envConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".agora"), nil
}

// ConfigPath returns the path of the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// SessionPath returns the path of the persisted session file.
func SessionPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the config file, falling back to defaults when it does not
// exist. Environment overrides are applied after the file is read, so
// AGORA_* variables always win.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// First run, defaults are fine.
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies AGORA_* environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("AGORA_BOARD_URL"); v != "" {
		c.API.BoardURL = v
	}
	if v := os.Getenv("AGORA_AUTH_URL"); v != "" {
		c.API.AuthURL = v
	}
	if v := os.Getenv("AGORA_FORUM_URL"); v != "" {
		c.API.ForumURL = v
	}
	if v := os.Getenv("AGORA_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSecs = secs
		}
	}
}

// Save writes the config to disk as TOML with owner-only permissions.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// SECURITY: 0600, the config may point at a private deployment.
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if err := validateURL("api.board_url", c.API.BoardURL); err != nil {
		return err
	}
	if err := validateURL("api.auth_url", c.API.AuthURL); err != nil {
		return err
	}
	if err := validateURL("api.forum_url", c.API.ForumURL); err != nil {
		return err
	}
	if c.API.TimeoutSecs <= 0 {
		return &ValidationError{Field: "api.timeout_secs", Message: "must be positive"}
	}
	return nil
}

func validateURL(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Message: "must not be empty"}
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return &ValidationError{Field: field, Message: "must start with http:// or https://"}
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
// use. A load failure falls back to defaults so the UI can still start;
// the caller that needs the error should use Load directly.
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

// ResetGlobalForTesting clears the singleton so tests can reload.
func ResetGlobalForTesting() {
	globalMu.Lock()
	globalConfig = nil
	globalMu.Unlock()
	globalOnce = sync.Once{}
}
