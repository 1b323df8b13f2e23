// Copyright (c) 2025 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(envConfigDir, dir)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	setConfigDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().API, cfg.API)
	assert.True(t, cfg.UI.MouseEnabled)
}

func TestLoad_FromFile(t *testing.T) {
	dir := setConfigDir(t)

	content := `
[api]
board_url = "https://board.example.com"
auth_url = "https://auth.example.com"
forum_url = "https://forum.example.com"
timeout_secs = 30

[ui]
compact_mode = true
mouse_enabled = false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://board.example.com", cfg.API.BoardURL)
	assert.Equal(t, 30, cfg.API.TimeoutSecs)
	assert.True(t, cfg.UI.CompactMode)
	assert.False(t, cfg.UI.MouseEnabled)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := setConfigDir(t)

	content := `
[api]
board_url = "https://board.example.com"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://board.example.com", cfg.API.BoardURL)
	assert.Equal(t, Default().API.AuthURL, cfg.API.AuthURL)
	assert.Equal(t, Default().API.TimeoutSecs, cfg.API.TimeoutSecs)
}

func TestLoad_EnvOverridesWin(t *testing.T) {
	dir := setConfigDir(t)

	content := `
[api]
board_url = "https://file.example.com"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))
	t.Setenv("AGORA_BOARD_URL", "https://env.example.com")
	t.Setenv("AGORA_TIMEOUT_SECS", "45")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.API.BoardURL)
	assert.Equal(t, 45, cfg.API.TimeoutSecs)
}

func TestLoad_MalformedFileErrors(t *testing.T) {
	dir := setConfigDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0600))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty board url", func(c *Config) { c.API.BoardURL = "" }, "api.board_url"},
		{"bad scheme", func(c *Config) { c.API.AuthURL = "ftp://auth" }, "api.auth_url"},
		{"zero timeout", func(c *Config) { c.API.TimeoutSecs = 0 }, "api.timeout_secs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	setConfigDir(t)

	cfg := Default()
	cfg.API.BoardURL = "https://saved.example.com"
	cfg.UI.CompactMode = true
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.API.BoardURL, loaded.API.BoardURL)
	assert.True(t, loaded.UI.CompactMode)
}

func TestGlobal_FallsBackToDefaults(t *testing.T) {
	dir := setConfigDir(t)

	// A broken file must not prevent the UI from starting.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("broken ["), 0600))

	cfg := Global()
	require.NotNil(t, cfg)
	assert.Equal(t, Default().API.BoardURL, cfg.API.BoardURL)
}

func TestSessionPath_UnderConfigDir(t *testing.T) {
	dir := setConfigDir(t)

	path, err := SessionPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "session.json"), path)
}
