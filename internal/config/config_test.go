// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the home directory at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, k := range []string{
		"TAXCHAT_BACKEND_URL", "TAXCHAT_THEME", "TAXCHAT_REGIME",
		"TAXCHAT_LOG_LEVEL", "TAXCHAT_LOG_FILE", "TAXCHAT_NO_MARKDOWN",
	} {
		t.Setenv(k, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.True(t, cfg.UI.Markdown)
	assert.Equal(t, "1200000", cfg.Calculator.Income)
	assert.Equal(t, "new", cfg.Calculator.Regime)
	assert.Equal(t, "150000", cfg.Calculator.Deductions80C)
	assert.Equal(t, "0", cfg.Calculator.Deductions80D)
	assert.Equal(t, "0", cfg.Calculator.OtherDeductions)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

// =============================================================================
// LOADING AND PRECEDENCE
// =============================================================================

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BuildBackendURL, cfg.Backend.URL)
	assert.Equal(t, "auto", cfg.UI.Theme)
}

func TestLoad_TOMLOverridesDefaults(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".taxchat", "config.toml"), `
[backend]
url = "https://tax.example.com/"

[ui]
theme = "Dark"
markdown = false
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://tax.example.com", cfg.Backend.URL)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.False(t, cfg.UI.Markdown)
	// untouched keys keep their defaults
	assert.True(t, cfg.UI.AltScreen)
	assert.Equal(t, "1200000", cfg.Calculator.Income)
}

func TestLoad_JSONFallback(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".taxchat", "config.json"),
		`{"calculator":{"regime":"old","income":"900000"}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "old", cfg.Calculator.Regime)
	assert.Equal(t, "900000", cfg.Calculator.Income)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".taxchat", "config.toml"), `
[backend]
url = "https://file.example.com"
`)
	t.Setenv("TAXCHAT_BACKEND_URL", "https://env.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Backend.URL)
}

func TestLoad_BuildURLIsLowestPrecedence(t *testing.T) {
	home := isolate(t)
	saved := BuildBackendURL
	BuildBackendURL = "https://build.example.com"
	t.Cleanup(func() { BuildBackendURL = saved })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://build.example.com", cfg.Backend.URL)

	writeFile(t, filepath.Join(home, ".taxchat", "config.toml"), `
[backend]
url = "https://file.example.com"
`)
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com", cfg.Backend.URL)
}

func TestLoad_BrokenFileReturnsDefaultsAndError(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".taxchat", "config.toml"), "this is = = not toml")

	cfg, err := Load()
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "auto", cfg.UI.Theme)
}

func TestLoad_InvalidValues(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".taxchat", "config.toml"), `
[calculator]
regime = "flat"
`)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calculator.regime")
}

func TestLoadFromPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, `
[log]
level = "DEBUG"
`)

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadTOML_TightensPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "version = \"1\"\n")

	require.NoError(t, LoadTOML(Default(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

// =============================================================================
// SAVE
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := Default()
	cfg.Backend.URL = "https://tax.example.com"
	cfg.UI.Mouse = false
	require.NoError(t, SaveTOML(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# taxchat configuration file")

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Calculator.Regime = "old"
	require.NoError(t, SaveJSON(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "old", loaded.Calculator.Regime)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"https url", func(c *Config) { c.Backend.URL = "https://tax.example.com" }, ""},
		{"ftp url", func(c *Config) { c.Backend.URL = "ftp://tax.example.com" }, "backend.url"},
		{"relative url", func(c *Config) { c.Backend.URL = "/api" }, "backend.url"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad regime", func(c *Config) { c.Calculator.Regime = "NEW" }, "calculator.regime"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"text income allowed", func(c *Config) { c.Calculator.Income = "abc" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs ValidateErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.wantErr, verrs[0].Field)
		})
	}
}

func TestValidateErrors_Join(t *testing.T) {
	errs := ValidateErrors{
		{Field: "a", Message: "x"},
		{Field: "b", Message: "y"},
	}
	assert.Equal(t, "a: x; b: y", errs.Error())
}

func TestMigrate_RejectsFutureVersion(t *testing.T) {
	cfg := Default()
	cfg.Version = "9"
	assert.Error(t, cfg.Migrate())
}

// =============================================================================
// ENV OVERRIDES
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TAXCHAT_THEME", "light")
	t.Setenv("TAXCHAT_REGIME", "old")
	t.Setenv("TAXCHAT_LOG_LEVEL", "warn")
	t.Setenv("TAXCHAT_LOG_FILE", "/tmp/x.log")
	t.Setenv("TAXCHAT_NO_MARKDOWN", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "old", cfg.Calculator.Regime)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/x.log", cfg.Log.File)
	assert.False(t, cfg.UI.Markdown)
}

// =============================================================================
// GET / SET
// =============================================================================

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("backend.url", "https://tax.example.com"))
	require.NoError(t, cfg.Set("ui.alt_screen", "off"))
	require.NoError(t, cfg.Set("calculator.deductions_80c", "50000"))
	require.NoError(t, cfg.Set("ui.mouse", false))

	v, err := cfg.Get("backend.url")
	require.NoError(t, err)
	assert.Equal(t, "https://tax.example.com", v)

	v, err = cfg.Get("calculator.deductions_80c")
	require.NoError(t, err)
	assert.Equal(t, "50000", v)

	assert.False(t, cfg.UI.AltScreen)
	assert.False(t, cfg.UI.Mouse)

	_, err = cfg.Get("backend.nope")
	assert.Error(t, err)
	_, err = cfg.Get("ui")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("ui.markdown", "maybe"))
	assert.Error(t, cfg.Set("", "x"))
}

func TestGetAllKeys_Resolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.UI.Theme = "dark"
	assert.Equal(t, "auto", cfg.UI.Theme)
}

func TestConfig_LogPath(t *testing.T) {
	home := isolate(t)
	cfg := Default()

	path, err := cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".taxchat", "taxchat.log"), path)

	cfg.Log.File = "/var/log/taxchat.log"
	path, err = cfg.LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/taxchat.log", path)
}

// =============================================================================
// GLOBAL SINGLETON
// =============================================================================

// TestConfig_ConcurrentAccess checks that Global and SetGlobal can be called
// concurrently. Run with: go test -race ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := Default()
			c.UI.Theme = "dark"
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestGlobal_LoadsOnFirstAccess(t *testing.T) {
	home := isolate(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)
	writeFile(t, filepath.Join(home, ".taxchat", "config.toml"), `
[calculator]
income = "950000"
regime = "old"
`)

	cfg := Global()
	require.NotNil(t, cfg)
	assert.Equal(t, "950000", cfg.Calculator.Income)
	assert.Equal(t, "old", cfg.Calculator.Regime)
	assert.Same(t, cfg, Global())
}

func TestConfig_SetGlobalOverwrites(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	c := Default()
	c.Calculator.Income = "42"
	SetGlobal(c)

	assert.Equal(t, "42", Global().Calculator.Income)
}
