// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points GEMINIPAD_HOME at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("GEMINIPAD_HOME", home)
	for _, k := range []string{"GEMINI_API_KEY", "GEMINIPAD_MODEL", "GEMINIPAD_BASE_URL", "GEMINIPAD_STORE", "GEMINIPAD_DATA_DIR", "GEMINIPAD_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	return home
}

func TestDefault_IsValid(t *testing.T) {
	home := isolate(t)
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, "json", cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(home, "data"), cfg.Storage.Dir)
	assert.Equal(t, filepath.Join(home, "geminipad.log"), cfg.Log.File)
	assert.True(t, cfg.UI.AltScreen)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[gemini]
requests_per_minute = 30

[storage]
backend = "sqlite"

[ui]
mouse = false
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Gemini.RequestsPerMinute)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.False(t, cfg.UI.Mouse)
	assert.True(t, cfg.UI.AltScreen, "unset bool keeps its default")
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
}

func TestLoad_BlankValuesRefilled(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, FileName)
	require.NoError(t, os.WriteFile(path, []byte("[gemini]\nmodel = \"\"\n[log]\nlevel = \"\"\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("GEMINIPAD_MODEL", "gemini-pro-vision")
	t.Setenv("GEMINIPAD_STORE", "memory")
	t.Setenv("GEMINIPAD_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-pro-vision", cfg.Gemini.Model)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_SyntaxError(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, FileName)
	require.NoError(t, os.WriteFile(path, []byte("[gemini\nmodel = "), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestValidate_ReportsEveryField(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Gemini.Model = "gpt-4"
	cfg.Gemini.BaseURL = "ftp://example.com"
	cfg.Gemini.RequestsPerMinute = -1
	cfg.Storage.Backend = "redis"
	cfg.Log.Level = "loud"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, len(verrs))
	for i, ve := range verrs {
		fields[i] = ve.Field
	}
	assert.ElementsMatch(t, []string{
		"gemini.model", "gemini.base_url", "gemini.requests_per_minute",
		"storage.backend", "log.level", "log.format",
	}, fields)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "nested", FileName)

	cfg := Default()
	cfg.Gemini.APIKey = "saved-key"
	cfg.Storage.Backend = "sqlite"
	cfg.UI.Mouse = false
	require.NoError(t, Save(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# geminipad configuration"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetSet(t *testing.T) {
	isolate(t)
	cfg := Default()

	require.NoError(t, cfg.Set("storage.backend", "sqlite"))
	v, err := cfg.Get("storage.backend")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", v)

	require.NoError(t, cfg.Set("ui.alt_screen", "false"))
	assert.False(t, cfg.UI.AltScreen)

	require.NoError(t, cfg.Set("gemini.requests_per_minute", "12"))
	assert.Equal(t, 12, cfg.Gemini.RequestsPerMinute)

	assert.ErrorIs(t, cfg.Set("nope", "x"), ErrUnknownKey)
	_, err = cfg.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)

	assert.Error(t, cfg.Set("ui.mouse", "maybe"))
	assert.Error(t, cfg.Set("gemini.requests_per_minute", "many"))

	// Invalid values leave the config untouched.
	require.Error(t, cfg.Set("storage.backend", "redis"))
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
}

func TestKeys_Sorted(t *testing.T) {
	keys := Keys()
	require.NotEmpty(t, keys)
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i])
	}
	assert.Contains(t, keys, "gemini.api_key")
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, FileName)
	require.NoError(t, Save(Default(), path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	ready := make(chan error, 1)
	go func() {
		ready <- Watch(ctx, path, 20*time.Millisecond, func(cfg *Config, err error) {
			if err == nil {
				changes <- cfg
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	cfg := Default()
	cfg.Log.Level = "debug"
	require.NoError(t, Save(cfg, path))

	select {
	case got := <-changes:
		assert.Equal(t, "debug", got.Log.Level)
	case err := <-ready:
		t.Fatalf("Watch returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after config write")
	}

	cancel()
	select {
	case err := <-ready:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}
