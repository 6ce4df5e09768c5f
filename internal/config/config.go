// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/geminipad/internal/logger"
	"github.com/jeranaias/geminipad/internal/model"
	"github.com/jeranaias/geminipad/internal/storage"
	"github.com/jeranaias/geminipad/internal/util"
)

// FileName is the config file inside Dir.
const FileName = "config.toml"

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the complete configuration.
type Config struct {
	Gemini  GeminiConfig  `toml:"gemini"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

// GeminiConfig configures the API client.
type GeminiConfig struct {
	// APIKey seeds the settings record on first run.
	APIKey string `toml:"api_key"`
	// Model is the default model for a fresh settings record.
	Model string `toml:"model"`
	// BaseURL is the REST endpoint.
	BaseURL string `toml:"base_url"`
	// RequestsPerMinute throttles API calls; 0 disables throttling.
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// StorageConfig selects where conversations, files and settings live.
type StorageConfig struct {
	Backend string `toml:"backend"` // json, sqlite, memory
	Dir     string `toml:"dir"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
	File   string `toml:"file"`
}

// UIConfig holds terminal options.
type UIConfig struct {
	AltScreen bool `toml:"alt_screen"`
	Mouse     bool `toml:"mouse"`
}

// =============================================================================
// DEFAULTS AND PATHS
// =============================================================================

// Dir returns the geminipad home directory.
func Dir() (string, error) {
	if dir := os.Getenv("GEMINIPAD_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".geminipad"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	dir, err := Dir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), "geminipad")
	}
	return &Config{
		Gemini: GeminiConfig{
			Model:   string(model.DefaultModel),
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		},
		Storage: StorageConfig{
			Backend: string(storage.KindJSON),
			Dir:     filepath.Join(dir, "data"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(dir, "geminipad.log"),
		},
		UI: UIConfig{
			AltScreen: true,
			Mouse:     true,
		},
	}
}

// fillDefaults restores values a config file explicitly blanked.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = defaults.Gemini.Model
	}
	if cfg.Gemini.BaseURL == "" {
		cfg.Gemini.BaseURL = defaults.Gemini.BaseURL
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = defaults.Storage.Backend
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = defaults.Storage.Dir
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
}

// =============================================================================
// LOAD AND SAVE
// =============================================================================

// Load reads path (the default path when empty), applies environment
// overrides and validates the result. A missing file yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	cfg.Storage.Dir = expandHome(cfg.Storage.Dir)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadTOML decodes path on top of cfg. Keys absent from the file keep the
// values already in cfg.
func LoadTOML(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger.WithField("keys", strings.Join(keys, ",")).Warnf("unknown config keys ignored")
	}
	return nil
}

// Save writes cfg to path with owner-only permissions.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# geminipad configuration\n")
	buf.WriteString("# The API key here only seeds the Settings panel on first run.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnvOverrides replaces fields set through the environment.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINIPAD_MODEL"); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv("GEMINIPAD_BASE_URL"); v != "" {
		c.Gemini.BaseURL = v
	}
	if v := os.Getenv("GEMINIPAD_STORE"); v != "" {
		c.Storage.Backend = v
	}
	if v := os.Getenv("GEMINIPAD_DATA_DIR"); v != "" {
		c.Storage.Dir = v
	}
	if v := os.Getenv("GEMINIPAD_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid field.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if !model.ModelName(c.Gemini.Model).Valid() {
		errs = append(errs, ValidationError{"gemini.model", fmt.Sprintf("unknown model %q", c.Gemini.Model)})
	}
	if u, err := url.Parse(c.Gemini.BaseURL); err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		errs = append(errs, ValidationError{"gemini.base_url", fmt.Sprintf("not an http(s) URL: %q", c.Gemini.BaseURL)})
	}
	if c.Gemini.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{"gemini.requests_per_minute", "must not be negative"})
	}
	if _, err := storage.ParseKind(c.Storage.Backend); err != nil {
		errs = append(errs, ValidationError{"storage.backend", err.Error()})
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, ValidationError{"log.level", err.Error()})
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		errs = append(errs, ValidationError{"log.format", fmt.Sprintf("want text or json, got %q", c.Log.Format)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// KEY ACCESS
// =============================================================================

// ErrUnknownKey is returned by Get and Set for keys not in Keys.
var ErrUnknownKey = errors.New("unknown config key")

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringField(p func(*Config) *string) field {
	return field{
		get: func(c *Config) string { return *p(c) },
		set: func(c *Config, v string) error { *p(c) = v; return nil },
	}
}

func boolField(p func(*Config) *bool) field {
	return field{
		get: func(c *Config) string { return strconv.FormatBool(*p(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("want true or false, got %q", v)
			}
			*p(c) = b
			return nil
		},
	}
}

var fields = map[string]field{
	"gemini.api_key":  stringField(func(c *Config) *string { return &c.Gemini.APIKey }),
	"gemini.model":    stringField(func(c *Config) *string { return &c.Gemini.Model }),
	"gemini.base_url": stringField(func(c *Config) *string { return &c.Gemini.BaseURL }),
	"gemini.requests_per_minute": {
		get: func(c *Config) string { return strconv.Itoa(c.Gemini.RequestsPerMinute) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("want an integer, got %q", v)
			}
			c.Gemini.RequestsPerMinute = n
			return nil
		},
	},
	"storage.backend": stringField(func(c *Config) *string { return &c.Storage.Backend }),
	"storage.dir":     stringField(func(c *Config) *string { return &c.Storage.Dir }),
	"log.level":       stringField(func(c *Config) *string { return &c.Log.Level }),
	"log.format":      stringField(func(c *Config) *string { return &c.Log.Format }),
	"log.file":        stringField(func(c *Config) *string { return &c.Log.File }),
	"ui.alt_screen":   boolField(func(c *Config) *bool { return &c.UI.AltScreen }),
	"ui.mouse":        boolField(func(c *Config) *bool { return &c.UI.Mouse }),
}

// Keys lists the dotted keys accepted by Get and Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value at a dotted key such as "storage.backend".
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return f.get(c), nil
}

// Set assigns a dotted key and revalidates. On error c is left unchanged.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	next := *c
	if err := f.set(&next, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}
