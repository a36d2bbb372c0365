// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for chatview.
//
// Configuration is read from TOML with sensible defaults, environment
// variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.chatview/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/chatview/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chatview configuration.
type Config struct {
	// UI configuration
	UI UIConfig `toml:"ui"`

	// Log configuration
	Log LogConfig `toml:"log"`
}

// UIConfig contains display settings.
type UIConfig struct {
	// Theme selects the palette: "auto" (detect), "dark" or "light".
	Theme string `toml:"theme"`
	// Locale is a BCP 47 tag ("de", "zh-Hans"). Empty means use LANG.
	Locale string `toml:"locale"`
	// Sound rings the terminal bell whenever a message's content changes.
	Sound bool `toml:"sound"`
	// WordWrap is the maximum markdown wrap width; 0 follows the window.
	WordWrap int `toml:"word_wrap"`
	// CodeStyle is the chroma style used for code blocks.
	CodeStyle string `toml:"code_style"`
	// LineNumbers draws a line-number gutter in code blocks.
	LineNumbers bool `toml:"line_numbers"`
	// PulseFPS is the frame rate of the newest-message pulse.
	PulseFPS int `toml:"pulse_fps"`
	// PulseEasing shapes the pulse: "linear", "ease-in-out" or "ease-out".
	PulseEasing string `toml:"pulse_easing"`
}

// LogConfig contains logging settings. While the TUI owns the terminal, logs
// can only go to a file.
type LogConfig struct {
	Enabled bool   `toml:"enabled"`
	File    string `toml:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Theme:       "auto",
			Locale:      "",
			Sound:       true,
			WordWrap:    0,
			CodeStyle:   "monokai",
			LineNumbers: true,
			PulseFPS:    20,
			PulseEasing: "linear",
		},
		Log: LogConfig{
			Enabled: false,
			File:    "",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns ~/.chatview.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".chatview"), nil
}

// ConfigPathTOML returns the path of the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultLogPath returns the log file used when logging is enabled without
// an explicit file.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chatview.log"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load loads the configuration from the default location, falling back to
// defaults when no file exists.
func Load() (*Config, error) {
	path, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific TOML file. Keys missing
// from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes the TOML file at path into cfg.
func LoadTOML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	return nil
}

// ErrUnknownKey is returned when a config file contains keys chatview does not know.
var ErrUnknownKey = errors.New("unknown config key")

// WriteTOML encodes cfg as TOML to w.
func WriteTOML(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// SaveTOML writes cfg to path atomically, creating the parent directory.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := WriteTOML(&buf, cfg); err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	if c.UI.WordWrap < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.word_wrap",
			Message: "must be 0 (follow window) or positive",
		})
	}

	if c.UI.PulseFPS < 1 || c.UI.PulseFPS > 60 {
		errs = append(errs, ValidationError{
			Field:   "ui.pulse_fps",
			Message: fmt.Sprintf("%d out of range 1-60", c.UI.PulseFPS),
		})
	}

	switch c.UI.PulseEasing {
	case "linear", "ease-in-out", "ease-out":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.pulse_easing",
			Message: fmt.Sprintf("invalid easing '%s', must be one of: linear, ease-in-out, ease-out", c.UI.PulseEasing),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero values that have no meaningful zero.
func (c *Config) SetDefaults() {
	if c.UI.Theme == "" {
		c.UI.Theme = "auto"
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	if c.UI.CodeStyle == "" {
		c.UI.CodeStyle = "monokai"
	}
	if c.UI.PulseFPS == 0 {
		c.UI.PulseFPS = 20
	}
	if c.UI.PulseEasing == "" {
		c.UI.PulseEasing = "linear"
	}
	c.UI.PulseEasing = strings.ToLower(c.UI.PulseEasing)
	if c.Log.Enabled && c.Log.File == "" {
		if p, err := DefaultLogPath(); err == nil {
			c.Log.File = p
		}
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies CHATVIEW_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	// CHATVIEW_THEME
	if theme := os.Getenv("CHATVIEW_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	// CHATVIEW_LOCALE
	if locale := os.Getenv("CHATVIEW_LOCALE"); locale != "" {
		c.UI.Locale = locale
	}

	// CHATVIEW_SOUND
	if sound := os.Getenv("CHATVIEW_SOUND"); sound != "" {
		c.UI.Sound = parseBool(sound)
	}

	// CHATVIEW_WORD_WRAP
	if wrap := os.Getenv("CHATVIEW_WORD_WRAP"); wrap != "" {
		if n, err := strconv.Atoi(wrap); err == nil {
			c.UI.WordWrap = n
		}
	}

	// CHATVIEW_CODE_STYLE
	if style := os.Getenv("CHATVIEW_CODE_STYLE"); style != "" {
		c.UI.CodeStyle = style
	}

	// CHATVIEW_LOG_FILE enables logging to the given file
	if file := os.Getenv("CHATVIEW_LOG_FILE"); file != "" {
		c.Log.Enabled = true
		c.Log.File = file
	}
}

func parseBool(s string) bool {
	return s == "1" || strings.EqualFold(s, "true") || strings.EqualFold(s, "yes") || strings.EqualFold(s, "on")
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first use.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reads the config file at path, or the default location when
// path is empty, applies override and installs the result as the global
// configuration. On error the global configuration is left unchanged.
func ReloadGlobal(path string, override func(*Config)) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if path != "" {
		cfg, err = LoadFromPath(path)
	} else {
		cfg, err = Load()
	}
	if err != nil {
		return nil, err
	}

	if override != nil {
		override(cfg)
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	SetGlobal(cfg)
	return cfg, nil
}

// SetGlobal replaces the global configuration.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting clears the global configuration.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
