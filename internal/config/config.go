package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Common errors for configuration handling.
var (
	// ErrInvalidValue is returned when a configuration value is out of range.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Config is the application configuration.
type Config struct {
	History HistoryConfig `toml:"history"`
	Script  ScriptConfig  `toml:"script"`
	UI      UIConfig      `toml:"ui"`
}

// HistoryConfig configures the history engine.
type HistoryConfig struct {
	// MaxEntries caps the undo stack; 0 means unlimited.
	MaxEntries int `toml:"max_entries"`
}

// ScriptConfig configures Lua history hooks.
type ScriptConfig struct {
	// Enabled turns scripting on.
	Enabled bool `toml:"enabled"`

	// Path is the Lua hook file to load.
	Path string `toml:"path"`
}

// UIConfig configures the terminal front end.
type UIConfig struct {
	// StatusLine toggles the status line at the bottom of the screen.
	StatusLine bool `toml:"status_line"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxEntries: 0},
		Script:  ScriptConfig{},
		UI:      UIConfig{StatusLine: true},
	}
}

// Load reads configuration from a TOML file, then applies environment
// overrides. A missing file is not an error; defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, &ParseError{Path: path, Err: err}
			}
		case os.IsNotExist(err):
			// File doesn't exist, not an error.
		default:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks configuration values.
func (c Config) Validate() error {
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("%w: history.max_entries must be >= 0, got %d", ErrInvalidValue, c.History.MaxEntries)
	}
	if c.Script.Enabled && c.Script.Path == "" {
		return fmt.Errorf("%w: script.path must be set when script.enabled is true", ErrInvalidValue)
	}
	return nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
