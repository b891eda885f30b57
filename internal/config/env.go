package config

import (
	"os"
	"strconv"
)

// Environment variable names. Environment values override file values.
const (
	EnvHistoryMaxEntries = "EASEL_HISTORY_MAX_ENTRIES"
	EnvScriptEnabled     = "EASEL_SCRIPT_ENABLED"
	EnvScriptPath        = "EASEL_SCRIPT_PATH"
	EnvUIStatusLine      = "EASEL_UI_STATUS_LINE"
)

// applyEnv overlays environment variables onto a config.
// Unparsable values are ignored in favor of the existing value.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvHistoryMaxEntries); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.MaxEntries = n
		}
	}
	if v, ok := os.LookupEnv(EnvScriptEnabled); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Script.Enabled = b
		}
	}
	if v, ok := os.LookupEnv(EnvScriptPath); ok {
		cfg.Script.Path = v
	}
	if v, ok := os.LookupEnv(EnvUIStatusLine); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.StatusLine = b
		}
	}
}
