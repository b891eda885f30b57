// Package config loads application configuration from a TOML file with
// environment variable overrides, and supports live reload of the file.
//
// Precedence, lowest to highest: built-in defaults, easel.toml, EASEL_*
// environment variables.
package config
