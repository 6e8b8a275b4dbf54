// Package config loads, validates, and provides access to tally configuration.
//
// Configuration is stored in TOML format at ~/.config/tally/config.toml by
// default, with tally.toml in the working directory as a fallback. Load applies
// repository defaults, decodes the file when present, normalizes values
// (path expansion, environment fallbacks for credentials), and validates the
// result before returning it.
package config
