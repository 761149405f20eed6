// Package config loads, normalizes, and validates cinescout configuration.
//
// Configuration is TOML on disk with a Default() baseline; secrets may also
// arrive through environment variables (TMDB_API_KEY, CINESCOUT_LLM_API_KEY)
// which take precedence over file values. Load resolves the config path,
// decodes the file when present, applies env overrides, then normalizes and
// validates the result so the rest of the program never sees a half-formed
// config.
package config
