// Package config loads dotman's own settings.
//
// Settings are layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file at $XDG_CONFIG_HOME/dotman/config.toml
//  3. DOTMAN_ environment variables (DOTMAN_OUTPUT_COLOR -> output.color)
//  4. overrides from command-line flags
//
// This is tool configuration only. The list of managed files lives in the
// repository manifest (see pkg/manifest).
package config
