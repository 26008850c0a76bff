package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "DOTMAN_"

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds the resolved tool configuration
type Config struct {
	Repository Repository `koanf:"repository" json:"repository" yaml:"repository"`
	Output     Output     `koanf:"output" json:"output" yaml:"output"`
}

// Repository controls where the dotfiles repository is looked up
type Repository struct {
	// Name is the directory under $HOME used as the default repository
	Name string `koanf:"name" json:"name" yaml:"name"`
	// Root, when set, overrides the recorded repository location
	Root string `koanf:"root" json:"root" yaml:"root"`
}

// Output controls rendering
type Output struct {
	Color  string `koanf:"color" json:"color" yaml:"color"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// LoadOptions selects the sources Load reads
type LoadOptions struct {
	// File is the user config file. Empty means paths.ConfigFilePath().
	// A missing file is not an error.
	File string

	// Overrides are flat koanf keys (e.g. "output.color") applied last
	Overrides map[string]interface{}
}

// Load builds the configuration from defaults, the user file, the
// environment and overrides
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default configuration")
	}

	// 2. User file
	path := opts.File
	if path == "" {
		path = paths.ConfigFilePath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user config")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded defaults only
func Default() *Config {
	k := koanf.New(".")
	var cfg Config
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err == nil {
		_ = k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"})
	}
	return &cfg
}

// Validate checks enumerated values
func (c *Config) Validate() error {
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Newf(errors.ErrConfigLoad, "invalid output.color %q (want auto, always or never)", c.Output.Color).
			WithDetail("key", "output.color")
	}

	if !ValidFormat(c.Output.Format) {
		return errors.Newf(errors.ErrConfigLoad, "invalid output.format %q (want text, json or yaml)", c.Output.Format).
			WithDetail("key", "output.format")
	}

	if strings.ContainsRune(c.Repository.Name, os.PathSeparator) {
		return errors.Newf(errors.ErrConfigLoad, "repository.name %q must be a single directory name", c.Repository.Name).
			WithDetail("key", "repository.name")
	}
	return nil
}

// ValidFormat reports whether format is a known list format
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// envKey maps DOTMAN_OUTPUT_COLOR to output.color
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}
