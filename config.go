package doccookie

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	errInvalidLogLevel  = errors.New("invalid log.level value")
	errInvalidLogFormat = errors.New("invalid log.format value")
)

// Config holds the default cookie attributes and logging setup of a
// Manager, usually read from a YAML file:
//
//	defaults:
//	  path: /
//	  expires_days: 30
//	  secure: true
//	  same_site: lax
//	  domain: example.com
//	size_limit: 4096
//	log:
//	  level: info
//	  format: console
type Config struct {
	Defaults  DefaultsConfig `yaml:"defaults"`
	SizeLimit int            `yaml:"size_limit"`
	Log       LogConfig      `yaml:"log"`
}

// DefaultsConfig is the YAML form of the default Options.
type DefaultsConfig struct {
	Path        string  `yaml:"path"`
	ExpiresDays float64 `yaml:"expires_days"`
	Secure      bool    `yaml:"secure"`
	SameSite    string  `yaml:"same_site"`
	Domain      string  `yaml:"domain"`
}

// LogConfig selects the log level ("debug", "info", "warn", "error") and
// format ("console" or "json").
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		SizeLimit: maxNamePlusValue,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig. An
// empty path or a missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		log.Info().
			Str("path", path).
			Msg("No YAML configuration file found, skipping")

		return cfg, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- Only loading a config file
	if err != nil {
		return cfg, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}

	if _, err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Msg("Successfully loaded configuration")

	return cfg, nil
}

// validate checks the whole configuration and returns the default Options
// it describes.
func (cfg Config) validate() (Options, error) {
	if _, err := cfg.level(); err != nil {
		return Options{}, err
	}

	switch cfg.Log.Format {
	case "", "console", "json":
	default:
		return Options{}, fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	return cfg.Options()
}

func (cfg Config) level() (zerolog.Level, error) {
	switch cfg.Log.Level {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}
}

// Options converts the configured defaults to Options.
//
// Returns:
//   - Options: The default attributes.
//   - error: A ConfigurationError if the defaults are inconsistent.
func (cfg Config) Options() (Options, error) {
	sameSite, err := StringToSameSite(cfg.Defaults.SameSite)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Path:     cfg.Defaults.Path,
		Expires:  ExpiresIn(cfg.Defaults.ExpiresDays),
		Secure:   cfg.Defaults.Secure,
		SameSite: sameSite,
		Domain:   cfg.Defaults.Domain,
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}

	return opts, nil
}

// Logger builds a logger writing to f at the configured level. The console
// format is colored only when f is a terminal.
func (cfg Config) Logger(f *os.File) zerolog.Logger {
	level, err := cfg.level()
	if err != nil {
		level = zerolog.InfoLevel
	}

	var w io.Writer = f
	if cfg.Log.Format != "json" {
		w = ConsoleWriter(f)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// ConsoleWriter returns a writer for zerolog that has NoColor:isTerminal(f).
func ConsoleWriter(f *os.File) io.Writer {
	return zerolog.ConsoleWriter{Out: f, NoColor: !isTerminal(f), TimeFormat: time.DateTime}
}

// isTerminal returns true if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}

// NewManagerFromConfig creates a Manager over store with the defaults,
// size limit, and logger described by cfg. Logs go to stderr.
func NewManagerFromConfig(store Store, cfg Config) (*Manager, error) {
	defaults, err := cfg.validate()
	if err != nil {
		return nil, err
	}

	return NewManager(store).
		WithDefaults(defaults).
		WithSizeLimit(cfg.SizeLimit).
		WithLogger(cfg.Logger(os.Stderr)), nil
}
