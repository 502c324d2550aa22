// Package config defines service configuration and the layered loader.
//
// Conventions:
// - Defaults come from New; Load layers an optional YAML file and MOOD_* env vars on top.
// - Loader errors wrap ErrLoadConfig or ErrInvalidConfig so callers can use errors.Is.
package config

import (
	"github.com/okian/mood2emoji/internal/domain/filter"
	"github.com/okian/mood2emoji/internal/domain/mood"
)

// Default limits.
const (
	DefaultMaxChars = 200
	DefaultAddr     = ":9080"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MaxChars caps the sentence length in characters.
	MaxChars int `koanf:"max_chars"`

	// PositiveThreshold and NegativeThreshold are the strict category cut-offs.
	PositiveThreshold float64 `koanf:"positive_threshold"`
	NegativeThreshold float64 `koanf:"negative_threshold"`

	// BadWords replaces the default filter list.
	BadWords []string `koanf:"bad_words"`

	// Lexicon adds or overrides word polarities.
	Lexicon map[string]float64 `koanf:"lexicon"`

	// TeacherNotesFile points at a markdown file that replaces the built-in
	// teacher mode explanation.
	TeacherNotesFile string `koanf:"teacher_notes_file"`

	// WatchConfig reloads bad_words and thresholds when the config file changes.
	WatchConfig bool `koanf:"watch_config"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              DefaultAddr,
		MaxChars:          DefaultMaxChars,
		PositiveThreshold: mood.DefaultPositiveThreshold,
		NegativeThreshold: mood.DefaultNegativeThreshold,
		BadWords:          append([]string(nil), filter.DefaultWords...),
		Lexicon:           map[string]float64{},
	}
}

// Thresholds returns the configured category cut-offs.
func (c *Config) Thresholds() mood.Thresholds {
	return mood.Thresholds{Positive: c.PositiveThreshold, Negative: c.NegativeThreshold}
}
