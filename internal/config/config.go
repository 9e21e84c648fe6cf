// Package config loads service configuration.
//
// Values are layered, lowest precedence first:
//  1. defaults (Default)
//  2. a YAML file named by PREP_CONFIG, if set
//  3. PREP_* environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PREP_"

// FileEnvVar names the environment variable holding the optional YAML file path.
const FileEnvVar = EnvPrefix + "CONFIG"

// Store backends
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Sentinel error kinds for this package.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Config is the service configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Store selects the event storage backend: postgres or sqlite.
	Store string `koanf:"store"`

	// DatabaseURL is the PostgreSQL connection URL, used when Store is postgres.
	DatabaseURL string `koanf:"database_url"`

	// SQLitePath is the database file, used when Store is sqlite.
	SQLitePath string `koanf:"sqlite_path"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// FeedbackLogLimit caps the activity feed of a progress summary.
	FeedbackLogLimit int `koanf:"feedback_log_limit"`

	// HistoryLimit caps history endpoints.
	HistoryLimit int `koanf:"history_limit"`

	// CORSOrigins is a comma-separated list of allowed origins; "*" allows any.
	CORSOrigins string `koanf:"cors_origins"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Addr:             ":8080",
		Store:            StorePostgres,
		SQLitePath:       "data/interview-coach.db",
		LogLevel:         "info",
		LogFormat:        "text",
		FeedbackLogLimit: 8,
		HistoryLimit:     20,
	}
}

// Override sets one key above every other source, e.g. from a command-line flag.
type Override struct {
	Key   string
	Value any
}

// Load builds a Config from defaults, the optional file, the environment and
// overrides. DATABASE_URL is honored as a fallback for database_url.
func Load(overrides ...Override) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(FileEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PREP_DATABASE_URL -> database_url; keys stay flat to match the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrLoadConfig, err)
	}
	for _, o := range overrides {
		if err := k.Set(o.Key, o.Value); err != nil {
			return nil, fmt.Errorf("%w: override %s: %w", ErrLoadConfig, o.Key, err)
		}
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration and canonicalizes enum values.
func (c *Config) normalize() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: database_url is required for the postgres store", ErrInvalidConfig)
		}
	case StoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("%w: sqlite_path is required for the sqlite store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.FeedbackLogLimit < 1 {
		return fmt.Errorf("%w: feedback_log_limit must be at least 1, got %d", ErrInvalidConfig, c.FeedbackLogLimit)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("%w: history_limit must be at least 1, got %d", ErrInvalidConfig, c.HistoryLimit)
	}
	return nil
}

// AllowedOrigins splits CORSOrigins into trimmed, non-empty origins.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
