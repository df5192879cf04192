// Package config provides configuration management for the LeapFrame CLI.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

import (
	"context"
	"log/slog"
)

// Config file names looked up in the working directory.
const (
	ConfigFileName    = "leapframe.yaml"
	ConfigFileNameAlt = "leapframe.yml"
)

// Defaults.
const (
	DefaultOutput   = "table"
	DefaultLogLevel = "info"
)

// Config holds the CLI configuration.
type Config struct {
	// Catalog is the catalog URL, e.g. parquet:///data/tables or
	// duckdb:///path/analytics.db.
	Catalog string `koanf:"catalog"`
	// Output selects the rendering format: table, json or csv.
	Output string `koanf:"output"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
}

type configKey struct{}

type loggerKey struct{}

// WithConfig stores the config in a context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from a command context, or defaults.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{Output: DefaultOutput, LogLevel: DefaultLogLevel}
}

// WithLogger stores the logger in a context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom retrieves the logger from a command context, falling back to a
// discard logger.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
