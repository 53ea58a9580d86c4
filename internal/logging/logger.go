// Package logging wires zerolog output for calliope.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/calliope-player/calliope/internal/config"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	return newWithOutput(cfg, os.Stderr)
}

func newWithOutput(cfg Config, out io.Writer) zerolog.Logger {
	var output = out

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// NewFromAppConfig builds a logger from the application logging config,
// attaching a rotating file writer when file logging is enabled.
func NewFromAppConfig(appCfg *config.LoggingConfig) (zerolog.Logger, error) {
	cfg := DefaultConfig()
	cfg.Level = parseLevel(appCfg.Level)
	if appCfg.Format != "" {
		cfg.Format = appCfg.Format
	}

	if !appCfg.EnableFileLog {
		return New(cfg), nil
	}

	rotator, err := NewLogRotator(appCfg.LogDir, appCfg.MaxSize, appCfg.MaxBackups, appCfg.MaxAge, appCfg.Compress)
	if err != nil {
		return zerolog.Nop(), err
	}

	return newWithOutput(cfg, io.MultiWriter(os.Stderr, rotator)), nil
}

// NewFromEnv creates a logger based on environment variables
// CALLIOPE_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// CALLIOPE_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	cfg := DefaultConfig()

	if level := os.Getenv("CALLIOPE_LOG_LEVEL"); level != "" {
		cfg.Level = parseLevel(level)
	}
	if format := os.Getenv("CALLIOPE_LOG_FORMAT"); format != "" {
		cfg.Format = format
	}

	return New(cfg)
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
