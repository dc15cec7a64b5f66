// Package config manages farout configuration using koanf/v2.
//
// Supports YAML files, environment variables, and CLI flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete farout configuration.
type Config struct {
	Dial    DialConfig    `koanf:"dial"`
	Metrics MetricsConfig `koanf:"metrics"`
	Log     LogConfig     `koanf:"log"`
}

// DialConfig holds the default connection driver parameters. Each cmd/*
// front end may override any of these with its own flags before building
// its dial.Client.
type DialConfig struct {
	// TickRate is the number of dispatch ticks per second.
	TickRate uint `koanf:"tick_rate"`

	// ConnectsPerTick caps how many new connections a single tick may
	// start. Zero means no per-tick cap.
	ConnectsPerTick uint `koanf:"connects_per_tick"`

	// MaxConcurrent caps how many connections may be outstanding at once.
	// Zero means no concurrency cap.
	MaxConcurrent uint `koanf:"max_concurrent"`

	// IOTimeout bounds both connection setup and idle read time.
	IOTimeout time.Duration `koanf:"io_timeout"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g.,
	// ":9100"). Empty disables the metrics server entirely.
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with sensible defaults, matching
// the upstream C utilities' own hardcoded constants: 50 concurrent
// connections, 10 ticks/second, and a 5-second I/O timeout.
func DefaultConfig() *Config {
	return &Config{
		Dial: DialConfig{
			TickRate:        10,
			ConnectsPerTick: 0,
			MaxConcurrent:   50,
			IOTimeout:       5 * time.Second,
		},
		Metrics: MetricsConfig{
			Addr: "",
			Path: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for farout configuration.
// Variables are named FAROUT_<section>_<key>, e.g., FAROUT_DIAL_TICK_RATE.
const envPrefix = "FAROUT_"

// Load reads configuration from a YAML file at path, overlays environment
// variable overrides (FAROUT_ prefix), and merges on top of DefaultConfig().
// Missing fields inherit defaults. An empty path skips the file layer
// entirely, so a cmd/* binary can run config-file-free.
//
// Environment variable mapping:
//
//	FAROUT_DIAL_TICK_RATE          -> dial.tick_rate
//	FAROUT_DIAL_CONNECTS_PER_TICK  -> dial.connects_per_tick
//	FAROUT_DIAL_MAX_CONCURRENT     -> dial.max_concurrent
//	FAROUT_DIAL_IO_TIMEOUT         -> dial.io_timeout
//	FAROUT_METRICS_ADDR            -> metrics.addr
//	FAROUT_METRICS_PATH            -> metrics.path
//	FAROUT_LOG_LEVEL               -> log.level
//	FAROUT_LOG_FORMAT              -> log.format
//
// Uses koanf/v2 with file + env providers and YAML parser.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config from %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// envKeyMapper transforms FAROUT_DIAL_TICK_RATE -> dial.tick_rate. Strips
// the FAROUT_ prefix, lowercases, and replaces the first underscore
// (section separator) with a dot, leaving the rest of the key as-is.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	if idx := strings.IndexByte(s, '_'); idx >= 0 {
		return s[:idx] + "." + s[idx+1:]
	}
	return s
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"dial.tick_rate":         defaults.Dial.TickRate,
		"dial.connects_per_tick": defaults.Dial.ConnectsPerTick,
		"dial.max_concurrent":    defaults.Dial.MaxConcurrent,
		"dial.io_timeout":        defaults.Dial.IOTimeout.String(),
		"metrics.addr":           defaults.Metrics.Addr,
		"metrics.path":           defaults.Metrics.Path,
		"log.level":              defaults.Log.Level,
		"log.format":             defaults.Log.Format,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

// Validation errors.
var (
	// ErrInvalidTickRate indicates the dial tick rate is zero.
	ErrInvalidTickRate = errors.New("dial.tick_rate must be >= 1")

	// ErrInvalidIOTimeout indicates the I/O timeout is negative.
	ErrInvalidIOTimeout = errors.New("dial.io_timeout must be >= 0")

	// ErrInvalidMetricsPath indicates the metrics path does not start with
	// a leading slash.
	ErrInvalidMetricsPath = errors.New("metrics.path must start with /")
)

// Validate checks the configuration for logical errors. Returns the first
// validation error encountered.
func Validate(cfg *Config) error {
	if cfg.Dial.TickRate < 1 {
		return ErrInvalidTickRate
	}

	if cfg.Dial.IOTimeout < 0 {
		return ErrInvalidIOTimeout
	}

	if cfg.Metrics.Addr != "" && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return ErrInvalidMetricsPath
	}

	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
//
// Recognized values: "debug", "info", "warn", "error" (case-insensitive).
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
