// Package config loads the optional operational configuration file. The file
// tunes ambient behavior only (logging, probe timeout, color handling);
// prompt layout and palette are fixed and deliberately absent here.
//
// Configuration is best effort: a missing, unreadable, or invalid file
// leaves the defaults in place. A prompt that refuses to print because a
// config file has a typo would take the whole shell down with it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Error definitions for the config package
var (
	// ErrInvalidLogLevel is returned when an invalid log level is provided
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidColorMode is returned when an invalid color mode is provided
	ErrInvalidColorMode = errors.New("invalid color mode")

	// ErrInvalidGitTimeout is returned when the git probe timeout is negative
	ErrInvalidGitTimeout = errors.New("git timeout must not be negative")
)

// LogLevel represents the logging level for the application.
type LogLevel string

const (
	// LogLevelDebug enables debug-level logging
	LogLevelDebug LogLevel = "debug"

	// LogLevelInfo enables info-level logging (default)
	LogLevelInfo LogLevel = "info"

	// LogLevelWarn enables warning-level logging
	LogLevelWarn LogLevel = "warn"

	// LogLevelError enables error-level logging only
	LogLevelError LogLevel = "error"
)

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// This enables validation during TOML parsing.
func (l *LogLevel) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	switch LogLevel(s) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		*l = LogLevel(s)
		return nil
	case "":
		// Empty string defaults to info level
		*l = LogLevelInfo
		return nil
	default:
		return fmt.Errorf("%w: %q (must be one of: debug, info, warn, error)", ErrInvalidLogLevel, string(text))
	}
}

// ToSlogLevel converts LogLevel to slog.Level for use with the slog package.
func (l LogLevel) ToSlogLevel() (slog.Level, error) {
	switch strings.ToLower(string(l)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, l)
	}
}

// String returns the string representation of LogLevel.
func (l LogLevel) String() string {
	return string(l)
}

// ColorMode controls when prompt output carries ANSI color sequences.
type ColorMode string

const (
	// ColorModeAuto colorizes when the terminal and environment allow it (default)
	ColorModeAuto ColorMode = "auto"

	// ColorModeAlways colorizes unconditionally
	ColorModeAlways ColorMode = "always"

	// ColorModeNever disables colors entirely
	ColorModeNever ColorMode = "never"
)

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// This enables validation during TOML parsing.
func (m *ColorMode) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	switch ColorMode(s) {
	case ColorModeAuto, ColorModeAlways, ColorModeNever:
		*m = ColorMode(s)
		return nil
	case "":
		// Empty string defaults to auto
		*m = ColorModeAuto
		return nil
	default:
		return fmt.Errorf("%w: %q (must be one of: auto, always, never)", ErrInvalidColorMode, string(text))
	}
}

// String returns the string representation of ColorMode.
func (m ColorMode) String() string {
	return string(m)
}

// Config holds the operational settings for a prompt invocation.
type Config struct {
	// LogLevel sets the minimum level written to the log file.
	LogLevel LogLevel `toml:"log_level"`

	// LogFile receives JSON log records. Empty disables logging; the
	// prompt stream must never carry log noise.
	LogFile string `toml:"log_file"`

	// Color selects when output is colorized: auto, always, or never.
	Color ColorMode `toml:"color"`

	// GitTimeoutMS bounds the git status probe in milliseconds.
	GitTimeoutMS int `toml:"git_timeout_ms"`
}

// Default values for configuration fields
const (
	DefaultLogLevel     = LogLevelInfo
	DefaultColorMode    = ColorModeAuto
	DefaultGitTimeoutMS = 2000
)

// Default returns a configuration with every field at its default value.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields with their default values.
func ApplyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Color == "" {
		cfg.Color = DefaultColorMode
	}
	if cfg.GitTimeoutMS == 0 {
		cfg.GitTimeoutMS = DefaultGitTimeoutMS
	}
}

// GitTimeout returns the git probe budget as a duration.
func (c *Config) GitTimeout() time.Duration {
	return time.Duration(c.GitTimeoutMS) * time.Millisecond
}
