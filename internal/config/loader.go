package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvConfigPath names the environment variable that overrides the
// configuration file location.
const EnvConfigPath = "XPROMPT_CONFIG"

// configSubPath is the location of the config file below the XDG config root.
const configSubPath = "xprompt/config.toml"

// Loader handles loading and validating configurations
type Loader struct{}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses and validates configuration from TOML content.
func (l *Loader) Load(content []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", restoreSentinel(err))
	}

	ApplyDefaults(&cfg)

	if cfg.GitTimeoutMS < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGitTimeout, cfg.GitTimeoutMS)
	}

	return &cfg, nil
}

// restoreSentinel recovers a validation sentinel from a decode error.
// go-toml reports UnmarshalText failures through a DecodeError that keeps
// the inner message but drops the wrap chain, so without this errors.Is
// stops matching once validation runs inside the decoder.
func restoreSentinel(err error) error {
	for _, sentinel := range []error{ErrInvalidLogLevel, ErrInvalidColorMode} {
		if strings.Contains(err.Error(), sentinel.Error()) {
			return fmt.Errorf("%w: %s", sentinel, err)
		}
	}
	return err
}

// LoadFile reads and parses the configuration file at path.
func (l *Loader) LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return l.Load(content)
}

// ResolvePath returns the configuration file location: $XPROMPT_CONFIG when
// set, else $XDG_CONFIG_HOME/xprompt/config.toml, else
// ~/.config/xprompt/config.toml. Returns the empty string when no candidate
// path can be built.
func ResolvePath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, configSubPath)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", configSubPath)
	}
	return ""
}

// LoadSystem loads the configuration from the resolved path, degrading to
// defaults when the file is absent, unreadable, or invalid. The returned
// error describes what went wrong so the caller can log it once logging is
// up; the returned Config is always usable.
func LoadSystem() (*Config, error) {
	path := ResolvePath()
	if path == "" {
		return Default(), nil
	}

	cfg, err := NewLoader().LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No config file is the normal case, not a problem
			return Default(), nil
		}
		return Default(), err
	}
	return cfg, nil
}
