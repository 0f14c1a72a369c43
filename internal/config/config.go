package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FOLIO_"

type Config struct {
	// StateDir holds the preference store (state.sqlite or prefs.json).
	StateDir string `koanf:"state_dir" yaml:"state_dir"`
	// Backend is sqlite, file or memory.
	Backend string `koanf:"backend" yaml:"backend"`
	// Content optionally replaces the built-in portfolio document.
	Content string `koanf:"content" yaml:"content,omitempty"`
	// DebugLog is a file the TUI writes structured logs to.
	DebugLog string `koanf:"debug_log" yaml:"debug_log,omitempty"`
	LogLevel string `koanf:"log_level" yaml:"log_level"`
	Format   string `koanf:"format" yaml:"format"`

	ServeAddr string `koanf:"serve_addr" yaml:"serve_addr"`
	GinMode   string `koanf:"gin_mode" yaml:"gin_mode"`
}

// Dir is ~/.folio unless FOLIO_CONFIG_DIR is set (tests use the override to
// stay out of $HOME).
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(envPrefix + "CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".folio"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Default() *Config {
	dir, err := Dir()
	if err != nil {
		dir = ".folio"
	}
	return &Config{
		StateDir:  dir,
		Backend:   "sqlite",
		LogLevel:  "info",
		Format:    "json",
		ServeAddr: ":8080",
		GinMode:   "release",
	}
}

// Load layers defaults, the YAML file at path (if present) and FOLIO_*
// environment variables, in that order. An empty path means Path().
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	k := koanf.New(".")
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// FOLIO_STATE_DIR -> state_dir, FOLIO_SERVE_ADDR -> serve_addr, ...
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

var validBackends = map[string]bool{"sqlite": true, "file": true, "memory": true}

var validFormats = map[string]bool{"json": true, "yaml": true, "text": true}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func (c *Config) Validate() error {
	if !validBackends[strings.ToLower(c.Backend)] {
		return fmt.Errorf("invalid backend %q: must be one of sqlite, file, memory", c.Backend)
	}
	if !validFormats[strings.ToLower(c.Format)] {
		return fmt.Errorf("invalid format %q: must be one of json, yaml, text", c.Format)
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if strings.TrimSpace(c.StateDir) == "" {
		return fmt.Errorf("state_dir is required")
	}
	return nil
}
