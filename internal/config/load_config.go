package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"syscli/internal/dispatch"
	"syscli/internal/logger"
)

const (
	// EnvConfig overrides the configuration file path.
	EnvConfig = "SYSCLI_CONFIG"
	// EnvLogLevel overrides log_level from the file.
	EnvLogLevel = "SYSCLI_LOG"
	// EnvNoColor disables color when set to any non-empty value (https://no-color.org).
	EnvNoColor = "NO_COLOR"
)

// Path returns the configuration file location: $SYSCLI_CONFIG when set,
// otherwise syscli/config.yaml under the user config directory.
// It returns "" when neither can be determined.
func Path(getenv func(string) string) string {
	if p := getenv(EnvConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "syscli", "config.yaml")
}

// LoadConfig reads and validates the YAML file at path.
// A missing file (or an empty path) yields Default(); unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	if cfg.Hooks == nil {
		cfg.Hooks = map[string][]Hook{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve locates and loads the configuration, then applies environment overrides.
func Resolve(getenv func(string) string) (*Config, error) {
	cfg, err := LoadConfig(Path(getenv))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv layers SYSCLI_LOG and NO_COLOR over the values read from the file.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if lvl := getenv(EnvLogLevel); lvl != "" {
		c.LogLevel = lvl
	}
	if getenv(EnvNoColor) != "" {
		c.Color = string(logger.ColorNever)
	}
}

// Validate checks log level, color mode and every hook.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := logger.ParseColorMode(c.Color); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	for op, hooks := range c.Hooks {
		if _, err := dispatch.ParseOperation(op); err != nil {
			return fmt.Errorf("hooks: %w", err)
		}
		for i, h := range hooks {
			if len(h.Run) == 0 || h.Run[0] == "" {
				return fmt.Errorf("hooks.%s[%d]: run must name a command", op, i)
			}
			if _, err := h.TimeoutDuration(); err != nil {
				return fmt.Errorf("hooks.%s[%d] (%s): %w", op, i, h.Label(), err)
			}
		}
	}
	return nil
}

// Level returns the parsed minimum log level. Call Validate first.
func (c *Config) Level() logger.Level {
	lvl, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelTrace
	}
	return lvl
}

// ColorMode returns the parsed color mode. Call Validate first.
func (c *Config) ColorMode() logger.ColorMode {
	mode, err := logger.ParseColorMode(c.Color)
	if err != nil {
		return logger.ColorAuto
	}
	return mode
}

// HooksFor returns the hooks bound to op, in file order.
func (c *Config) HooksFor(op dispatch.Operation) []Hook {
	return c.Hooks[op.String()]
}
