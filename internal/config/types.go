package config

import (
	"fmt"
	"time"
)

// Hook is an external command bound to an operation.
// - Name: label used in logs; defaults to the program name.
// - Run: argv of the command, program first (e.g., [git, pull, --ff-only]).
// - Dir: working directory; empty means the current directory.
// - Env: extra environment variables layered over the process environment.
// - Timeout: optional duration string (e.g., "30s"); empty means no limit.
type Hook struct {
	Name    string            `yaml:"name"`
	Run     []string          `yaml:"run"`
	Dir     string            `yaml:"dir"`
	Env     map[string]string `yaml:"env"`
	Timeout string            `yaml:"timeout"`
}

// Label returns the name used for the hook in logs and errors.
func (h Hook) Label() string {
	if h.Name != "" {
		return h.Name
	}
	if len(h.Run) > 0 {
		return h.Run[0]
	}
	return "<empty>"
}

// TimeoutDuration parses Timeout. Zero means the hook runs without a deadline.
func (h Hook) TimeoutDuration() (time.Duration, error) {
	if h.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(h.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", h.Timeout)
	}
	return d, nil
}

// Config is the parsed syscli configuration file.
// Hooks is keyed by subcommand name ("release", "update").
type Config struct {
	LogLevel string            `yaml:"log_level"`
	Color    string            `yaml:"color"`
	Hooks    map[string][]Hook `yaml:"hooks"`
}

// Default returns the configuration used when no file exists:
// everything logged down to trace, automatic color, no hooks.
func Default() *Config {
	return &Config{
		LogLevel: "trace",
		Color:    "auto",
		Hooks:    map[string][]Hook{},
	}
}
