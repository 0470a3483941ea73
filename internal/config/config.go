// Package config holds all formos configuration: runtime loop tuning,
// mount defaults and logging control, loaded from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all formos configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Runtime loop tuning
	Runtime RuntimeConfig `yaml:"runtime"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// RuntimeConfig configures the background runtime loop.
type RuntimeConfig struct {
	PollInterval string `yaml:"poll_interval"` // dequeue timeout per poll
	StopTimeout  string `yaml:"stop_timeout"`  // bounded join on stop
	MountSrc     string `yaml:"mount_src"`
	MountDest    string `yaml:"mount_dest"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level      string          `yaml:"level"` // debug, info, warn, error
	Debug      bool            `yaml:"debug"` // development encoder
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		Name:    "formos",
		Version: "0.1.0",
		Runtime: RuntimeConfig{
			PollInterval: "100ms",
			StopTimeout:  "1s",
			MountSrc:     "/form",
			MountDest:    "/mnt/app",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// PollIntervalDuration parses the poll interval, falling back to the
// default on a bad or empty value.
func (r RuntimeConfig) PollIntervalDuration() time.Duration {
	return parseDuration(r.PollInterval, 100*time.Millisecond)
}

// StopTimeoutDuration parses the stop join bound, falling back to the
// default on a bad or empty value.
func (r RuntimeConfig) StopTimeoutDuration() time.Duration {
	return parseDuration(r.StopTimeout, time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Load reads a YAML config file, applies defaults for missing fields and
// the FORMOS_LOG_LEVEL environment override.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv applies environment overrides.
func (c *Config) applyEnv() {
	if lvl := os.Getenv("FORMOS_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
}

// Save writes the config as YAML, creating parent directories as needed.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
