// Package config provides configuration loading for ask-bayes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/ask-bayes/internal/store"
)

// FileName is the config file read from the config directory.
const FileName = "config.yaml"

// Dir returns the ask-bayes directory, respecting ASK_BAYES_HOME.
// Defaults to ~/.ask-bayes.
func Dir() (string, error) {
	if dir := os.Getenv("ASK_BAYES_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".ask-bayes"), nil
}

// Config holds user settings. Flags override these values.
type Config struct {
	Backend  string `yaml:"backend"   env:"ASK_BAYES_BACKEND"`
	DBPath   string `yaml:"db_path"   env:"ASK_BAYES_DB"`
	Output   string `yaml:"output"    env:"ASK_BAYES_OUTPUT"`
	LogLevel string `yaml:"log_level" env:"ASK_BAYES_LOG_LEVEL"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Backend:  "sqlite",
		Output:   "table",
		LogLevel: "warn",
	}
}

// Load reads {dir}/config.yaml on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// StorePath returns the configured database path, or the backend's default
// file under dir.
func (c *Config) StorePath(dir string, backend store.Backend) string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(dir, backend.DefaultFile())
}
