// Package config loads the optional tool-level configuration file. Settings
// here supply defaults for flags the user did not pass; environment
// variables override the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the per-project configuration file name.
const FileName = ".ember.yaml"

// Config holds all ember configuration.
type Config struct {
	// Build supplies defaults for the build command.
	Build BuildConfig `yaml:"build"`

	// Prefix overrides the install prefix, like the EMBER_PREFIX
	// environment variable.
	Prefix string `yaml:"prefix"`

	// Logging configures diagnostic output.
	Logging LoggingConfig `yaml:"logging"`
}

// BuildConfig supplies build-command defaults.
type BuildConfig struct {
	// Generator is the default CMake generator name.
	Generator string `yaml:"generator"`

	// Release selects release (RelWithDebInfo) builds by default.
	Release bool `yaml:"release"`

	// ExtraArgs are appended to every build-step invocation.
	ExtraArgs []string `yaml:"extra_args"`
}

// LoggingConfig configures diagnostic output.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			Release: true,
		},
	}
}

// Load reads FileName from dir, falling back to defaults when the file does
// not exist. Environment overrides are applied in both cases.
func Load(dir string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if p := os.Getenv("EMBER_PREFIX"); p != "" {
		c.Prefix = p
	}
	if g := os.Getenv("EMBER_GENERATOR"); g != "" {
		c.Build.Generator = g
	}
}
