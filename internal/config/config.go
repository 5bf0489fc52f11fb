// Package config provides configuration management for graphmap.
//
// Config file locations (priority order):
//  1. $GRAPHMAP_CONFIG
//  2. ./graphmap.yaml
//  3. $XDG_CONFIG_HOME/graphmap/config.yaml
//  4. ~/.config/graphmap/config.yaml
//  5. /etc/graphmap/config.yaml
//
// Environment variables prefixed with GRAPHMAP_ override file values, e.g.
// GRAPHMAP_STORAGE_DRIVER=sqlite.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "GRAPHMAP_"

const defaultSQLitePath = ":memory:"

// Load finds and loads the config file, or starts from defaults if none is
// found. Environment overrides are applied in both cases.
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		cfg := DefaultConfig()
		if err := cfg.applyEnv(); err != nil {
			return nil, "", err
		}
		cfg.applyDefaults()
		return cfg, "", cfg.Validate()
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, path, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns an in-memory store with eager mapping
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Storage: StorageConfig{
			Driver: DriverMemory,
			Path:   defaultSQLitePath,
		},
		Mapping: MappingConfig{Mode: MappingEager},
	}
}

// Validate rejects unknown drivers and mapping modes
func (c *Config) Validate() error {
	if !c.Storage.Driver.Valid() {
		return fmt.Errorf("invalid storage driver %q (want %q or %q)", c.Storage.Driver, DriverMemory, DriverSQLite)
	}
	if !c.Mapping.Mode.Valid() {
		return fmt.Errorf("invalid mapping mode %q (want %q or %q)", c.Mapping.Mode, MappingEager, MappingLazy)
	}
	return nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	if c.Storage.Driver == DriverSQLite {
		return fmt.Sprintf("Storage: %s (%s), Mapping: %s", c.Storage.Driver, c.Storage.Path, c.Mapping.Mode)
	}
	return fmt.Sprintf("Storage: %s, Mapping: %s", c.Storage.Driver, c.Mapping.Mode)
}

// applyEnv overlays GRAPHMAP_* environment variables
func (c *Config) applyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultSQLitePath
	}
	if c.Mapping.Mode == "" {
		c.Mapping.Mode = MappingEager
	}
}
