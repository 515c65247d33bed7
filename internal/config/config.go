// Package config provides configuration management for toposcope.
//
// Config file locations (priority order):
//  1. $TOPOSCOPE_CONFIG
//  2. ./toposcope.yaml
//  3. $XDG_CONFIG_HOME/toposcope/config.yaml
//  4. ~/.config/toposcope/config.yaml
//  5. /etc/toposcope/config.yaml
//
// Command line flags override file values; a missing file yields defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration
type Config struct {
	Addr string `yaml:"addr"`

	Topology TopologyConfig `yaml:"topology"`
	Layouts  LayoutsConfig  `yaml:"layouts"`
	Database DatabaseConfig `yaml:"database"`
	Sim      SimConfig      `yaml:"sim"`
}

// TopologyConfig points at the topology source: a controller URL or a
// snapshot file. URL wins if both are set.
type TopologyConfig struct {
	URL  string `yaml:"url"`
	File string `yaml:"file"`
}

// LayoutsConfig points at the layout store. An empty URL makes the server
// use its bundled repository-backed store.
type LayoutsConfig struct {
	URL string `yaml:"url"`
}

// DatabaseConfig configures the bundled layout store
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SimConfig carries optional physics overrides. Zero values keep defaults.
type SimConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	TickInterval string  `yaml:"tick_interval"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
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

	cfg.applyDefaults()

	return &cfg, path, nil
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./toposcope.db"
	}
	if c.Sim.TickInterval == "" {
		c.Sim.TickInterval = "33ms"
	}
}
