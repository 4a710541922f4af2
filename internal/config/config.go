// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"portfolio-regret/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Solver contains integer-program solver settings
	Solver SolverConfig `json:"solver"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// SolverConfig contains solver-related settings
type SolverConfig struct {
	// TimeoutSeconds bounds each solver invocation; 0 disables the deadline
	TimeoutSeconds int `json:"timeout_seconds"`

	// Parallel runs the three scenario-ideal solves concurrently
	Parallel bool `json:"parallel"`

	// MaxNodes caps branch-and-bound nodes per solve; 0 means unlimited
	MaxNodes int `json:"max_nodes"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowIdeals includes per-scenario ideal values in reports
	ShowIdeals bool `json:"show_ideals"`

	// ShowRegrets includes per-scenario regrets in reports
	ShowRegrets bool `json:"show_regrets"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Solver: SolverConfig{
			TimeoutSeconds: 60,
			Parallel:       false,
			MaxNodes:       0,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowIdeals:    true,
			ShowRegrets:   true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".portfolio-regret.json")
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
