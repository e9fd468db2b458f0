// Package config loads the YAML configuration for the arbcored binary.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level arbcored configuration.
type Config struct {
	ChainID            uint64 `yaml:"chain_id"`
	MetricsAddr        string `yaml:"metrics_addr"`
	LogLevel           string `yaml:"log_level"`
	MaxConcurrentTasks int    `yaml:"max_concurrent_tasks"`
	DisablePoolRetry   bool   `yaml:"disable_pool_retry"`
}

func (c *Config) validate() error {
	if c.ChainID == 0 {
		return fmt.Errorf("config: chain_id is required")
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = ":9090"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// LoadConfig reads and parses the YAML config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
