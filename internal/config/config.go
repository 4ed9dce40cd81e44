package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/dedup/internal/security"
	"github.com/fenilsonani/dedup/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Workers         int      `yaml:"workers"`          // 0 = number of CPUs
	MinFileSize     string   `yaml:"min_file_size"`    // e.g. "1KB"; "0" scans everything
	ExcludePatterns []string `yaml:"exclude_patterns"` // glob patterns, matched against full paths
	Output          string   `yaml:"output"`           // summary, list, json, yaml
	DryRun          bool     `yaml:"dry_run"`
	Verbose         int      `yaml:"verbose"`
}

// Load loads configuration from a file. A missing file is not an error;
// defaults are returned so the tool works with zero setup.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := GetDefault()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0")
	}

	if c.MinFileSize != "" {
		if _, err := utils.ParseSize(c.MinFileSize); err != nil {
			return fmt.Errorf("invalid min_file_size: %w", err)
		}
	}

	for _, pattern := range c.ExcludePatterns {
		if err := security.ValidateGlobPattern(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}

	switch c.Output {
	case "", "summary", "list", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s", c.Output)
	}

	return nil
}

// MinFileSizeBytes returns the parsed minimum file size threshold.
// Validate must have been called first; parse failures count as zero.
func (c *Config) MinFileSizeBytes() int64 {
	if c.MinFileSize == "" {
		return 0
	}
	n, err := utils.ParseSize(c.MinFileSize)
	if err != nil {
		return 0
	}
	return n
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "dedup")
	return filepath.Join(configDir, "config.yaml"), nil
}
