package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the daemon configuration
type Config struct {
	// Listen address for the protocol server
	Listen string `yaml:"listen"`

	// Protocol version announced in the greeting line
	Version string `yaml:"version"`

	// Path to a YAML fixture with songs, outputs and stored playlists.
	// Empty means the embedded fixture.
	Fixture string `yaml:"fixture,omitempty"`

	// Log level: debug, info, warn or error
	LogLevel string `yaml:"log_level"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Listen:   "localhost:6600",
		Version:  "0.23.5",
		Fixture:  "",
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from file. Fields missing from the file keep
// their default values. The result is not validated: callers apply their
// overrides first and then call Validate.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can be used to start a server
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if strings.TrimSpace(c.Version) == "" {
		return fmt.Errorf("version must not be empty")
	}
	for _, level := range logLevels {
		if strings.EqualFold(c.LogLevel, level) {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s (must be one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
}
