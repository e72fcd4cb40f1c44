// Package config provides configuration management for twc.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Supported dialect names. Empty means auto-detect from the story format.
const (
	DialectAuto      = ""
	DialectHarlowe   = "harlowe"
	DialectSugarCube = "sugarcube"
)

// Config holds the twc configuration.
type Config struct {
	Dialect       string `yaml:"dialect,omitempty"`
	OutputFormat  string `yaml:"output_format,omitempty"`
	NormalizeHTML bool   `yaml:"normalize_html,omitempty"`
	Strict        bool   `yaml:"strict,omitempty"`
}

// Validate checks that all fields hold known values.
func (c *Config) Validate() error {
	switch c.Dialect {
	case DialectAuto, DialectHarlowe, DialectSugarCube:
	default:
		return fmt.Errorf("unknown dialect %q (want harlowe or sugarcube)", c.Dialect)
	}
	switch c.OutputFormat {
	case "", "table", "json", "plain":
	default:
		return fmt.Errorf("unknown output format %q (want table, json or plain)", c.OutputFormat)
	}
	return nil
}

// LoadFromEnv overrides configuration from environment variables.
// TWC_* variables win over file values only when set and non-empty.
func (c *Config) LoadFromEnv() {
	if d := os.Getenv("TWC_DIALECT"); d != "" {
		c.Dialect = d
	}
	if f := os.Getenv("TWC_OUTPUT_FORMAT"); f != "" {
		c.OutputFormat = f
	}
	if v := os.Getenv("TWC_STRICT"); v == "1" || v == "true" {
		c.Strict = true
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "twc", "config.yml")
	}

	// Fall back to ~/.config/twc/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".twc", "config.yml")
	}

	return filepath.Join(home, ".config", "twc", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file is not an error; defaults apply.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
