/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cqusn/smartcar/pkg/codec"
)

// Config represents the smartcar configuration
type Config struct {
	DataFile   string  `yaml:"data_file"`
	ArchiveDir string  `yaml:"archive_dir"`
	Codec      Codec   `yaml:"codec"`
	Server     Server  `yaml:"server"`
	Logging    Logging `yaml:"logging"`
}

// Codec contains record format settings
type Codec struct {
	Policy string `yaml:"policy"`
}

// Server contains the HTTP view settings
type Server struct {
	Port int    `yaml:"port"`
	Bind string `yaml:"bind"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataFile:   "./SmartCars.txt",
		ArchiveDir: "./archive",
		Codec: Codec{
			Policy: string(codec.PolicyPermissive),
		},
		Server: Server{
			Port: 8080,
			Bind: "127.0.0.1",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate checks values that cannot be caught by YAML decoding
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	if _, err := codec.ParsePolicy(c.Codec.Policy); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	return nil
}

// Policy returns the configured codec policy. Call Validate first.
func (c *Config) Policy() codec.Policy {
	p, err := codec.ParsePolicy(c.Codec.Policy)
	if err != nil {
		return codec.PolicyPermissive
	}
	return p
}

// Addr returns the listen address of the HTTP view
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

// LoadConfig loads configuration from the specified path. Keys missing from the
// file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig writes a default configuration, pointing at dataFile if given
func BootstrapConfig(configPath string, dataFile string) (*Config, error) {
	config := DefaultConfig()
	if dataFile != "" {
		config.DataFile = dataFile
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./smartcar.yaml"
	}

	// ~/.config/smartcar/config.yaml
	configDir := filepath.Join(homeDir, ".config", "smartcar")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
