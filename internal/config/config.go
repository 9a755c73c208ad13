// Package config provides configuration management for plainmd.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/plainmd/internal/view"
	"github.com/open-cli-collective/plainmd/pkg/plaintext"
)

// Config holds the plainmd configuration.
type Config struct {
	OutputFormat string             `yaml:"output_format,omitempty" json:"output_format,omitempty"`
	Conversion   plaintext.Settings `yaml:"conversion" json:"conversion"`
}

// Default returns a configuration holding the default conversion settings.
func Default() *Config {
	return &Config{Conversion: plaintext.DefaultSettings()}
}

// Validate checks the settings that conversion cannot run without. Custom
// rules are not checked here: the converter skips a broken rule and keeps
// going, and plaintext.ValidateRule reports them for config test and
// rules add.
func (c *Config) Validate() error {
	return view.ValidateFormat(c.OutputFormat)
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and parseable.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("PLAINMD_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Conversion.EnableMarkdownConversion = enabled
		}
	}
	envMode("PLAINMD_BOLD_MODE", &c.Conversion.BoldMode)
	envMode("PLAINMD_ITALIC_MODE", &c.Conversion.ItalicMode)
	envMode("PLAINMD_STRIKETHROUGH_MODE", &c.Conversion.StrikethroughMode)
	if bullet := os.Getenv("PLAINMD_BULLET_CHAR"); bullet != "" {
		c.Conversion.BulletChar = bullet
	}
	if output := os.Getenv("PLAINMD_OUTPUT"); output != "" && view.ValidateFormat(output) == nil {
		c.OutputFormat = output
	}
}

// envMode sets *dst from the named variable when it holds a valid mode.
func envMode(name string, dst *plaintext.Mode) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if m, err := plaintext.ParseMode(v); err == nil {
		*dst = m
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "plainmd", "config.yml")
	}

	// Fall back to ~/.config/plainmd/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".plainmd", "config.yml")
	}

	return filepath.Join(home, ".config", "plainmd", "config.yml")
}

// ResolvePath returns flagPath when set, otherwise the default path.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return DefaultConfigPath()
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

// Load reads the configuration from the specified path. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Conversion.CustomRules == nil {
		cfg.Conversion.CustomRules = []plaintext.CustomRule{}
	}

	return cfg, nil
}

// LoadOrDefault reads the file at path, or returns the defaults when it does
// not exist. Commands that edit and save the file use it so environment
// overrides are never written back.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}
	return cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file yields the defaults; a malformed one is an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := LoadOrDefault(path)
	if err != nil {
		return nil, err
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
