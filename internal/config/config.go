// Package config provides configuration management for otawire using Viper,
// plus per-project overrides read from otawire.toml at the project root.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/otawire/otawire/internal/paths"
	"github.com/otawire/otawire/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = "otawire"

// DefaultUpdateHost is where published updates are served from when no
// host is configured.
const DefaultUpdateHost = "exp.host"

// Config represents the top-level configuration structure.
type Config struct {
	Version          int      `mapstructure:"version" yaml:"version" toml:"version"`
	UpdateHost       string   `mapstructure:"update_host" yaml:"update_host" toml:"update_host"`
	DefaultAccount   string   `mapstructure:"default_account" yaml:"default_account" toml:"default_account"`
	DefaultPlatforms []string `mapstructure:"default_platforms" yaml:"default_platforms" toml:"default_platforms"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), AppName))

	// Environment variable support
	viper.SetEnvPrefix("OTAWIRE")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("update_host", DefaultUpdateHost)
	viper.SetDefault("default_platforms", paths.Platforms())
}

// Default returns the built-in configuration used when no config file
// exists.
func Default() *Config {
	return &Config{
		Version:          1,
		UpdateHost:       DefaultUpdateHost,
		DefaultPlatforms: paths.Platforms(),
	}
}

// WriteDefault writes the built-in configuration to path, creating parent
// directories as needed.
func WriteDefault(path string) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := fileutil.AtomicWriteYAML(path, Default()); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
