// Package config handles configuration management for diffscope.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	VCS     VCSConfig     `mapstructure:"vcs"`
	Watcher WatcherConfig `mapstructure:"watcher"`
	Logging LoggingConfig `mapstructure:"logging"`
	Limits  LimitsConfig  `mapstructure:"limits"`
}

// VCSConfig holds version-control backend configuration.
type VCSConfig struct {
	Backend   string `mapstructure:"backend"`    // auto, git, hg, or bzr
	Root      string `mapstructure:"root"`       // working-tree root override
	SourceExt string `mapstructure:"source_ext"` // tracked source extension, e.g. ".py"
}

// WatcherConfig holds file watcher configuration.
type WatcherConfig struct {
	DebounceMS     int      `mapstructure:"debounce_ms"`
	IgnorePatterns []string `mapstructure:"ignore_patterns"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LimitsConfig holds various limits.
type LimitsConfig struct {
	MaxDiffSizeKB int `mapstructure:"max_diff_size_kb"`
}

// Load loads configuration from files and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("diffscope")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.diffscope")
		v.AddConfigPath("/etc/diffscope")
	}

	v.SetEnvPrefix("DIFFSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("vcs.backend", "auto")
	v.SetDefault("vcs.root", "")
	v.SetDefault("vcs.source_ext", ".py")

	v.SetDefault("watcher.debounce_ms", 300)
	v.SetDefault("watcher.ignore_patterns", []string{
		".git", ".hg", ".bzr", "__pycache__", ".tox", "node_modules",
	})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("limits.max_diff_size_kb", 1024)
}
