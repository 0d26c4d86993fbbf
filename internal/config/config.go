// Package config loads the similitude configuration with viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the entire application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Scan     ScanConfig     `mapstructure:"scan"`
	Report   ReportConfig   `mapstructure:"report"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatabaseConfig contains index database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ScanConfig contains scan settings.
type ScanConfig struct {
	Ignore            []string `mapstructure:"ignore"`
	InlineThresholdMB int      `mapstructure:"inline_threshold_mb"`
	PreHashWindowMB   int      `mapstructure:"prehash_window_mb"`
	Enable            []string `mapstructure:"enable"` // phash, ssdeep
}

// ReportConfig contains report defaults.
type ReportConfig struct {
	Format string `mapstructure:"format"`
	Out    string `mapstructure:"out"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from configPath. An empty configPath searches
// the working directory for similitude.yaml and falls back to defaults
// when no file exists; a named file that cannot be read is an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.path", "similitude.db")
	v.SetDefault("scan.ignore", []string{})
	v.SetDefault("scan.inline_threshold_mb", 8)
	v.SetDefault("scan.prehash_window_mb", 1)
	v.SetDefault("scan.enable", []string{})
	v.SetDefault("report.format", "json")
	v.SetDefault("report.out", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("SIMILITUDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("similitude")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.Scan.InlineThresholdMB < 0 {
		return fmt.Errorf("scan.inline_threshold_mb must not be negative")
	}
	if c.Scan.PreHashWindowMB < 0 {
		return fmt.Errorf("scan.prehash_window_mb must not be negative")
	}
	for _, feature := range c.Scan.Enable {
		switch feature {
		case "phash", "ssdeep":
		default:
			return fmt.Errorf("unknown scan.enable feature: %s", feature)
		}
	}

	switch c.Report.Format {
	case "json", "ndjson", "csv":
	default:
		return fmt.Errorf("invalid report.format: %s", c.Report.Format)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

// InlineThreshold returns the buffered-hashing size threshold in bytes.
func (c *ScanConfig) InlineThreshold() int64 {
	if c.InlineThresholdMB <= 0 {
		return 8 * 1024 * 1024
	}
	return int64(c.InlineThresholdMB) * 1024 * 1024
}

// PreHashWindow returns the pre-hash window in bytes.
func (c *ScanConfig) PreHashWindow() int64 {
	if c.PreHashWindowMB <= 0 {
		return 1024 * 1024
	}
	return int64(c.PreHashWindowMB) * 1024 * 1024
}

// Enabled reports whether an enrichment feature is switched on.
func (c *ScanConfig) Enabled(feature string) bool {
	for _, f := range c.Enable {
		if f == feature {
			return true
		}
	}
	return false
}
