// Package config loads stagegate's project configuration from the control
// directory, with defaults and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"stagegate/internal/lockfile"
)

// ConfigFileName is the configuration file inside the control directory.
const ConfigFileName = "config.yaml"

// ArtifactFileName is the phase artifact payload inside the control
// directory. It is caller-owned: stagegate only touches its baseline field.
const ArtifactFileName = "artifact.yaml"

// Config is the tool configuration.
type Config struct {
	// Threshold is the drift boundary (percentage points) at which the
	// severity becomes critical.
	Threshold float64 `mapstructure:"threshold"`
	// ReviewAt is the drift at which human review is required. Zero means
	// "same as threshold".
	ReviewAt float64 `mapstructure:"review_at"`
	// CoverageCommand is the external coverage runner invoked by
	// `coverage check` and `coverage record`.
	CoverageCommand string `mapstructure:"coverage_command"`
	// CoverageArgs are passed to the coverage runner.
	CoverageArgs []string `mapstructure:"coverage_args"`
	// CoverageTimeoutSeconds bounds the coverage runner's execution.
	CoverageTimeoutSeconds int `mapstructure:"coverage_timeout_seconds"`
	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Threshold:              10.0,
		CoverageTimeoutSeconds: 300,
		LogLevel:               "INFO",
	}
}

// Path returns the config file path for a project root.
func Path(root string) string {
	return filepath.Join(root, lockfile.ControlDir, ConfigFileName)
}

// ArtifactPath returns the artifact payload path for a project root.
func ArtifactPath(root string) string {
	return filepath.Join(root, lockfile.ControlDir, ArtifactFileName)
}

// Load reads the configuration for a project root. A missing config file
// yields the defaults; a malformed one is an error. Individual settings can
// be overridden through STAGEGATE_* environment variables.
func Load(root string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(Path(root))
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("threshold", def.Threshold)
	v.SetDefault("review_at", def.ReviewAt)
	v.SetDefault("coverage_command", def.CoverageCommand)
	v.SetDefault("coverage_args", def.CoverageArgs)
	v.SetDefault("coverage_timeout_seconds", def.CoverageTimeoutSeconds)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix("STAGEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks configuration bounds.
func (c Config) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %v", c.Threshold)
	}
	if c.ReviewAt < 0 {
		return fmt.Errorf("review_at must be non-negative, got %v", c.ReviewAt)
	}
	if c.CoverageTimeoutSeconds < 0 {
		return fmt.Errorf("coverage_timeout_seconds must be non-negative, got %v", c.CoverageTimeoutSeconds)
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR", "":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
