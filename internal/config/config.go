// Package config loads barcodescan settings from files, environment
// variables and flags.
package config

import (
	"fmt"
	"strings"
)

// Config is the complete barcodescan configuration.
type Config struct {
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	Verbose     bool   `mapstructure:"verbose" yaml:"verbose"`
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`

	Decode DecodeConfig `mapstructure:"decode" yaml:"decode"`
	Encode EncodeConfig `mapstructure:"encode" yaml:"encode"`
}

// DecodeConfig holds defaults for the decode command.
type DecodeConfig struct {
	Hints map[string]interface{} `mapstructure:"hints" yaml:"hints"`
}

// EncodeConfig holds defaults for the encode command.
type EncodeConfig struct {
	Hints  map[string]interface{} `mapstructure:"hints" yaml:"hints"`
	Scale  int                    `mapstructure:"scale" yaml:"scale"`
	Width  int                    `mapstructure:"width" yaml:"width"`
	Height int                    `mapstructure:"height" yaml:"height"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Encode: EncodeConfig{
			Scale: 1,
		},
	}
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	valid := false
	for _, l := range logLevels {
		if strings.EqualFold(c.LogLevel, l) {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid log level %q (must be one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if c.Encode.Scale < 1 {
		return fmt.Errorf("encode.scale must be at least 1, got %d", c.Encode.Scale)
	}
	if c.Encode.Width < 0 || c.Encode.Height < 0 {
		return fmt.Errorf("encode.width and encode.height must not be negative, got %dx%d",
			c.Encode.Width, c.Encode.Height)
	}
	return nil
}

// NormalizeHints restores hint names to upper case. Viper folds map keys to
// lower case, while hint names are upper case and matched exactly.
func NormalizeHints(raw map[string]interface{}) map[string]interface{} {
	if raw == nil {
		return nil
	}
	out := make(map[string]interface{}, len(raw))
	for k, v := range raw {
		out[strings.ToUpper(k)] = v
	}
	return out
}
