// Package config provides configuration types and helpers for deduplino.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the application-wide configuration.
type Config struct {
	Format        string  `mapstructure:"format"`
	Verbose       bool    `mapstructure:"verbose"`
	TopPercentage float64 `mapstructure:"top_percentage"`
	AutoEscape    bool    `mapstructure:"auto_escape"`
	Strict        bool    `mapstructure:"strict"`
	TokenModel    string  `mapstructure:"token_model"`
}

// Load unmarshals the current viper state into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := ValidateTopPercentage(cfg.TopPercentage); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateTopPercentage checks the selection budget fraction. The core
// engine does not validate caller input; this is the CLI boundary check.
func ValidateTopPercentage(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("top percentage must be between 0 and 1, got %g", v)
	}
	return nil
}
