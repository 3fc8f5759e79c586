package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/schaplens/engine/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Engine      EngineConfig
	Predictions PredictionsConfig
	Store       StoreConfig
	RateLimit   RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

// EngineConfig holds enrichment engine thresholds
type EngineConfig struct {
	MLConfidenceThreshold        float64 `mapstructure:"ml_confidence_threshold"`
	MarketingConfidenceThreshold float64 `mapstructure:"marketing_confidence_threshold"`
	DefaultCategory              string  `mapstructure:"default_category"`
}

// PredictionsConfig points at the batch categorizer's output file.
// An empty path disables the ML resolution tier.
type PredictionsConfig struct {
	Path string `mapstructure:"path"`
}

// StoreConfig holds persistence configuration
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/schaplens/")

	v.SetEnvPrefix("SCHAPLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults suffice
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")

	v.SetDefault("engine.ml_confidence_threshold", 0.65)
	v.SetDefault("engine.marketing_confidence_threshold", 0.4)
	v.SetDefault("engine.default_category", domain.DefaultCategory)

	v.SetDefault("predictions.path", "")

	v.SetDefault("store.path", "schaplens.db")

	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if t := config.Engine.MLConfidenceThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("ml confidence threshold must be in (0, 1], got: %v", t)
	}
	if t := config.Engine.MarketingConfidenceThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("marketing confidence threshold must be in (0, 1], got: %v", t)
	}
	if config.Engine.MarketingConfidenceThreshold > config.Engine.MLConfidenceThreshold {
		return fmt.Errorf("marketing threshold must not exceed the ml threshold")
	}

	if c := config.Engine.DefaultCategory; !domain.IsCanonical(c) {
		return fmt.Errorf("default category %q is not in the canonical set", c)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit.per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
