// Package config loads planner configuration from file and environment
// variables via github.com/spf13/viper, following the same
// defaults-then-env-override shape as the teacher's pkg/config.Load.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the search planner.
type Config struct {
	Log            LogConfig            `mapstructure:"log"`
	Limits         LimitsConfig         `mapstructure:"limits"`
	Database       DatabaseConfig       `mapstructure:"database"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LimitsConfig holds the three tunables spec.md §6 names, with the
// defaults recovered from original_source/SearchProcessor.java.
type LimitsConfig struct {
	MaxResultSize          int `mapstructure:"max_result_size"`
	MaxQueryStrLengthTypes int `mapstructure:"max_query_str_length_types"`
	MaxQueryStrLengthTags  int `mapstructure:"max_query_str_length_tags"`
}

// DatabaseConfig selects which graph query builder provider to target
// and, for deployments that also execute the emitted queries, how to
// reach that database. The planner itself never dials out with these
// fields; they exist so a caller can configure pkg/querybuilder and
// this package from the same file.
type DatabaseConfig struct {
	Provider string `mapstructure:"provider"` // neo4j, ladybug
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// CircuitBreakerConfig configures the schema.CircuitBreakerPort
// decorator. Mirrors the teacher's pkg/config.CircuitBreakerConfig,
// which the same package wires up for its NLP client.
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // seconds
	Timeout          int     `mapstructure:"timeout"`  // seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// Load loads configuration from file (if set via viper.SetConfigFile
// beforehand) and environment variables, applying spec-mandated
// defaults for anything left unset.
func Load() (*Config, error) {
	setDefaults()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unable to decode config: %w", err)
	}

	overrideWithEnv(cfg)

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("limits.max_result_size", 150)
	viper.SetDefault("limits.max_query_str_length_types", 512)
	viper.SetDefault("limits.max_query_str_length_tags", 512)

	viper.SetDefault("database.provider", "neo4j")

	viper.SetDefault("circuit_breaker.enabled", false)
	viper.SetDefault("circuit_breaker.max_requests", 1)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.5)
}

func overrideWithEnv(cfg *Config) {
	if uri := os.Getenv("GRAPH_DB_URI"); uri != "" {
		cfg.Database.URI = uri
	}
	if user := os.Getenv("GRAPH_DB_USER"); user != "" {
		cfg.Database.Username = user
	}
	if pass := os.Getenv("GRAPH_DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if provider := os.Getenv("GRAPH_DB_PROVIDER"); provider != "" {
		cfg.Database.Provider = provider
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}

// DefaultLimits returns the spec-mandated tunable defaults without
// touching viper, for callers (and tests) that want the fixed values
// without a full Load().
func DefaultLimits() LimitsConfig {
	return LimitsConfig{
		MaxResultSize:          150,
		MaxQueryStrLengthTypes: 512,
		MaxQueryStrLengthTags:  512,
	}
}
