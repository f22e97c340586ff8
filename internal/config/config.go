// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	GitHub GitHubConfig
}

// GitHubConfig holds GitHub API configuration.
type GitHubConfig struct {
	Token string
	// SecondaryLimitWait is the longest secondary rate limit the transport
	// sleeps through on its own. Zero hands every limit to the aggregator.
	SecondaryLimitWait time.Duration
}

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) (*Config, error) {
	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load(envFiles...)

	wait, err := getEnvAsDuration("GITHUB_SECONDARY_LIMIT_WAIT", 0)
	if err != nil {
		return nil, err
	}
	config := &Config{
		GitHub: GitHubConfig{
			Token:              getEnv("GITHUB_ACCESS_TOKEN", ""),
			SecondaryLimitWait: wait,
		},
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.GitHub.SecondaryLimitWait < 0 {
		return fmt.Errorf("GITHUB_SECONDARY_LIMIT_WAIT must not be negative")
	}
	return nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
