// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	// File paths
	RawPath    string // Raw dataset read by the pipeline
	CleanPath  string // Cleaned dataset written by the pipeline
	SQLitePath string // Optional SQLite export target
	PolicyPath string // Optional YAML cleaning policy

	// Cleaning policy
	Policy *Policy

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables. A .env file
// in the working directory is honored when present.
func LoadConfig() (*Config, error) {
	// Missing .env is not an error; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{
		RawPath:    getEnv("VGSALES_RAW_PATH", "data/vgsales_raw.csv"),
		CleanPath:  getEnv("VGSALES_CLEAN_PATH", "data/vgsales_clean.csv"),
		SQLitePath: getEnv("VGSALES_SQLITE_PATH", "data/vgsales_clean.sqlite"),
		PolicyPath: getEnv("VGSALES_POLICY_PATH", ""),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "console"),
	}

	// Load the cleaning policy
	policy := DefaultPolicy()
	if cfg.PolicyPath != "" {
		loaded, err := LoadPolicy(cfg.PolicyPath)
		if err != nil {
			return nil, errors.New("failed to load cleaning policy: " + err.Error())
		}
		policy = loaded
	}
	// Year bounds may be overridden without a policy file
	policy.MinYear = getEnvAsInt("VGSALES_MIN_YEAR", policy.MinYear)
	policy.MaxYear = getEnvAsInt("VGSALES_MAX_YEAR", policy.MaxYear)
	cfg.Policy = policy

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.RawPath == "" {
		return errors.New("raw dataset path is required")
	}

	if c.CleanPath == "" {
		return errors.New("cleaned dataset path is required")
	}

	if c.Policy == nil {
		return errors.New("cleaning policy is required")
	}

	return c.Policy.Validate()
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
