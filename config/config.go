// Package config loads runtime settings from the environment (and an
// optional .env file) and validates them.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLogLevel  = "JOURNEY_LOG_LEVEL"
	EnvLogFormat = "JOURNEY_LOG_FORMAT"
	EnvLogFile   = "JOURNEY_LOG_FILE"
	EnvWorldDir  = "JOURNEY_WORLD_DIR"
	EnvEnv       = "JOURNEY_ENV"
)

// Config holds the application configuration
type Config struct {
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=text json"`
	LogFile     string // empty: stderr for the plain CLI, discarded for the TUI
	WorldDir    string // empty: the embedded world
	Environment string `validate:"oneof=dev prod test"`

	// Set from command-line flags, not the environment.
	Plain      bool
	Trace      bool
	ScriptFile string
}

var validate = validator.New()

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv(EnvLogLevel, "warn")),
		LogFormat:   strings.ToLower(getEnv(EnvLogFormat, "text")),
		LogFile:     getEnv(EnvLogFile, ""),
		WorldDir:    getEnv(EnvWorldDir, ""),
		Environment: strings.ToLower(getEnv(EnvEnv, "dev")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values against their allowed sets.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
