package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds all application configuration loaded from environment variables.
// All required fields are validated at startup to ensure fail-fast behavior.
type Config struct {
	// Server configuration
	ServerAddr string
	LogLevel   string
	LogFormat  string

	// Explorer API configuration
	SolscanAPIKey        string
	SolscanBaseURL       string
	SolscanPublicBaseURL string
	HTTPTimeout          time.Duration

	// Optional YAML file with extra address labels
	AliasesFile string
}

// Load reads configuration from environment variables and validates all required fields.
// Returns an error if any required configuration is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{}
	var errs []error

	// Server configuration
	cfg.ServerAddr = getEnvOrDefault("SERVER_ADDR", ":8080")
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", "json")

	// Explorer API configuration
	cfg.SolscanAPIKey = os.Getenv("SOLSCAN_API_KEY")
	if cfg.SolscanAPIKey == "" {
		errs = append(errs, fmt.Errorf("SOLSCAN_API_KEY is required"))
	}

	cfg.SolscanBaseURL = getEnvOrDefault("SOLSCAN_BASE_URL", "https://pro-api.solscan.io/v2.0")
	cfg.SolscanPublicBaseURL = getEnvOrDefault("SOLSCAN_PUBLIC_BASE_URL", "https://public-api.solscan.io")

	timeout, err := parseDuration("HTTP_TIMEOUT", "30s")
	if err != nil {
		errs = append(errs, err)
	} else {
		cfg.HTTPTimeout = timeout
	}

	cfg.AliasesFile = os.Getenv("ALIASES_FILE")

	if err := cfg.validate(); err != nil {
		errs = append(errs, err...)
	}

	// Return all validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %v", errs)
	}

	return cfg, nil
}

// MustLoad is like Load but panics if configuration is invalid.
// Useful for server initialization where misconfiguration should halt startup.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// Validate checks if the configuration is valid.
// This is useful for testing configuration without loading from env.
func (c *Config) Validate() error {
	var errs []error

	if c.SolscanAPIKey == "" {
		errs = append(errs, fmt.Errorf("SolscanAPIKey is required"))
	}
	errs = append(errs, c.validate()...)

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errs)
	}

	return nil
}

// validate holds the checks shared by Load and Validate.
func (c *Config) validate() []error {
	var errs []error

	for name, raw := range map[string]string{
		"SOLSCAN_BASE_URL":        c.SolscanBaseURL,
		"SOLSCAN_PUBLIC_BASE_URL": c.SolscanPublicBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: invalid URL %q", name, raw))
		}
	}

	if c.HTTPTimeout < time.Second {
		errs = append(errs, fmt.Errorf("HTTP_TIMEOUT must be at least 1 second"))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL: unknown level %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT: must be json or text, got %q", c.LogFormat))
	}

	return errs
}

// getEnvOrDefault returns the environment variable value or a default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration parses a duration from an environment variable or uses a default.
func parseDuration(key, defaultValue string) (time.Duration, error) {
	value := getEnvOrDefault(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return duration, nil
}
