package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Inference provider
	GroqAPIKey  string
	GroqAPIURL  string
	GroqModel   string
	GroqTimeout time.Duration

	// CORS (the mobile client is a cross-origin caller)
	AllowedOrigins []string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expenses.db"),

		GroqAPIKey:  getEnv("GROQ_API_KEY", ""),
		GroqAPIURL:  getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
		GroqModel:   getEnv("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GroqTimeout: getEnvDuration("GROQ_TIMEOUT", 30*time.Second),

		AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid.
// A missing GROQ_API_KEY is deliberately not a startup error: the gateway
// fails fast per request so list/delete keep working without a credential.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// The repository creates the database directory on open; validation
	// only checks the path is set.
	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	}

	if parsedURL, err := url.Parse(c.GroqAPIURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid Groq API URL '%s': %v", c.GroqAPIURL, err))
	} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid Groq API URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
	}

	if c.GroqModel == "" {
		errors = append(errors, "Groq model cannot be empty")
	}

	if c.GroqTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid Groq timeout %v: must be at least 1 second", c.GroqTimeout))
	} else if c.GroqTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid Groq timeout %v: must be at most 5 minutes", c.GroqTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
