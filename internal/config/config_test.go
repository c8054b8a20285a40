package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:           "3000",
		SQLiteDBPath:   "./test.db",
		GroqAPIKey:     "gsk_test",
		GroqAPIURL:     "https://api.groq.com/openai/v1/chat/completions",
		GroqModel:      "llama-3.3-70b-versatile",
		GroqTimeout:    30 * time.Second,
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing API key is not a startup error",
			mutate:  func(c *Config) { c.GroqAPIKey = "" },
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "invalid provider URL scheme",
			mutate:      func(c *Config) { c.GroqAPIURL = "ftp://api.groq.com" },
			wantErr:     true,
			errorString: "must be 'http' or 'https'",
		},
		{
			name:        "empty model",
			mutate:      func(c *Config) { c.GroqModel = "" },
			wantErr:     true,
			errorString: "Groq model cannot be empty",
		},
		{
			name:        "timeout too short",
			mutate:      func(c *Config) { c.GroqTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "timeout too long",
			mutate:      func(c *Config) { c.GroqTimeout = time.Hour },
			wantErr:     true,
			errorString: "must be at most 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
		})
	}
}

func TestValidateDoesNotTouchFilesystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := validConfig()
	cfg.SQLiteDBPath = filepath.Join(dir, "expenses.db")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("Validate must not create the database directory: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SQLITE_DB_PATH", "GROQ_API_KEY", "GROQ_API_URL", "GROQ_MODEL", "GROQ_TIMEOUT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Port != "3000" {
		t.Fatalf("default port: %s", cfg.Port)
	}
	if cfg.GroqModel != "llama-3.3-70b-versatile" {
		t.Fatalf("default model: %s", cfg.GroqModel)
	}
	if cfg.GroqTimeout != 30*time.Second {
		t.Fatalf("default timeout: %v", cfg.GroqTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("default origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("GROQ_API_KEY", "gsk_live")
	t.Setenv("GROQ_TIMEOUT", "10s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("port from env: %s", cfg.Port)
	}
	if cfg.GroqAPIKey != "gsk_live" {
		t.Fatalf("api key from env: %s", cfg.GroqAPIKey)
	}
	if cfg.GroqTimeout != 10*time.Second {
		t.Fatalf("timeout from env: %v", cfg.GroqTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("origins from env: %v", cfg.AllowedOrigins)
	}
}
