package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL  string        // Required: base URL of the OCP API
	HTTPTimeout time.Duration // Optional: per-request timeout (default: 10s)
	SessionFile string        // Optional: path to the SQLite session database
	Env         string        // Environment (dev, staging, prod) (default: dev)
	LogLevel    string        // Log level (debug, info, warn, error) (default: info)
	LogFormat   string        // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	// A .env next to the binary is a convenience for development; absence
	// is not an error.
	_ = godotenv.Load()

	return Config{
		APIBaseURL:  getEnvOrDefault("OCP_API_URL", "http://localhost:5455"),
		HTTPTimeout: getEnvDurationOrDefault("OCP_HTTP_TIMEOUT", 10*time.Second),
		SessionFile: getEnvOrDefault("MAINTDESK_SESSION_FILE", defaultSessionFile()),
		Env:         getEnvOrDefault("ENV", "dev"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

// defaultSessionFile places the session database under the user config
// directory, falling back to the working directory when there isn't one.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "maintdesk-session.db"
	}
	return filepath.Join(dir, "maintdesk", "session.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
