// Package config reads runtime settings from the environment. An optional
// .env file in the working directory is loaded first; variables already set
// in the environment win.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime wiring options.
type Config struct {
	DBPath      string        // receipt library, e.g. ~/.brunchsplit/receipts.db
	Addr        string        // listen address for serve, e.g. :8080
	TokenSecret string        // HMAC secret for operator tokens; empty disables auth
	TokenTTL    time.Duration // lifetime of minted tokens
	LogLevel    string        // debug, info, warn, error
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads .env (if present) and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env", "error", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() Config {
	ttl, err := time.ParseDuration(getEnv("BRUNCH_TOKEN_TTL", "24h"))
	if err != nil {
		slog.Warn("Invalid BRUNCH_TOKEN_TTL, using 24h", "error", err)
		ttl = 24 * time.Hour
	}
	return Config{
		DBPath:      getEnv("BRUNCH_DB_PATH", defaultDBPath()),
		Addr:        getEnv("BRUNCH_ADDR", ":8080"),
		TokenSecret: os.Getenv("BRUNCH_TOKEN_SECRET"),
		TokenTTL:    ttl,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func defaultDBPath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "data", "receipts.db")
	}
	return filepath.Join(dir, ".brunchsplit", "receipts.db")
}
