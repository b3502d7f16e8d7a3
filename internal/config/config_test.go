package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("BRUNCH_DB_PATH", "/tmp/r.db")
	t.Setenv("BRUNCH_ADDR", ":9999")
	t.Setenv("BRUNCH_TOKEN_SECRET", "s3cret")
	t.Setenv("BRUNCH_TOKEN_TTL", "1h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := FromEnv()
	if cfg.DBPath != "/tmp/r.db" || cfg.Addr != ":9999" || cfg.TokenSecret != "s3cret" {
		t.Errorf("FromEnv() = %+v", cfg)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("BRUNCH_ADDR", "")
	t.Setenv("BRUNCH_TOKEN_SECRET", "")
	t.Setenv("BRUNCH_TOKEN_TTL", "not-a-duration")

	cfg := FromEnv()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.TokenSecret != "" {
		t.Errorf("TokenSecret = %q, want empty", cfg.TokenSecret)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BRUNCH_ADDR=:7070\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(wd)

	// Empty value so t.Setenv restores it; godotenv only fills unset keys.
	t.Setenv("BRUNCH_ADDR", "")
	os.Unsetenv("BRUNCH_ADDR")

	if cfg := Load(); cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070 from .env", cfg.Addr)
	}
}
