package config

import (
	"io"
	"log"
	"testing"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")

	cfg, err := Load(testLogger())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		t.Fatalf("expected defaulted database url")
	}
	if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 20 {
		t.Fatalf("unexpected rate limit defaults %v/%v", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadRequiresAuthSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	if _, err := Load(testLogger()); err == nil {
		t.Fatalf("expected error for missing AUTH_JWT_SECRET")
	}
}

func TestLoadRejectsBadRateLimit(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("RATE_LIMIT_RPS", "0")

	if _, err := Load(testLogger()); err == nil {
		t.Fatalf("expected error for zero rate limit")
	}
}

func TestCORSOriginList(t *testing.T) {
	t.Parallel()

	cfg := Config{CORSOrigins: " https://a.example , ,https://b.example"}
	got := cfg.CORSOriginList()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", got)
	}
}
