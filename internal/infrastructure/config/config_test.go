package config_test

import (
	"testing"
	"time"

	"github.com/iho/fxtransfer/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.RedisURL != "" {
		t.Fatalf("expected redis to be disabled by default, got %q", cfg.RedisURL)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.StorageDriver != config.StorageDriverPostgres {
		t.Fatalf("expected postgres storage by default, got %s", cfg.StorageDriver)
	}

	if cfg.TransferTimeout != 10*time.Second {
		t.Fatalf("expected default transfer timeout 10s, got %s", cfg.TransferTimeout)
	}

	if cfg.RateCacheTTL != 5*time.Minute {
		t.Fatalf("expected default rate cache TTL 5m, got %s", cfg.RateCacheTTL)
	}

	if cfg.CacheBreakerFailures != 5 || cfg.CacheBreakerOpenDuration != 30*time.Second {
		t.Fatalf("expected breaker defaults 5/30s, got %d/%s", cfg.CacheBreakerFailures, cfg.CacheBreakerOpenDuration)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("TRANSFER_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_RPS", "12.5")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.StorageDriver != config.StorageDriverMemory {
		t.Fatalf("expected memory storage, got %s", cfg.StorageDriver)
	}

	if cfg.TransferTimeout != 3*time.Second {
		t.Fatalf("expected transfer timeout override, got %s", cfg.TransferTimeout)
	}

	if cfg.RateLimitRPS != 12.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadRejectsUnknownStorageDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for unknown storage driver")
	}
}

func TestValidateTransferTimeout(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.StorageDriverMemory}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero transfer timeout")
	}
}
