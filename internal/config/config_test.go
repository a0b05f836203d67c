package config

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "STORE_BACKEND", "ADMIN_TOKEN", "LOG_LEVEL", "SEED_BASELINE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("Port=%q, want 8080", cfg.Port)
	}
	if cfg.StoreBackend != StoreSQLite {
		t.Fatalf("StoreBackend=%q, want %q", cfg.StoreBackend, StoreSQLite)
	}
	if cfg.LogLevel != zerolog.InfoLevel {
		t.Fatalf("LogLevel=%v, want info", cfg.LogLevel)
	}
	if cfg.SeedBaseline {
		t.Fatalf("expected baseline seeding off by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("ADMIN_TOKEN", "tok")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_BASELINE", "true")

	cfg := Load()

	if cfg.Port != "9000" || cfg.StoreBackend != StoreMemory || cfg.AdminToken != "tok" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Fatalf("LogLevel=%v, want debug", cfg.LogLevel)
	}
	if !cfg.SeedBaseline {
		t.Fatalf("expected baseline seeding on")
	}
}

func TestLoad_UnknownBackendFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_BACKEND", "postgres")

	if cfg := Load(); cfg.StoreBackend != StoreSQLite {
		t.Fatalf("StoreBackend=%q, want %q", cfg.StoreBackend, StoreSQLite)
	}
}
