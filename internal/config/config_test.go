package config_test

import (
	"testing"

	"prodcat/internal/config"
)

func TestLoad_CORSOrigins(t *testing.T) {
	t.Run("explicit list", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", " https://a.example , https://b.example ,")
		cfg := config.Load()
		if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example" {
			t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
		}
		if cfg.CORSWildcard() {
			t.Fatal("explicit origins must not report wildcard")
		}
	})

	t.Run("wildcard collapses the list", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", "https://a.example,*,https://b.example")
		cfg := config.Load()
		if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
			t.Fatalf("wildcard must swallow explicit origins, got %v", cfg.CORSOrigins)
		}
		if !cfg.CORSWildcard() {
			t.Fatal("wildcard origins must report CORSWildcard")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", "")
		cfg := config.Load()
		if len(cfg.CORSOrigins) != 3 {
			t.Fatalf("unexpected default origins: %v", cfg.CORSOrigins)
		}
	})
}

func TestLoad_PageSizes(t *testing.T) {
	t.Setenv("DEFAULT_PAGE_SIZE", "50")
	t.Setenv("MAX_PAGE_SIZE", "bogus")
	cfg := config.Load()
	if cfg.DefaultPageSize != 50 {
		t.Fatalf("want 50, got %d", cfg.DefaultPageSize)
	}
	if cfg.MaxPageSize != 1000 {
		t.Fatalf("invalid value must fall back to default, got %d", cfg.MaxPageSize)
	}
}
