package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.HTTPAddr)
	}
	if cfg.BackendURL != "http://localhost:5000" {
		t.Fatalf("expected default backend, got %q", cfg.BackendURL)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("expected default session TTL, got %v", cfg.SessionTTL)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("BACKEND_URL", "https://promtec.example.ch")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")

	cfg := Load()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected env addr, got %q", cfg.HTTPAddr)
	}
	if cfg.BackendURL != "https://promtec.example.ch" {
		t.Fatalf("expected env backend, got %q", cfg.BackendURL)
	}
	if cfg.SessionTTL != 45*time.Minute {
		t.Fatalf("expected env session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("malformed duration must fall back, got %v", cfg.RequestTimeout)
	}
}
