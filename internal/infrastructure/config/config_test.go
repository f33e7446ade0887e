package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:       strings.Repeat("s", 32),
		TokenTTLMinutes: 30,
		External: ExternalConfig{
			BaseURL:         "https://example.com/fake",
			TimeoutSeconds:  10,
			TokenTTLSeconds: 300,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	short := validConfig()
	short.JWTSecret = "too-short"
	if err := short.Validate(); err == nil {
		t.Fatalf("expected error for short secret")
	}

	ttl := validConfig()
	ttl.TokenTTLMinutes = 0
	if err := ttl.Validate(); err == nil {
		t.Fatalf("expected error for zero TTL")
	}

	base := validConfig()
	base.External.BaseURL = ""
	if err := base.Validate(); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}

func TestConfig_Durations(t *testing.T) {
	cfg := validConfig()
	if cfg.TokenTTL() != 30*time.Minute {
		t.Fatalf("expected 30m, got %v", cfg.TokenTTL())
	}
	if cfg.External.Timeout() != 10*time.Second {
		t.Fatalf("expected 10s, got %v", cfg.External.Timeout())
	}
	if cfg.External.TokenTTL() != 5*time.Minute {
		t.Fatalf("expected 5m, got %v", cfg.External.TokenTTL())
	}
}
