package core

import (
	"context"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to validate: %v", err)
	}

	cfg := DefaultConfig()
	cfg.ServiceName = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected blank service name to fail validation")
	}

	cfg = DefaultConfig()
	cfg.Token.TTL = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected zero token ttl to fail validation")
	}

	cfg = DefaultConfig()
	cfg.Hash.Cost = 99
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected out-of-range bcrypt cost to fail validation")
	}
}

func TestCfgxConfigProvider_LoadsOverDefaults(t *testing.T) {
	provider := NewCfgxConfigProvider(StaticRawConfigLoader{Values: map[string]any{
		"service_name": "notes-api",
		"token": map[string]any{
			"secret": "0123456789abcdef0123456789abcdef",
			"ttl":    30 * time.Minute,
		},
	}})

	cfg, err := provider.Load(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "notes-api" {
		t.Fatalf("expected loaded service name, got %q", cfg.ServiceName)
	}
	if cfg.Token.TTL != 30*time.Minute {
		t.Fatalf("expected loaded ttl, got %v", cfg.Token.TTL)
	}
	if cfg.Hash.Cost != 10 {
		t.Fatalf("expected default bcrypt cost preserved, got %d", cfg.Hash.Cost)
	}
}

func TestGoOptionsResolver_RuntimeWins(t *testing.T) {
	defaults := DefaultConfig()
	loaded := DefaultConfig()
	loaded.ServiceName = "loaded"
	loaded.Token.Issuer = "loaded-issuer"
	runtime := Config{ServiceName: "runtime"}

	resolved, err := GoOptionsResolver{}.Resolve(defaults, loaded, runtime)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if resolved.ServiceName != "runtime" {
		t.Fatalf("expected runtime layer to win, got %q", resolved.ServiceName)
	}
	if resolved.Token.Issuer != "loaded-issuer" {
		t.Fatalf("expected loaded issuer preserved, got %q", resolved.Token.Issuer)
	}
	if resolved.Token.TTL != defaults.Token.TTL {
		t.Fatalf("expected default ttl preserved, got %v", resolved.Token.TTL)
	}
}
