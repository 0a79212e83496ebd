package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}

	cfg := m.Get()
	if cfg.Keychain.Endpoint == "" {
		t.Error("expected default keychain endpoint to be set")
	}
	if cfg.Keychain.Department == 0 {
		t.Error("expected default department to be set")
	}
}

func TestLoadRoundTripsSavedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := m.Get()
	cfg.Keychain.ApiKey = "test-key"
	if err := m.Update(cfg); err != nil {
		t.Fatalf("Update: %v", err)
	}

	m2 := NewManager(path)
	if err := m2.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := m2.Get().Keychain.ApiKey; got != "test-key" {
		t.Errorf("ApiKey = %q, want %q", got, "test-key")
	}
}

func TestValidateRejectsBadEndpoint(t *testing.T) {
	cfg := Config{Keychain: KeychainConfig{Endpoint: "not a url"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for malformed endpoint")
	}
}

func TestValidateRejectsNegativeLoggingFields(t *testing.T) {
	cfg := *DefaultConfig()
	cfg.Logging.MaxSizeMB = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for negative max_size_mb")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}
