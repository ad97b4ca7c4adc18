package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Name != "authgate" {
		t.Errorf("Name = %q, want authgate", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("Debug should default to true in development")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.RateLimit.MaxAttempts != 5 {
		t.Errorf("RateLimit.MaxAttempts = %d, want 5", cfg.RateLimit.MaxAttempts)
	}
}

func TestResolveSecret_ProductionRequiresSecret(t *testing.T) {
	cfg := &Config{Environment: "production"}
	if _, err := cfg.ResolveSecret(); err == nil {
		t.Fatal("expected error for missing production secret")
	}

	cfg.Token.Secret = "short"
	if _, err := cfg.ResolveSecret(); err == nil {
		t.Fatal("expected error for short production secret")
	}

	cfg.Token.Secret = strings.Repeat("s", 32)
	insecure, err := cfg.ResolveSecret()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insecure {
		t.Error("configured production secret should not be reported insecure")
	}
}

func TestResolveSecret_DevelopmentFallback(t *testing.T) {
	cfg := &Config{Environment: "development"}
	insecure, err := cfg.ResolveSecret()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !insecure {
		t.Error("generated secret should be reported insecure")
	}
	if len(cfg.Token.Secret) < 32 {
		t.Errorf("generated secret too short: %d bytes", len(cfg.Token.Secret))
	}

	// A configured secret is left alone.
	cfg2 := &Config{Environment: "development"}
	cfg2.Token.Secret = "configured"
	insecure, err = cfg2.ResolveSecret()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insecure || cfg2.Token.Secret != "configured" {
		t.Error("configured development secret should be kept as-is")
	}
}

func TestLoad_FromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	yml := []byte("name: authgate\nenvironment: staging\nserver:\n  port: 9090\n")
	if err := os.WriteFile(file, yml, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("AUTHGATE_SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-provided-secret")

	cfg, err := Load(WithConfigFile(file))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Environment != "staging" {
		t.Errorf("Environment = %q, want staging", cfg.Environment)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want env override 7070", cfg.Server.Port)
	}
	if cfg.Token.Secret != "env-provided-secret" {
		t.Errorf("Token.Secret = %q, want value from JWT_SECRET", cfg.Token.Secret)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate_RejectsUnknownEnvironment(t *testing.T) {
	cfg := &Config{Environment: "sandbox"}
	cfg.ApplyDefaults()
	cfg.Token.Secret = "whatever"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown environment")
	}
}
