package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SPEECHCOACH_CONFIG", "")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("addr=%q", cfg.HTTP.Addr)
	}
	if cfg.Generation.Provider != "gemini" || cfg.Session.Store != "memory" {
		t.Fatalf("provider=%q store=%q", cfg.Generation.Provider, cfg.Session.Store)
	}
	if cfg.Session.TTL.Duration != 2*time.Hour {
		t.Fatalf("ttl=%s", cfg.Session.TTL.Duration)
	}
	if cfg.Auth.JWTSecret == "" {
		t.Fatalf("expected development jwt secret")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "speechcoach.yaml")
	body := []byte(`
http:
  addr: ":9090"
generation:
  provider: mock
session:
  store: redis
  ttl: 30m
  redis_addr: "redis:6379"
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("SPEECHCOACH_CONFIG", path)
	t.Setenv("HTTP_ADDR", ":7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("env override lost: addr=%q", cfg.HTTP.Addr)
	}
	if cfg.Generation.Provider != "mock" {
		t.Fatalf("provider=%q", cfg.Generation.Provider)
	}
	if cfg.Session.Store != "redis" || cfg.Session.TTL.Duration != 30*time.Minute {
		t.Fatalf("session=%+v", cfg.Session)
	}
	if cfg.HTTP.ShutdownTimeout.Duration != 15*time.Second {
		t.Fatalf("defaults should survive partial file: %s", cfg.HTTP.ShutdownTimeout.Duration)
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.Generation.Provider = "claude"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	cfg := Default()
	cfg.Env = "production"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing JWT secret error")
	}
}

func TestPasswordHashesRequireDefaultKey(t *testing.T) {
	cfg := Default()
	cfg.Auth.PasswordHashes = []string{"$2a$10$abc"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error")
	}
}
