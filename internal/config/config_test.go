package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadSubstitutesEnv(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "hunter2")
	t.Setenv("TEST_AUTH_SECRET", "s3cret")

	path := writeConfig(t, `
server:
  addr: ":8080"
database:
  host: localhost
  port: 5432
  user: kurotask
  password: ${TEST_DB_PASSWORD}
  dbname: kurotask
  sslmode: disable
auth:
  secret: ${TEST_AUTH_SECRET}
  token_ttl: 1h
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Password != "hunter2" {
		t.Fatalf("expected substituted password, got %q", cfg.Database.Password)
	}
	if cfg.Auth.Secret != "s3cret" {
		t.Fatalf("expected substituted secret, got %q", cfg.Auth.Secret)
	}
	if cfg.Server.Addr != ":8080" || cfg.Auth.TokenTTL != time.Hour {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
auth:
  secret: s3cret
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":3000" {
		t.Fatalf("expected default addr, got %q", cfg.Server.Addr)
	}
	if cfg.Auth.TokenTTL != 30*24*time.Hour {
		t.Fatalf("expected default token ttl, got %v", cfg.Auth.TokenTTL)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  host: localhost
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error when auth.secret is missing")
	}
}

func TestLoadDBPortOverride(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	path := writeConfig(t, `
database:
  host: localhost
  port: 5432
auth:
  secret: s3cret
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Port != 6543 {
		t.Fatalf("expected DB_PORT override, got %d", cfg.Database.Port)
	}
}
