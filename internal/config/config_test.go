package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
log:
  level: debug
  format: json
db:
  driver: bolt
  path: /tmp/pumps.bolt
auth:
  signing_key: secret
  token_ttl: 30m
ws:
  default_interval: 2s
  max_interval: 5s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected top-level values: %+v", cfg)
	}
	if cfg.DB.Driver != DriverBolt || cfg.DB.Path != "/tmp/pumps.bolt" {
		t.Fatalf("unexpected db config: %+v", cfg.DB)
	}
	if cfg.Auth.SigningKey != "secret" || cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.WS.DefaultInterval != 2*time.Second || cfg.WS.MaxInterval != 5*time.Second {
		t.Fatalf("unexpected ws config: %+v", cfg.WS)
	}
	// untouched keys keep their defaults
	if cfg.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("expected default idle timeout, got %v", cfg.HTTP.IdleTimeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "port: \"9090\"\ndb:\n  driver: sqlite\n  path: a.db\n")
	t.Setenv("FUELPUMP_PORT", "7070")
	t.Setenv("FUELPUMP_DB_DRIVER", "memory")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("port = %q, want 7070", cfg.Port)
	}
	if cfg.DB.Driver != DriverMemory {
		t.Fatalf("driver = %q, want memory", cfg.DB.Driver)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, "db:\n  driver: postgres\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		DB:   DBConfig{Driver: DriverSQLite, Path: "x.db"},
		Auth: AuthConfig{TokenTTL: time.Hour},
		WS:   WSConfig{DefaultInterval: time.Second, MaxInterval: 10 * time.Second},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	noPath := base
	noPath.DB.Path = ""
	if err := noPath.Validate(); err == nil {
		t.Fatalf("expected error for sqlite without path")
	}

	mem := noPath
	mem.DB.Driver = DriverMemory
	if err := mem.Validate(); err != nil {
		t.Fatalf("memory driver should not need a path: %v", err)
	}

	badWS := base
	badWS.WS.MaxInterval = 500 * time.Millisecond
	if err := badWS.Validate(); err == nil {
		t.Fatalf("expected error when max_interval < default_interval")
	}
}
