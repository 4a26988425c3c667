package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DatabasePath != "quickhire.db" {
		t.Errorf("DatabasePath = %q, want quickhire.db", cfg.DatabasePath)
	}
	if cfg.TokenDuration != 24*time.Hour {
		t.Errorf("TokenDuration = %v, want 24h", cfg.TokenDuration)
	}
	if cfg.NotifyWorkers != 2 {
		t.Errorf("NotifyWorkers = %d, want 2", cfg.NotifyWorkers)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("QH_ADDR", ":9090")
	t.Setenv("QH_JWT_SECRET", "env-secret")
	t.Setenv("QH_DATABASE_PATH", "/tmp/qh.db")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("JWTSecret = %q, want env-secret", cfg.JWTSecret)
	}
	if cfg.DatabasePath != "/tmp/qh.db" {
		t.Errorf("DatabasePath = %q, want /tmp/qh.db", cfg.DatabasePath)
	}
}

func TestLoadConfigYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("addr: \":7070\"\njwt_secret: file-secret\ndatabase_path: file.db\nnotify_workers: 4\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Addr)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Errorf("JWTSecret = %q, want file-secret", cfg.JWTSecret)
	}
	if cfg.NotifyWorkers != 4 {
		t.Errorf("NotifyWorkers = %d, want 4", cfg.NotifyWorkers)
	}
	// fields absent from the file keep their defaults
	if cfg.TokenDuration != 24*time.Hour {
		t.Errorf("TokenDuration = %v, want 24h", cfg.TokenDuration)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Addr:         ":8080",
		JWTSecret:    "strong-secret",
		DatabasePath: "qh.db",
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing addr", func(c *Config) { c.Addr = "" }},
		{"missing database path", func(c *Config) { c.DatabasePath = "" }},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }},
		{"insecure default secret", func(c *Config) { c.JWTSecret = insecureJWTSecret }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateAllowsDefaultSecretInDevelopment(t *testing.T) {
	t.Setenv("QH_ENV", "development")
	cfg := Config{Addr: ":8080", JWTSecret: insecureJWTSecret, DatabasePath: "qh.db"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("development default secret rejected: %v", err)
	}
}
