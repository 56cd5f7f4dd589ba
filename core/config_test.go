package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, v := range []string{"PORT", "LOG_DIR", "USERS_FILE", "TEMPLATE_DIR", "STATIC_DIR", "COOKIE_SECURE", "COOKIE_SAMESITE", "REDIS_URL", "CONFIG_FILE"} {
		t.Setenv(v, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Fatalf("Port = %s, want 8000", cfg.Port)
	}
	if cfg.UsersFile != "usuarios.json" {
		t.Fatalf("UsersFile = %s, want usuarios.json", cfg.UsersFile)
	}
	if cfg.CookieSecure {
		t.Fatal("CookieSecure should default to false")
	}
	if cfg.CookieSameSite != "Lax" {
		t.Fatalf("CookieSameSite = %s, want Lax", cfg.CookieSameSite)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("PORT", "9000")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("USERS_FILE", "/data/usuarios.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Port != "9000" || !cfg.CookieSecure || cfg.UsersFile != "/data/usuarios.json" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	content := "port: \"8081\"\ncookie_samesite: Strict\nredis_url: redis://localhost:6379/1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("PORT", "9000")
	t.Setenv("USERS_FILE", "/data/usuarios.json")
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	// File wins over env for the fields it sets.
	if cfg.Port != "8081" {
		t.Fatalf("Port = %s, want file value 8081", cfg.Port)
	}
	if cfg.CookieSameSite != "Strict" {
		t.Fatalf("CookieSameSite = %s, want Strict", cfg.CookieSameSite)
	}
	if cfg.RedisURL != "redis://localhost:6379/1" {
		t.Fatalf("RedisURL = %s", cfg.RedisURL)
	}
	// Untouched fields keep their env values.
	if cfg.UsersFile != "/data/usuarios.json" {
		t.Fatalf("UsersFile = %s, want env value", cfg.UsersFile)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadMalformedConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}
