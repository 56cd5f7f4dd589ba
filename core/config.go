package core

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds runtime settings for the dashboard process.
type Config struct {
	Port           string `yaml:"port"`            // HTTP listen port (e.g., "8000")
	LogDir         string `yaml:"log_dir"`         // Directory to write application logs
	UsersFile      string `yaml:"users_file"`      // Path to the usuarios.json user list
	TemplateDir    string `yaml:"template_dir"`    // Directory with HTML templates
	StaticDir      string `yaml:"static_dir"`      // Directory served under /static
	CookieSecure   bool   `yaml:"cookie_secure"`   // Whether to set Secure flag on the session cookie
	CookieSameSite string `yaml:"cookie_samesite"` // SameSite policy: Strict/Lax/None
	RedisURL       string `yaml:"redis_url"`       // Redis URL for login metrics (empty disables metrics)
}

// Load populates Config from environment variables with sane defaults, then
// overlays values from the YAML file named by CONFIG_FILE when one is set.
func Load() (Config, error) {
	cfg := Config{
		Port:           firstNonEmpty(os.Getenv("PORT"), "8000"),
		LogDir:         firstNonEmpty(os.Getenv("LOG_DIR"), "/var/log/panel"),
		UsersFile:      firstNonEmpty(os.Getenv("USERS_FILE"), "usuarios.json"),
		TemplateDir:    firstNonEmpty(os.Getenv("TEMPLATE_DIR"), "templates"),
		StaticDir:      firstNonEmpty(os.Getenv("STATIC_DIR"), "static"),
		CookieSecure:   boolFromEnv("COOKIE_SECURE", false),
		CookieSameSite: firstNonEmpty(os.Getenv("COOKIE_SAMESITE"), "Lax"),
		RedisURL:       os.Getenv("REDIS_URL"),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// overlayFile replaces only the fields the YAML file actually sets.
func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s does not exist: %w", path, err)
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var overlay struct {
		Port           *string `yaml:"port"`
		LogDir         *string `yaml:"log_dir"`
		UsersFile      *string `yaml:"users_file"`
		TemplateDir    *string `yaml:"template_dir"`
		StaticDir      *string `yaml:"static_dir"`
		CookieSecure   *bool   `yaml:"cookie_secure"`
		CookieSameSite *string `yaml:"cookie_samesite"`
		RedisURL       *string `yaml:"redis_url"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if overlay.Port != nil {
		c.Port = *overlay.Port
	}
	if overlay.LogDir != nil {
		c.LogDir = *overlay.LogDir
	}
	if overlay.UsersFile != nil {
		c.UsersFile = *overlay.UsersFile
	}
	if overlay.TemplateDir != nil {
		c.TemplateDir = *overlay.TemplateDir
	}
	if overlay.StaticDir != nil {
		c.StaticDir = *overlay.StaticDir
	}
	if overlay.CookieSecure != nil {
		c.CookieSecure = *overlay.CookieSecure
	}
	if overlay.CookieSameSite != nil {
		c.CookieSameSite = *overlay.CookieSameSite
	}
	if overlay.RedisURL != nil {
		c.RedisURL = *overlay.RedisURL
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// boolFromEnv reads a boolean from env var name, falling back to defaultVal when empty or invalid.
func boolFromEnv(name string, defaultVal bool) bool {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}
