package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("NASA_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.NASA.APIKey != "DEMO_KEY" || !cfg.UsesDemoKey() {
		t.Errorf("api key = %q, want DEMO_KEY", cfg.NASA.APIKey)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("cache ttl = %v, want 5m", cfg.Cache.TTL)
	}
	if cfg.Server.ListenAddr != ":8080" || cfg.Client.Locale != "en" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Log.LogLevel() != log.InfoLevel {
		t.Errorf("log level = %v", cfg.Log.LogLevel())
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("NASA_API_KEY", "abc123")
	t.Setenv("MARS_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("MARS_CACHE_TTL", "90s")
	t.Setenv("MARS_CACHE_CAPACITY", "50")
	t.Setenv("MARS_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MARS_LOCALE", "pt-BR")
	t.Setenv("MARS_LOG_LEVEL", "debug")
	t.Setenv("UNRELATED_SETTING", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.NASA.APIKey != "abc123" || cfg.UsesDemoKey() {
		t.Errorf("api key = %q", cfg.NASA.APIKey)
	}
	if cfg.Server.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("listen addr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Cache.TTL != 90*time.Second || cfg.Cache.Capacity != 50 {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if want := []string{"https://a.example", "https://b.example"}; !slices.Equal(cfg.Server.CORSOrigins, want) {
		t.Errorf("cors origins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	if cfg.Client.Locale != "pt-BR" || cfg.Log.LogLevel() != log.DebugLevel {
		t.Errorf("client = %+v log = %+v", cfg.Client, cfg.Log)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marsphotos.yaml")
	yaml := strings.Join([]string{
		"server:",
		"  listen_addr: \":7070\"",
		"cache:",
		"  capacity: 10",
		"client:",
		"  proxy_url: http://localhost:7070",
	}, "\n")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("MARS_CACHE_CAPACITY", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.ListenAddr != ":7070" || cfg.Client.ProxyURL != "http://localhost:7070" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Cache.Capacity != 20 {
		t.Errorf("env should override file, capacity = %d", cfg.Cache.Capacity)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"capacity", "MARS_CACHE_CAPACITY", "0"},
		{"ttl", "MARS_CACHE_TTL", "-1s"},
		{"level", "MARS_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, "")
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q succeeded", tt.key, tt.value)
			}
		})
	}
}

func TestLoadLenientValues(t *testing.T) {
	tests := []struct {
		name, key, value string
		check            func(*Config) bool
	}{
		{"unknown locale", "MARS_LOCALE", "fr", func(c *Config) bool { return c.Client.Locale == "fr" }},
		{"lowercase locale", "MARS_LOCALE", "pt-br", func(c *Config) bool { return c.Client.Locale == "pt-br" }},
		{"uppercase level", "MARS_LOG_LEVEL", "WARN", func(c *Config) bool { return c.Log.LogLevel() == log.WarnLevel }},
		{"padded level", "MARS_LOG_LEVEL", " debug ", func(c *Config) bool { return c.Log.Level == "debug" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, "")
			t.Setenv(tt.key, tt.value)
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() with %s=%q error = %v", tt.key, tt.value, err)
			}
			if !tt.check(cfg) {
				t.Errorf("unexpected config for %s=%q: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}
