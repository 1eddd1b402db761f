// Package config loads marsphotos settings from defaults, an optional YAML
// file and the environment, in increasing order of priority.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/thesavant42/marsphotos/internal/models"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"marsphotos.yaml",
	"marsphotos.yml",
}

// Config is the complete configuration shared by both binaries.
type Config struct {
	NASA   NASAConfig   `koanf:"nasa"`
	Server ServerConfig `koanf:"server"`
	Cache  CacheConfig  `koanf:"cache"`
	Client ClientConfig `koanf:"client"`
	Log    LogConfig    `koanf:"log"`
}

// NASAConfig configures the upstream API.
type NASAConfig struct {
	APIKey  string `koanf:"api_key" validate:"required"`
	BaseURL string `koanf:"base_url" validate:"required,url"`
}

// ServerConfig configures the proxy HTTP listener.
type ServerConfig struct {
	ListenAddr      string        `koanf:"listen_addr" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RateLimit       int           `koanf:"rate_limit" validate:"min=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// CacheConfig configures the proxy response cache.
type CacheConfig struct {
	TTL           time.Duration `koanf:"ttl"`
	Capacity      int           `koanf:"capacity" validate:"min=1"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	// ProxyURL routes searches through a marsphotos proxy when set.
	ProxyURL  string `koanf:"proxy_url" validate:"omitempty,url"`
	// Locale selects the UI language; unknown values fall back to English.
	Locale    string `koanf:"locale"`
	HistoryDB string `koanf:"history_db"`
	LogFile   string `koanf:"log_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// LogLevel returns the parsed log level, defaulting to info.
func (c LogConfig) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func defaultConfig() *Config {
	return &Config{
		NASA: NASAConfig{
			APIKey:  "DEMO_KEY",
			BaseURL: "https://api.nasa.gov/mars-photos/api/v1",
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       120,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Cache: CacheConfig{
			TTL:           5 * time.Minute,
			Capacity:      1024,
			SweepInterval: time.Minute,
		},
		Client: ClientConfig{
			Locale:    "en",
			HistoryDB: "marsphotos.db",
			LogFile:   "marsphotos.log",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// envMappings maps lowercased environment variable names to config paths.
var envMappings = map[string]string{
	"nasa_api_key":              "nasa.api_key",
	"mars_nasa_base_url":        "nasa.base_url",
	"mars_listen_addr":          "server.listen_addr",
	"mars_shutdown_timeout":     "server.shutdown_timeout",
	"mars_rate_limit":           "server.rate_limit",
	"mars_rate_limit_window":    "server.rate_limit_window",
	"mars_cors_origins":         "server.cors_origins",
	"mars_cache_ttl":            "cache.ttl",
	"mars_cache_capacity":       "cache.capacity",
	"mars_cache_sweep_interval": "cache.sweep_interval",
	"mars_proxy_url":            "client.proxy_url",
	"mars_locale":               "client.locale",
	"mars_history_db":           "client.history_db",
	"mars_log_file":             "client.log_file",
	"mars_log_level":            "log.level",
}

// sliceConfigPaths may arrive from the environment as comma-separated strings.
var sliceConfigPaths = []string{"server.cors_origins"}

// envTransformFunc maps known variables and drops everything else.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load builds the configuration: struct defaults, then the YAML file (if
// any), then environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.NASA.APIKey) == "" {
		c.NASA.APIKey = "DEMO_KEY"
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Client.Locale = strings.TrimSpace(c.Client.Locale)
	if err := models.Validator().Struct(c); err != nil {
		return err
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	return nil
}

// UsesDemoKey reports whether the shared, heavily rate-limited key is in use.
func (c *Config) UsesDemoKey() bool {
	return c.NASA.APIKey == "DEMO_KEY"
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
