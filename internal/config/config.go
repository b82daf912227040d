package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GatewayURL         string        `yaml:"gateway_url"`
	SeedPath           string        `yaml:"seed_path"`
	BindAddress        string        `yaml:"bind_address"`
	UnixSocketPath     string        `yaml:"unix_socket"`
	RequireBearerToken bool          `yaml:"require_token"`
	BearerToken        string        `yaml:"bearer_token"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	LogLevel           string        `yaml:"log_level"`
	EnableMetrics      bool          `yaml:"enable_metrics"`
}

// Load builds the configuration in three layers: defaults, then an optional
// YAML file named by EVENTPAGE_CONFIG, then EVENTPAGE_* environment
// variables on top.
func Load() (Config, error) {
	cfg := Config{
		GatewayURL:     "http://localhost:3001",
		BindAddress:    "127.0.0.1:9871",
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
		EnableMetrics:  true,
	}

	if path := strings.TrimSpace(os.Getenv("EVENTPAGE_CONFIG")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.GatewayURL = getenvDefault("EVENTPAGE_GATEWAY_URL", cfg.GatewayURL)
	cfg.SeedPath = getenvDefault("EVENTPAGE_SEED", cfg.SeedPath)
	cfg.BindAddress = getenvDefault("EVENTPAGE_BIND_ADDRESS", cfg.BindAddress)
	cfg.UnixSocketPath = getenvDefault("EVENTPAGE_UNIX_SOCKET", cfg.UnixSocketPath)
	cfg.RequireBearerToken = getenvBool("EVENTPAGE_REQUIRE_TOKEN", cfg.RequireBearerToken)
	cfg.BearerToken = getenvDefault("EVENTPAGE_BEARER_TOKEN", cfg.BearerToken)
	cfg.RequestTimeout = getenvDuration("EVENTPAGE_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.LogLevel = getenvDefault("EVENTPAGE_LOG_LEVEL", cfg.LogLevel)
	cfg.EnableMetrics = getenvBool("EVENTPAGE_ENABLE_METRICS", cfg.EnableMetrics)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.GatewayURL == "" {
		return errors.New("gateway url is required")
	}
	if c.BindAddress == "" && c.UnixSocketPath == "" {
		return errors.New("either bind address or unix socket path must be configured")
	}
	if c.RequireBearerToken && c.BearerToken == "" {
		return errors.New("EVENTPAGE_BEARER_TOKEN is required when token auth is enabled")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be > 0")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
