package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"EVENTPAGE_CONFIG", "EVENTPAGE_GATEWAY_URL", "EVENTPAGE_SEED",
		"EVENTPAGE_BIND_ADDRESS", "EVENTPAGE_UNIX_SOCKET", "EVENTPAGE_REQUIRE_TOKEN",
		"EVENTPAGE_BEARER_TOKEN", "EVENTPAGE_REQUEST_TIMEOUT", "EVENTPAGE_LOG_LEVEL",
		"EVENTPAGE_ENABLE_METRICS",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GatewayURL != "http://localhost:3001" {
		t.Fatalf("unexpected gateway url: %q", cfg.GatewayURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
	if cfg.RequireBearerToken {
		t.Fatal("token auth should default to off")
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVENTPAGE_GATEWAY_URL", "http://gateway:4000")
	t.Setenv("EVENTPAGE_REQUEST_TIMEOUT", "5s")
	t.Setenv("EVENTPAGE_LOG_LEVEL", "debug")
	t.Setenv("EVENTPAGE_REQUIRE_TOKEN", "true")
	t.Setenv("EVENTPAGE_BEARER_TOKEN", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GatewayURL != "http://gateway:4000" {
		t.Fatalf("unexpected gateway url: %q", cfg.GatewayURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
	if !cfg.RequireBearerToken || cfg.BearerToken != "secret" {
		t.Fatalf("token settings lost: %+v", cfg)
	}
}

func TestYAMLFileThenEnvWins(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "eventpage.yaml")
	blob := "gateway_url: http://from-file:3001\nlog_level: warn\nrequest_timeout: 30s\n"
	if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EVENTPAGE_CONFIG", path)
	t.Setenv("EVENTPAGE_LOG_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GatewayURL != "http://from-file:3001" {
		t.Fatalf("file value lost: %q", cfg.GatewayURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("file timeout lost: %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("env must override file, got %q", cfg.LogLevel)
	}
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte(":\n  -"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EVENTPAGE_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []Config{
		{},
		{GatewayURL: "http://x", RequestTimeout: time.Second, LogLevel: "info"},
		{GatewayURL: "http://x", BindAddress: "127.0.0.1:1", RequireBearerToken: true, RequestTimeout: time.Second, LogLevel: "info"},
		{GatewayURL: "http://x", BindAddress: "127.0.0.1:1", RequestTimeout: -1 * time.Second, LogLevel: "info"},
		{GatewayURL: "http://x", BindAddress: "127.0.0.1:1", RequestTimeout: time.Second, LogLevel: "trace"},
	}
	for i, tc := range cases {
		if err := tc.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, tc)
		}
	}
}

func TestDefaultsWhenEnvInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVENTPAGE_REQUEST_TIMEOUT", "oops")
	t.Setenv("EVENTPAGE_REQUIRE_TOKEN", "oops")
	t.Setenv("EVENTPAGE_ENABLE_METRICS", "oops")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.RequestTimeout)
	}
	if !cfg.EnableMetrics {
		t.Fatal("expected metrics default true")
	}
}
