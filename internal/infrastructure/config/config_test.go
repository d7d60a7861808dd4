package config_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/twist-mcp/internal/infrastructure/config"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom("", false, map[string]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Twist.BaseURL != "https://api.twist.com/api/v3" {
		t.Errorf("base url = %q", cfg.Twist.BaseURL)
	}
	if cfg.MCP.Transport != "stdio" || cfg.MCP.Port != 8080 {
		t.Errorf("mcp = %+v", cfg.MCP)
	}
	if cfg.Resilience.MaxAttempts != 3 || cfg.Resilience.RequestsPerMinute != 300 {
		t.Errorf("resilience = %+v", cfg.Resilience)
	}
	cb := cfg.Resilience.CircuitBreaker
	if cb.FailureThreshold != 5 || cb.SuccessThreshold != 2 || cb.HalfOpenTimeout != 30*time.Second {
		t.Errorf("circuit breaker = %+v", cb)
	}
	if !cfg.History.Enabled || cfg.History.Retention != 720*time.Hour {
		t.Errorf("history = %+v", cfg.History)
	}
	if !errors.Is(cfg.RequireAPIKey(), config.ErrMissingAPIKey) {
		t.Error("expected missing api key")
	}
}

func TestLoadFrom_MissingOptionalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	if _, err := config.LoadFrom(path, false, nil); err != nil {
		t.Fatalf("optional file should be skipped: %v", err)
	}
	if _, err := config.LoadFrom(path, true, nil); err == nil {
		t.Fatal("explicit file must exist")
	}
}

func TestLoadFrom_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
twist:
  api_key: from-file
  base_url: https://api.example.test/v3/
resilience:
  requests_per_minute: 60
  max_delay: 5s
  circuit_breaker:
    half_open_timeout: 45s
cache:
  ttl: 10m
log:
  level: DEBUG
`)

	cfg, err := config.LoadFrom(path, true, map[string]string{
		"TWIST_API_KEY":           "from-env",
		"TWIST_CACHE_ENABLED":     "false",
		"TWIST_RATE_LIMIT":        "120",
		"TWIST_HISTORY_RETENTION": "168h",
		"TWIST_BREAKER_FAILURES":  "7",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Twist.APIKey != "from-env" {
		t.Errorf("api key = %q, env should win", cfg.Twist.APIKey)
	}
	if cfg.Twist.BaseURL != "https://api.example.test/v3" {
		t.Errorf("base url = %q", cfg.Twist.BaseURL)
	}
	if cfg.Resilience.RequestsPerMinute != 120 {
		t.Errorf("rate = %d", cfg.Resilience.RequestsPerMinute)
	}
	if cfg.Resilience.MaxDelay != 5*time.Second {
		t.Errorf("max delay = %v", cfg.Resilience.MaxDelay)
	}
	if cb := cfg.Resilience.CircuitBreaker; cb.FailureThreshold != 7 || cb.HalfOpenTimeout != 45*time.Second || cb.SuccessThreshold != 2 {
		t.Errorf("circuit breaker = %+v", cb)
	}
	if cfg.Cache.Enabled || cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.History.Retention != 168*time.Hour {
		t.Errorf("history retention = %v", cfg.History.Retention)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadFrom_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		field   string
	}{
		{"transport", map[string]string{"TWIST_MCP_TRANSPORT": "grpc"}, "Transport"},
		{"rate", map[string]string{"TWIST_RATE_LIMIT": "0"}, "RequestsPerMinute"},
		{"log level", map[string]string{"TWIST_LOG_LEVEL": "trace"}, "Level"},
		{"delay order", map[string]string{"TWIST_RETRY_DELAY": "10s", "TWIST_RETRY_MAX_DELAY": "1s"}, "MaxDelay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadFrom("", false, tt.environ)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention %s", err, tt.field)
			}
		})
	}
}

func TestLoadFrom_CacheDirRequiredWhenEnabled(t *testing.T) {
	path := writeFile(t, "cache:\n  enabled: true\n  dir: \"\"\n")
	_, err := config.LoadFrom(path, true, nil)
	if err == nil || !strings.Contains(err.Error(), "Dir") {
		t.Fatalf("got %v, want cache dir error", err)
	}

	if _, err := config.LoadFrom(path, true, map[string]string{"TWIST_CACHE_ENABLED": "false"}); err != nil {
		t.Errorf("disabled cache needs no dir: %v", err)
	}
}

func TestLoadFrom_BadEnvValue(t *testing.T) {
	if _, err := config.LoadFrom("", false, map[string]string{"TWIST_MCP_PORT": "eighty"}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLogConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := config.LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line logged at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("unexpected output: %s", out)
	}
}
