// Package config loads twist-mcp settings from defaults, an optional YAML
// file, a .env file and TWIST_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileEnv names the variable that points at an explicit config file.
const FileEnv = "TWIST_MCP_CONFIG"

// ErrMissingAPIKey is returned by RequireAPIKey when no token is configured.
var ErrMissingAPIKey = errors.New("twist api key is not configured (set TWIST_API_KEY)")

type Config struct {
	Twist      TwistConfig      `yaml:"twist"`
	MCP        MCPConfig        `yaml:"mcp"`
	Resilience ResilienceConfig `yaml:"resilience"`
	Cache      CacheConfig      `yaml:"cache"`
	History    HistoryConfig    `yaml:"history"`
	Log        LogConfig        `yaml:"log"`
}

type TwistConfig struct {
	APIKey  string        `yaml:"api_key" env:"TWIST_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"TWIST_BASE_URL" validate:"required,url"`
	WebURL  string        `yaml:"web_url" env:"TWIST_WEB_URL" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" env:"TWIST_TIMEOUT" validate:"gt=0"`
}

type MCPConfig struct {
	ServerName string `yaml:"server_name" env:"TWIST_MCP_SERVER_NAME" validate:"required"`
	Transport  string `yaml:"transport" env:"TWIST_MCP_TRANSPORT" validate:"oneof=stdio http"`
	Port       int    `yaml:"port" env:"TWIST_MCP_PORT" validate:"min=1,max=65535"`
}

type ResilienceConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"TWIST_RATE_LIMIT" validate:"gt=0"`
	Burst             int           `yaml:"burst" env:"TWIST_RATE_BURST" validate:"gt=0"`
	MaxAttempts       int           `yaml:"max_attempts" env:"TWIST_RETRY_ATTEMPTS" validate:"min=1,max=10"`
	InitialDelay      time.Duration `yaml:"initial_delay" env:"TWIST_RETRY_DELAY" validate:"gt=0"`
	MaxDelay          time.Duration `yaml:"max_delay" env:"TWIST_RETRY_MAX_DELAY" validate:"gtefield=InitialDelay"`

	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
}

// CircuitBreakerConfig opens the breaker after FailureThreshold consecutive
// transient failures and closes it again after SuccessThreshold successful
// trial requests.
type CircuitBreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold" env:"TWIST_BREAKER_FAILURES" validate:"gt=0"`
	SuccessThreshold int           `yaml:"success_threshold" env:"TWIST_BREAKER_SUCCESSES" validate:"gt=0"`
	HalfOpenTimeout  time.Duration `yaml:"half_open_timeout" env:"TWIST_BREAKER_HALF_OPEN_TIMEOUT" validate:"gt=0"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled" env:"TWIST_CACHE_ENABLED"`
	Dir     string        `yaml:"dir" env:"TWIST_CACHE_DIR" validate:"required_if=Enabled true"`
	TTL     time.Duration `yaml:"ttl" env:"TWIST_CACHE_TTL" validate:"gt=0"`
}

// HistoryConfig controls the journal of mutating tool calls. It shares the
// SQLite database in Cache.Dir.
type HistoryConfig struct {
	Enabled   bool          `yaml:"enabled" env:"TWIST_HISTORY_ENABLED"`
	Retention time.Duration `yaml:"retention" env:"TWIST_HISTORY_RETENTION" validate:"gt=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"TWIST_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" env:"TWIST_LOG_FORMAT" validate:"oneof=text json"`
}

// Default returns the built-in settings used before any file or variable
// is applied.
func Default() *Config {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	cacheDir := filepath.Join(base, "twist-mcp")
	return &Config{
		Twist: TwistConfig{
			BaseURL: "https://api.twist.com/api/v3",
			WebURL:  "https://twist.com",
			Timeout: 30 * time.Second,
		},
		MCP: MCPConfig{
			ServerName: "twist-mcp",
			Transport:  "stdio",
			Port:       8080,
		},
		Resilience: ResilienceConfig{
			RequestsPerMinute: 300,
			Burst:             10,
			MaxAttempts:       3,
			InitialDelay:      500 * time.Millisecond,
			MaxDelay:          30 * time.Second,
			CircuitBreaker: CircuitBreakerConfig{
				FailureThreshold: 5,
				SuccessThreshold: 2,
				HalfOpenTimeout:  30 * time.Second,
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     cacheDir,
			TTL:     time.Hour,
		},
		History: HistoryConfig{
			Enabled:   true,
			Retention: 30 * 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration from the process environment.
// A .env file in the working directory fills in variables that are not
// already set.
func Load() (*Config, error) {
	environ := environMap(os.Environ())
	if dotenv, err := godotenv.Read(); err == nil {
		for k, v := range dotenv {
			if _, set := environ[k]; !set {
				environ[k] = v
			}
		}
	}

	path, explicit := environ[FileEnv]
	if !explicit {
		if dir, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(dir, "twist-mcp", "config.yaml")
		}
	}
	return LoadFrom(path, explicit, environ)
}

// LoadFrom applies the YAML file at path (skipped when it does not exist
// and required is false) and then environ over the defaults.
func LoadFrom(path string, required bool, environ map[string]string) (*Config, error) {
	cfg := Default()
	if environ == nil {
		environ = map[string]string{}
	}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if required || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := env.Parse(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.Twist.BaseURL = strings.TrimRight(cfg.Twist.BaseURL, "/")
	cfg.Twist.WebURL = strings.TrimRight(cfg.Twist.WebURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks field constraints. The API key is checked separately by
// RequireAPIKey so that offline commands still work without one.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RequireAPIKey reports ErrMissingAPIKey when commands that call the API
// have no token to send.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.Twist.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func environMap(kv []string) map[string]string {
	m := make(map[string]string, len(kv))
	for _, e := range kv {
		if k, v, ok := strings.Cut(e, "="); ok {
			m[k] = v
		}
	}
	return m
}
