// Package config loads f1mcp configuration from a JSON file or from
// F1MCP_-prefixed environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the top-level f1mcp configuration.
type Config struct {
	OpenF1 OpenF1Config `json:"openf1"`
	API    APIConfig    `json:"api"`
	Log    LogConfig    `json:"log"`
}

// OpenF1Config holds settings for the upstream OpenF1 API.
type OpenF1Config struct {
	BaseURL        string `json:"base_url,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// APIConfig holds ops HTTP server settings. A zero port disables the
// ops server; the MCP stdio transport is always on.
type APIConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
	Key  string `json:"api_key,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `json:"level,omitempty"`       // debug, info, warn, error
	BufferSize int    `json:"buffer_size,omitempty"` // ring buffer entries for /api/logs
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv builds a config from environment variables with the
// F1MCP_ prefix. Unset variables fall back to defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		OpenF1: OpenF1Config{
			BaseURL:        os.Getenv("F1MCP_OPENF1_BASE_URL"),
			TimeoutSeconds: getenvInt("F1MCP_OPENF1_TIMEOUT", 0),
		},
		API: APIConfig{
			Host: getenv("F1MCP_API_HOST", "127.0.0.1"),
			Port: getenvInt("F1MCP_API_PORT", 0),
			Key:  os.Getenv("F1MCP_API_KEY"),
		},
		Log: LogConfig{
			Level:      os.Getenv("F1MCP_LOG_LEVEL"),
			BufferSize: getenvInt("F1MCP_LOG_BUFFER", 0),
		},
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.OpenF1.BaseURL == "" {
		c.OpenF1.BaseURL = "https://api.openf1.org/v1"
	}
	if c.OpenF1.TimeoutSeconds == 0 {
		c.OpenF1.TimeoutSeconds = 30
	}
	if c.API.Host == "" {
		c.API.Host = "127.0.0.1"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.BufferSize == 0 {
		c.Log.BufferSize = 2000
	}
}

// Validate checks for malformed fields.
func (c *Config) Validate() error {
	var errs []string

	if !strings.HasPrefix(c.OpenF1.BaseURL, "http://") && !strings.HasPrefix(c.OpenF1.BaseURL, "https://") {
		errs = append(errs, fmt.Sprintf("openf1.base_url %q must be an http(s) URL", c.OpenF1.BaseURL))
	}
	if c.OpenF1.TimeoutSeconds < 0 {
		errs = append(errs, "openf1.timeout_seconds must not be negative")
	}
	if c.API.Port < 0 || c.API.Port > 65535 {
		errs = append(errs, fmt.Sprintf("api.port %d is out of range", c.API.Port))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
