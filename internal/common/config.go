package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the service configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logging   LoggingConfig   `toml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Valuation ValuationConfig `toml:"valuation"`
}

type ServerConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	MaxBodyBytes int    `toml:"max_body_bytes"`
	ReadTimeout  string `toml:"read_timeout"`  // e.g. "10s"
	WriteTimeout string `toml:"write_timeout"` // e.g. "10s"
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// RateLimitConfig limits requests per client address
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

type ValuationConfig struct {
	DefaultRateFormat string `toml:"default_rate_format"` // "ratio" or "percent"
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "",
			Port:         8080,
			MaxBodyBytes: 64 * 1024,
			ReadTimeout:  "10s",
			WriteTimeout: "10s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Valuation: ValuationConfig{
			DefaultRateFormat: "ratio",
		},
	}
}

// Load builds the configuration with priority: defaults -> file -> .env -> environment.
// A missing file is not an error; the defaults are used.
func Load(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if host := os.Getenv("DCF_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	port := os.Getenv("DCF_SERVER_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("DCF_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("DCF_LOG_OUTPUT"); output != "" {
		config.Logging.Output = splitList(output)
	}

	if enabled := os.Getenv("DCF_RATE_LIMIT_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			config.RateLimit.Enabled = b
		}
	}
	if rps := os.Getenv("DCF_RATE_LIMIT_RPS"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil {
			config.RateLimit.RequestsPerSecond = v
		}
	}
	if burst := os.Getenv("DCF_RATE_LIMIT_BURST"); burst != "" {
		if v, err := strconv.Atoi(burst); err == nil {
			config.RateLimit.Burst = v
		}
	}

	if format := os.Getenv("DCF_DEFAULT_RATE_FORMAT"); format != "" {
		config.Valuation.DefaultRateFormat = format
	}
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if _, err := c.Server.ReadTimeoutDuration(); err != nil {
		return fmt.Errorf("invalid server.read_timeout: %w", err)
	}
	if _, err := c.Server.WriteTimeoutDuration(); err != nil {
		return fmt.Errorf("invalid server.write_timeout: %w", err)
	}
	switch c.Valuation.DefaultRateFormat {
	case "ratio", "percent":
	default:
		return fmt.Errorf("invalid valuation.default_rate_format %q (want ratio or percent)", c.Valuation.DefaultRateFormat)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit requires positive requests_per_second and burst when enabled")
	}
	return nil
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s ServerConfig) ReadTimeoutDuration() (time.Duration, error) {
	return parseDuration(s.ReadTimeout)
}

func (s ServerConfig) WriteTimeoutDuration() (time.Duration, error) {
	return parseDuration(s.WriteTimeout)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
