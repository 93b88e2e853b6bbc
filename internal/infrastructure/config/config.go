package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Logging    LogConfig
	RateLimit  RateLimitConfig
	Expression ExpressionConfig
	Generator  GeneratorConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port               string        `envconfig:"PORT" default:"5001"`
	Host               string        `envconfig:"HOST" default:"127.0.0.1"`
	StaticDir          string        `envconfig:"STATIC_DIR" default:"web/static"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	CompressionEnabled bool          `envconfig:"COMPRESSION_ENABLED" default:"true"`
	// CORSOrigins is a comma-separated list; "*" allows any origin.
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"20"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"40"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"false"`
	// Scope is "ip" for one bucket per client or "global" for one shared bucket.
	Scope string `envconfig:"RATE_LIMIT_SCOPE" default:"ip"`
}

// ExpressionConfig bounds free-form expression evaluation.
type ExpressionConfig struct {
	Timeout   time.Duration `envconfig:"EXPRESSION_TIMEOUT" default:"2s"`
	MaxLength int           `envconfig:"EXPRESSION_MAX_LENGTH" default:"256"`
}

// GeneratorConfig holds bigram generator settings.
type GeneratorConfig struct {
	Length int `envconfig:"GENERATOR_LENGTH" default:"20"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// LoadDotEnv reads variables from the given .env files into the process
// environment without overriding values that are already set. Missing files
// are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:               "5001",
			Host:               "127.0.0.1",
			StaticDir:          "web/static",
			ShutdownTimeout:    10 * time.Second,
			CompressionEnabled: true,
			CORSOrigins:        []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 20,
			Burst:             40,
			Enabled:           false,
			Scope:             "ip",
		},
		Expression: ExpressionConfig{
			Timeout:   2 * time.Second,
			MaxLength: 256,
		},
		Generator: GeneratorConfig{
			Length: 20,
		},
	}
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}
