package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all application configuration. Values come from an optional
// YAML file, overridden by environment variables.
type Config struct {
	Port        int    `yaml:"port" env:"PORT" env-default:"5000"`
	Environment string `yaml:"environment" env:"ENVIRONMENT" env-default:"local"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`

	// Store selects the project store: "memory" (default) or "postgres".
	Store       string `yaml:"store" env:"STORE" env-default:"memory"`
	DatabaseURL string `yaml:"-" env:"DATABASE_URL"`

	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`

	// RateLimit is requests per second per client IP. Zero disables it.
	RateLimit float64 `yaml:"rate_limit" env:"RATE_LIMIT" env-default:"0"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`

	SeedProjects []string `yaml:"seed_projects" env:"SEED_PROJECTS" env-separator:"," env-default:"Project A,Project B,Project C"`
}

// Load reads configuration from path (if non-empty) and the environment,
// then validates it.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("STORE must be %q or %q, got %q", StoreMemory, StorePostgres, c.Store)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must not be negative")
	}
	return nil
}
