// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"rental-marketplace/internal/store"
)

// Config holds every setting the service reads at startup.
type Config struct {
	AppName            string        `env:"APP_NAME"             envDefault:"rentals"`
	Port               int           `env:"APP_PORT"             envDefault:"8080"`
	DBDriver           string        `env:"DB_DRIVER"            envDefault:"postgres"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	TxTimeout          time.Duration `env:"TX_TIMEOUT"           envDefault:"5s"`
	LogLevel           string        `env:"LOG_LEVEL"            envDefault:"info"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ProvisionalLease   bool          `env:"PROVISIONAL_LEASE"    envDefault:"true"`
	SlowQueryThreshold time.Duration `env:"SLOW_QUERY_THRESHOLD" envDefault:"200ms"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env cannot check on its own.
func (c Config) Validate() error {
	switch c.DBDriver {
	case store.DriverPostgres, store.DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", store.DriverPostgres, store.DriverSQLite, c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("APP_PORT out of range: %d", c.Port)
	}
	if c.TxTimeout < 0 {
		return fmt.Errorf("TX_TIMEOUT must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
