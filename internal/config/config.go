package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"dutyfree-pos/internal/domain"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	AppEnv          string        `envconfig:"APP_ENV" default:"development"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8081"`
	SalesAPIURL     string        `envconfig:"SALES_API_URL" default:"http://localhost:8080/api"`
	SalesAPITimeout time.Duration `envconfig:"SALES_API_TIMEOUT" default:"15s"`
	TerminalID      string        `envconfig:"TERMINAL_ID" default:"pos-1"`
	DefaultCurrency string        `envconfig:"DEFAULT_CURRENCY" default:"XOF"`
	DBConnString    string        `envconfig:"DB_DSN"`
	RedisURL        string        `envconfig:"REDIS_URL"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// FromEnv builds Config with defaults, overridden by environment variables.
// A .env file in the working directory is loaded first when present.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the terminal cannot start with.
func (c Config) Validate() error {
	if c.TerminalID == "" {
		return errors.New("TERMINAL_ID must not be empty")
	}
	if c.SalesAPITimeout <= 0 {
		return errors.New("SALES_API_TIMEOUT must be positive")
	}
	if _, err := domain.ParseCurrency(c.DefaultCurrency); err != nil {
		return fmt.Errorf("DEFAULT_CURRENCY: %w", err)
	}
	return nil
}

// Currency is the parsed DEFAULT_CURRENCY.
func (c Config) Currency() domain.Currency {
	cur, err := domain.ParseCurrency(c.DefaultCurrency)
	if err != nil {
		return domain.CurrencyXOF
	}
	return cur
}

// JournalEnabled reports whether a journal database is configured.
func (c Config) JournalEnabled() bool {
	return c.DBConnString != ""
}
