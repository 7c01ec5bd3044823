// Package config loads application settings from the environment. A
// local .env file is honored when present; real environment variables
// win over it.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting. SigningKey is required: the
// server refuses to start, and therefore to issue tokens, without it.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	SigningKey      string        `env:"JWT_SECRET,required,notEmpty"`
	TokenExpiration time.Duration `env:"TOKEN_EXPIRATION" envDefault:"24h"`
	DatabaseDSN     string        `env:"DATABASE_DSN" envDefault:"file:auth.db?cache=shared"`
	CORSOrigins     string        `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
}

// Load reads the optional .env file and parses the environment.
func Load() (*Config, error) {
	// missing .env is fine, the environment may be set directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
