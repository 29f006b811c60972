package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/arcbound/accountd/pkg/jwtx"
)

// Config is loaded from the environment. Defaults suit local development;
// deployments must at minimum override SECRET_KEY.
type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port         int    `env:"PORT" envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"accountd.db"`
	CORSOrigin   string `env:"CORS_ORIGIN" envDefault:"*"`

	SecretKey   string        `env:"SECRET_KEY" envDefault:"dev-only-secret-key-change-before-deploy"`
	TokenIssuer string        `env:"TOKEN_ISSUER" envDefault:"accountd"`
	AccessTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"30m"`
	RefreshTTL  time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`

	ShutdownGrace time.Duration `env:"SHUTDOWN_GRACE" envDefault:"10s"`
}

// LoadConfig parses the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if len(c.SecretKey) < jwtx.MinSecretLength {
		return fmt.Errorf("SECRET_KEY must be at least %d characters", jwtx.MinSecretLength)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	return nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
