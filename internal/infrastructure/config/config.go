package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL, default=24h"`

	Database DatabaseConfig
	Redis    RedisConfig
	PayPal   PayPalConfig
	Uploads  UploadConfig
}

type DatabaseConfig struct {
	// Path is the SQLite database file; ":memory:" for ephemeral runs.
	Path string `env:"DATABASE_PATH, default=portal.db"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type PayPalConfig struct {
	BaseURL      string `env:"PAYPAL_BASE_URL, default=https://api-m.sandbox.paypal.com"`
	ClientID     string `env:"PAYPAL_CLIENT_ID"`
	ClientSecret string `env:"PAYPAL_CLIENT_SECRET"`
}

type UploadConfig struct {
	Dir     string `env:"UPLOAD_DIR,      default=uploads"`
	BaseURL string `env:"UPLOAD_BASE_URL, default=/uploads"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
