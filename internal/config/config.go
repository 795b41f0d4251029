package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all environment backed configuration for therapy-api.
type Config struct {
	// HTTP Server
	HTTPPort    int           `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int           `env:"METRICS_PORT" envDefault:"9091"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// PostgreSQL
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// Redis (optional; enables distributed per-user locking)
	RedisURL string `env:"REDIS_URL"`

	// Auth
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"your-secret-key"`
	TokenLifetime time.Duration `env:"TOKEN_LIFETIME" envDefault:"24h"`

	// AI provider (OpenAI-compatible chat completions endpoint)
	AIAPIKey     string        `env:"AI_API_KEY"`
	AIBaseURL    string        `env:"AI_BASE_URL" envDefault:"https://api.avalai.ir/v1"`
	AIModelName  string        `env:"AI_MODEL_NAME" envDefault:"gemini-2.5-pro"`
	AICallBudget time.Duration `env:"AI_CALL_BUDGET" envDefault:"120s"`

	// Usage rollup
	UsageRollupEnabled bool   `env:"USAGE_ROLLUP_ENABLED" envDefault:"true"`
	UsageRollupCron    string `env:"USAGE_ROLLUP_CRON" envDefault:"10 0 * * *"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"therapy-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"aramesh"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load parses environment variables into Config and performs minimal
// validation. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.AIModelName = strings.TrimSpace(cfg.AIModelName)
	if cfg.AIModelName == "" {
		cfg.AIModelName = "gemini-2.5-pro"
	}

	return cfg, nil
}
