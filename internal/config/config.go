package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv                string
	DBPath                string
	DBDriver              string
	RedisAddr             string
	GRPCPort              int
	GRPCReflectionEnabled bool

	ScorerBaseURL string
	ScorerAPIKey  string
	ScorerModel   string
	ScorerTimeout time.Duration

	// QueuePollSchedule is a cron spec; each tick runs one queue batch.
	QueuePollSchedule string
	QueueBatchSize    int
	QueueMaxAttempts  int
	QueueConcurrency  int

	CacheTTL time.Duration
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		DBPath:                getEnv("DB_PATH", "./data/grading.db"),
		DBDriver:              getEnv("DB_DRIVER", "sqlite3"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		GRPCPort:              getEnvInt("GRPC_PORT", 50051),
		GRPCReflectionEnabled: getEnvBool("GRPC_REFLECTION_ENABLED", false),

		ScorerBaseURL: getEnv("SCORER_BASE_URL", "http://localhost:8080"),
		ScorerAPIKey:  getEnv("SCORER_API_KEY", ""),
		ScorerModel:   getEnv("SCORER_MODEL", "grader-large"),
		ScorerTimeout: getEnvDuration("SCORER_TIMEOUT", 60*time.Second),

		QueuePollSchedule: getEnv("QUEUE_POLL_SCHEDULE", "@every 30s"),
		QueueBatchSize:    getEnvInt("QUEUE_BATCH_SIZE", 10),
		QueueMaxAttempts:  getEnvInt("QUEUE_MAX_ATTEMPTS", 3),
		QueueConcurrency:  getEnvInt("QUEUE_CONCURRENCY", 4),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
