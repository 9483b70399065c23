package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Бэкенды хранилища сессии.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config хранит конфигурацию времени выполнения для API клиента.
type Config struct {
	APIBaseURL        string
	APITimeout        time.Duration
	SessionStore      string
	SessionSQLitePath string
	SessionNamespace  string
	RedisURL          string
	DatabaseURL       string
	DBDriver          string
	LogLevel          string
	LogFormat         string
}

// Load читает необязательный .env и затем переменные окружения.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("dotenv load failed", slog.String("error", err.Error()))
	}
	return FromEnv()
}

// FromEnv читает конфигурацию только из переменных окружения.
func FromEnv() (Config, error) {
	cfg := Config{
		APIBaseURL:        envOr("API_BASE_URL", "http://localhost:8080"),
		APITimeout:        durationOr("API_TIMEOUT", 10*time.Second),
		SessionStore:      strings.ToLower(envOr("SESSION_STORE", StoreSQLite)),
		SessionSQLitePath: envOr("SESSION_SQLITE_PATH", "session.db"),
		SessionNamespace:  envOr("SESSION_NAMESPACE", "default"),
		RedisURL:          envOr("REDIS_URL", ""),
		DatabaseURL:       envOr("DATABASE_URL", ""),
		DBDriver:          strings.ToLower(envOr("DB_DRIVER", "postgres")),
		LogLevel:          envOr("LOG_LEVEL", "info"),
		LogFormat:         envOr("LOG_FORMAT", "text"),
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.DBDriver == "pq" || cfg.DBDriver == "postgresql" {
		cfg.DBDriver = "postgres"
	}

	missing := make([]string, 0, 2)
	switch cfg.SessionStore {
	case StoreMemory, StoreSQLite:
	case StoreRedis:
		if cfg.RedisURL == "" {
			missing = append(missing, "REDIS_URL")
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return Config{}, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}

	invalid := make([]string, 0, 2)
	if cfg.APITimeout <= 0 {
		invalid = append(invalid, "API_TIMEOUT")
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "pgx" {
		invalid = append(invalid, "DB_DRIVER")
	}
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		invalid = append(invalid, "API_BASE_URL")
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid env values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func durationOr(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}
