package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Event log backends
const (
	EventBackendSQL   = "sql"
	EventBackendRedis = "redis"
)

type Config struct {
	// Server Configuration
	ServerPort string
	GinMode    string

	// Database Configuration
	DatabasePath string
	SeedPath     string // optional catalogue JSON loaded on first start

	// Logging Configuration
	LogLevel  string
	LogFormat string // "json" or "console"

	// Event log Configuration
	EventBackend string // "sql" or "redis"
	RedisAddr    string
	RedisDB      int

	// Listing defaults applied by the HTTP layer
	DefaultPopularCount int
	DefaultReviewCount  int

	MetricsEnabled bool
}

var AppConfig *Config

// LoadConfig reads configuration from the environment. A .env file in the
// working directory, if present, is loaded first; variables already set in
// the environment take precedence over it.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	AppConfig = &Config{
		ServerPort:          getEnv("PORT", "8080"),
		GinMode:             getEnv("GIN_MODE", "release"),
		DatabasePath:        getEnv("DB_PATH", "film.db"),
		SeedPath:            os.Getenv("SEED_PATH"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
		EventBackend:        strings.ToLower(getEnv("EVENT_BACKEND", EventBackendSQL)),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		DefaultPopularCount: getEnvInt("DEFAULT_POPULAR_COUNT", 10),
		DefaultReviewCount:  getEnvInt("DEFAULT_REVIEW_COUNT", 10),
		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
	}

	if err := AppConfig.Validate(); err != nil {
		return nil, err
	}
	return AppConfig, nil
}

// Validate checks the values that have no safe fallback.
func (c *Config) Validate() error {
	switch c.EventBackend {
	case EventBackendSQL, EventBackendRedis:
	default:
		return fmt.Errorf("invalid EVENT_BACKEND %q: must be %q or %q", c.EventBackend, EventBackendSQL, EventBackendRedis)
	}
	if c.DefaultPopularCount <= 0 {
		return fmt.Errorf("DEFAULT_POPULAR_COUNT must be positive, got %d", c.DefaultPopularCount)
	}
	if c.DefaultReviewCount <= 0 {
		return fmt.Errorf("DEFAULT_REVIEW_COUNT must be positive, got %d", c.DefaultReviewCount)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
