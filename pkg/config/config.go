// Package config loads daybreak's configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string

	// Database. DatabaseURL selects PostgreSQL when set; otherwise the
	// embedded SQLite database at SQLitePath is used.
	DatabaseURL string
	SQLitePath  string

	// Redis caches derived timetable gaps. Empty disables the cache.
	RedisURL    string
	GapCacheTTL time.Duration

	// RabbitMQ carries domain events to other consumers. Empty disables
	// publishing.
	RabbitMQURL string

	// Enrichment
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Scheduling window
	DayStartHour int
	DayEndHour   int

	// Scoring
	PlausibleDailyMinutes int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("DAYBREAK_DB_PATH", ""),

		RedisURL:    getEnv("REDIS_URL", ""),
		GapCacheTTL: getDurationEnv("DAYBREAK_GAP_CACHE_TTL", 5*time.Minute),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", ""),

		DayStartHour: getIntEnv("DAYBREAK_DAY_START_HOUR", 8),
		DayEndHour:   getIntEnv("DAYBREAK_DAY_END_HOUR", 22),

		PlausibleDailyMinutes: getIntEnv("DAYBREAK_PLAUSIBLE_DAILY_MINUTES", 120),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsePostgres reports whether a PostgreSQL connection string is configured.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
