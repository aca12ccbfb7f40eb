package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	Environment string

	// Redis (telemetry; empty disables publishing)
	RedisURL        string
	TelemetryStream string

	// Classification tables (empty falls back to embedded defaults)
	TaxonomyPath string
	RulesPath    string

	// Batch classification
	BatchWorkers int
	BatchMaxSize int

	// CORS
	AllowedOrigins []string

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		RedisURL:        getEnv("REDIS_URL", ""),
		TelemetryStream: getEnv("TELEMETRY_STREAM", "triage:events"),

		TaxonomyPath: getEnv("TAXONOMY_PATH", ""),
		RulesPath:    getEnv("RULES_PATH", ""),

		BatchWorkers: getEnvInt("BATCH_WORKERS", 8),
		BatchMaxSize: getEnvInt("BATCH_MAX_SIZE", 500),

		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
