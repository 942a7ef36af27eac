package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Corona environments
const (
	EnvLocal   = "local"
	EnvDev     = "dev"
	EnvPreprod = "preprod"
	EnvProd    = "prod"
)

// Config holds all configuration for the application
// Every environment variable is read here and nowhere else.
type Config struct {
	// API server
	Port string

	Corona CoronaConfig
	Redis  RedisConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool

	// Cron expression (with seconds) for the summary cache warm job
	WarmSchedule string
}

// CoronaConfig holds the Corona registry connection settings
type CoronaConfig struct {
	Env         string
	BaseURL     string
	Token       string
	Timeout     time.Duration
	RateLimit   float64 // requests per second, 0 disables throttling
	RateBurst   int
	Concurrency int // parallel asset resolutions
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
	CacheTTL time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	loadEnvFile()

	env := getEnv("CORONA_ENV", EnvDev)

	cfg := &Config{
		Port: getEnv("PORT", "8089"),

		Corona: CoronaConfig{
			Env:         env,
			BaseURL:     getEnv("CORONA_BASE_URL", DefaultBaseURL(env)),
			Token:       getEnv("CORONA_TOKEN", ""),
			Timeout:     getEnvAsDuration("CORONA_TIMEOUT", "30s"),
			RateLimit:   getEnvAsFloat("CORONA_RATE_LIMIT", 10),
			RateBurst:   getEnvAsInt("CORONA_RATE_BURST", 5),
			Concurrency: getEnvAsInt("CORONA_CONCURRENCY", 8),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			CacheTTL: getEnvAsDuration("CACHE_TTL", "10m"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),

		WarmSchedule: getEnv("WARM_SCHEDULE", "0 0 6 * * *"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// DefaultBaseURL returns the Corona API root for an environment
func DefaultBaseURL(env string) string {
	return fmt.Sprintf("http://corona.limejump.%s:8202/api/", env)
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	switch c.Corona.Env {
	case EnvLocal, EnvDev, EnvPreprod, EnvProd:
	default:
		return fmt.Errorf("CORONA_ENV must be one of: local, dev, preprod, prod")
	}

	if c.Corona.Token == "" {
		return fmt.Errorf("CORONA_TOKEN is required")
	}

	if c.Corona.Concurrency < 1 {
		return fmt.Errorf("CORONA_CONCURRENCY must be at least 1")
	}

	if c.Corona.RateLimit < 0 {
		return fmt.Errorf("CORONA_RATE_LIMIT must not be negative")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
