package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultAPIKey is the placeholder secret used when API_KEY is unset.
// Any real deployment must override it.
const DefaultAPIKey = "mysecret123"

type Config struct {
	Port        string
	APIKey      string
	LogLevel    string
	Environment string
	CORSOrigins string

	RateLimitMax      int
	RateLimitWindow   time.Duration
	RateLimitRedisURL string

	YouTubeAPIKey    string
	SearchFetchLimit int64
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3000"),
		APIKey:      getEnv("API_KEY", DefaultAPIKey),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RateLimitMax:      getEnvInt("RATE_LIMIT_MAX", 60),
		RateLimitWindow:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		RateLimitRedisURL: getEnv("RATE_LIMIT_REDIS_URL", ""),

		YouTubeAPIKey:    getEnv("YOUTUBE_API_KEY", ""),
		SearchFetchLimit: int64(getEnvInt("SEARCH_FETCH_LIMIT", 20)),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns fallback when the variable is unset, unparsable or not positive.
func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
