// Package config loads the server configuration from the environment.
package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPAddr       string
	BackendURL     string
	RedisAddr      string
	RedisPassword  string
	SessionSecret  string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
}

// Load reads the configuration from the environment, falling back to
// development defaults. An empty REDIS_ADDR keeps session state in memory.
func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		BackendURL:     getenv("BACKEND_URL", "http://localhost:5000"),
		RedisAddr:      getenv("REDIS_ADDR", ""),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		SessionSecret:  getenv("SESSION_SECRET", "dev-secret"),
		SessionTTL:     getenvDuration("SESSION_TTL", 12*time.Hour),
		RequestTimeout: getenvDuration("REQUEST_TIMEOUT", 30*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
