package app

import (
	"os"
	"strconv"
	"time"

	"github.com/kartikeyan-sudo/BlogXAi/pkg/tokenx"
)

type Config struct {
	AuthSecret string        // Required: HMAC secret for session tokens
	TokenTTL   time.Duration // Optional: session token lifetime (default: 24h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./blog.db)
	UploadsDir   string // Optional: directory for uploaded files (default: ./uploads)
	RedisURL     string // Optional: Redis URL for presence tracking; empty disables it
	PresenceTTL  time.Duration

	AdminEmail    string // Optional: bootstrap admin credentials, seeded at startup
	AdminPassword string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		AuthSecret:   os.Getenv("BLOG_AUTH_SECRET"),
		TokenTTL:     getEnvDurationOrDefault("BLOG_TOKEN_TTL", tokenx.DefaultTTL),
		DatabaseFile: getEnvOrDefault("BLOG_DATABASE_FILE", "blog.db"),
		UploadsDir:   getEnvOrDefault("BLOG_UPLOADS_DIR", "uploads"),
		RedisURL:     os.Getenv("BLOG_REDIS_URL"),
		PresenceTTL:  getEnvDurationOrDefault("BLOG_PRESENCE_TTL", 5*time.Minute),

		AdminEmail:    os.Getenv("BLOG_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("BLOG_ADMIN_PASSWORD"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
