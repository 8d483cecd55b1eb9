package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port               string
	AllowedOrigins     []string
	FrontendURL        string
	RNGSeed            int64
	SessionIdleTimeout time.Duration
	CleanupInterval    time.Duration
	GinMode            string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + CSV values)
	allowedOrigins := []string{frontendURL}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" && trimmed != frontendURL {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// 0 seeds every game from the clock
	rngSeed := GetEnvAsInt64("RNG_SEED", 0)

	idleTimeout := GetEnvAsDuration("SESSION_IDLE_TIMEOUT_MINUTES", 30*time.Minute, time.Minute)
	cleanupInterval := GetEnvAsDuration("CLEANUP_INTERVAL_MINUTES", 5*time.Minute, time.Minute)

	AppConfig = &Config{
		Port:               port,
		AllowedOrigins:     allowedOrigins,
		FrontendURL:        frontendURL,
		RNGSeed:            rngSeed,
		SessionIdleTimeout: idleTimeout,
		CleanupInterval:    cleanupInterval,
		GinMode:            GetEnv("GIN_MODE", "release"),
	}

	return AppConfig
}

// IsOriginAllowed reports whether a browser origin may call the API.
func (c *Config) IsOriginAllowed(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("[CONFIG] Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads a count of unit from key. Non-positive values fall back to the default.
func GetEnvAsDuration(key string, defaultValue, unit time.Duration) time.Duration {
	n := GetEnvAsInt(key, -1)
	if n <= 0 {
		return defaultValue
	}
	return time.Duration(n) * unit
}
