// Package config provides configuration loading for the studio service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// AssistantMode selects the assistant backend.
const (
	AssistantModeOllama = "ollama"
	AssistantModeMock   = "mock"
)

// Config holds all configuration for the studio service.
type Config struct {
	// Server configuration
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	ShutdownGrace time.Duration

	// CORS configuration
	CORSOrigins []string

	// Rate limiting for assistant endpoints
	RateLimitRPS   float64
	RateLimitBurst int

	// Assistant configuration
	AssistantMode    string // "ollama" or "mock"
	OllamaURL        string
	AssistantModel   string
	AssistantTimeout time.Duration

	// Demo data
	SeedDemo bool

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		// Server
		Port:          getEnv("PORT", "7080"),
		ReadTimeout:   getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:  getDuration("WRITE_TIMEOUT", 0), // 0: SSE streams must not be cut off
		ShutdownGrace: getDuration("SHUTDOWN_GRACE", 10*time.Second),

		// CORS
		CORSOrigins: getStringSlice("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),

		// Rate limiting
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 2.0),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 5),

		// Assistant
		AssistantMode:    getEnv("ASSISTANT_MODE", AssistantModeOllama),
		OllamaURL:        getEnv("OLLAMA_URL", "http://localhost:11434"),
		AssistantModel:   getEnv("ASSISTANT_MODEL", "llama3:instruct"),
		AssistantTimeout: getDuration("ASSISTANT_TIMEOUT", 90*time.Second),

		// Demo data
		SeedDemo: getBool("SEED_DEMO", false),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getStringSlice(key string, defaultVal []string) []string {
	if val := os.Getenv(key); val != "" {
		return strings.Split(val, ",")
	}
	return defaultVal
}
