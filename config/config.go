package config

import (
	"os"
	"strconv"
	"time"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// LoadServerConfig reads the server settings from the environment.
func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            GetEnvOrDefault("PORT", "8080"),
		ReadTimeout:     getDurationSeconds("SERVER_READ_TIMEOUT", 15),
		WriteTimeout:    getDurationSeconds("SERVER_WRITE_TIMEOUT", 15),
		IdleTimeout:     getDurationSeconds("SERVER_IDLE_TIMEOUT", 60),
		ShutdownTimeout: getDurationSeconds("SERVER_SHUTDOWN_TIMEOUT", 30),
	}
}

// GetEnvOrDefault returns the environment variable value or a default
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationSeconds(key string, defaultSeconds int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(defaultSeconds) * time.Second
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return time.Duration(defaultSeconds) * time.Second
	}
	return time.Duration(seconds) * time.Second
}
