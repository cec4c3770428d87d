package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr         string
	Environment  string
	JWTSecret    string
	CORSOrigins  []string
	MaxBodyBytes int64
}

func Load() Config {
	return Config{
		Addr:         getEnv("APP_ADDR", ":8080"),
		Environment:  getEnv("APP_ENV", "development"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		CORSOrigins:  getEnvList("CORS_ORIGINS", []string{"*"}),
		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 65536)),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func (c Config) Validate() error {
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}
