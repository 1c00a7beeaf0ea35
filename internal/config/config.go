package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds everything the server reads from the environment. Values left
// unset fall back to the defaults below.
type Config struct {
	Port               int
	GinMode            string
	LogLevel           string
	CORSAllowedOrigins []string
	MaxUploadBytes     int64
}

func Load() Config {
	return Config{
		Port:               envInt("PORT", 8080),
		GinMode:            envString("GIN_MODE", "debug"),
		LogLevel:           envString("LOG_LEVEL", "info"),
		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		MaxUploadBytes:     int64(envInt("MAX_UPLOAD_MB", 10)) << 20,
	}
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
