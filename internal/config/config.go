package config

import (
	"log/slog"
	"os"
	"strings"
)

// DefaultCount is the number of passwords generated when -n is absent or not
// a number.
const DefaultCount = 1

type Config struct {
	Env      string
	LogLevel slog.Level
}

func Load() Config {
	raw := getEnv("PASST_LOG_LEVEL", "warn")
	level, ok := parseLevel(raw)
	if !ok {
		slog.Warn("unknown PASST_LOG_LEVEL, using warn", "value", raw)
	}

	return Config{
		Env:      getEnv("PASST_ENV", "production"),
		LogLevel: level,
	}
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelWarn, false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
