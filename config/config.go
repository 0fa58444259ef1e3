/*
Package config loads server configuration from environment variables,
with an optional .env file for local development.

PRECEDENCE:
  Real environment variables win over .env values; .env is only a
  convenience for local runs. A missing .env file is not an error.

VARIABLES:
  PORT       HTTP server port (default 8080)
  DB_PATH    SQLite database path (default labor.db; ":memory:" works)
  ENV        Deployment environment label (default development)
  LOG_LEVEL  slog level: debug|info|warn|error (default info)
*/
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     int
	DBPath   string
	Env      string
	LogLevel slog.Level
}

// Load reads configuration from the environment, after loading .env if
// one exists.
func Load() (*Config, error) {
	// .env is optional; ignore the not-found error.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		DBPath:   getEnv("DB_PATH", "labor.db"),
		Env:      getEnv("ENV", "development"),
		LogLevel: level,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
