// Package config reads process configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
)

type Config struct {
	Env      string
	HTTPAddr string

	// PGURL is the identity store DSN. Empty disables accounts: the server
	// runs guest-only and signup/login return an error.
	PGURL     string
	PGMaxConn int
}

func Load() Config {
	return Config{
		Env:       getEnv("APP_ENV", "dev"),
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		PGURL:     getEnv("PG_URL", ""),
		PGMaxConn: getEnvInt("PG_MAX_CONN", 10),
	}
}

// NewLogger returns a slog.Logger tuned for the environment: JSON at INFO in
// prod, text at DEBUG everywhere else.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler
	if env == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return def
}
