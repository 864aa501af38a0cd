// Package config reads the server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const defaultSecret = "change-this-secret"

type Config struct {
	Port          string        `validate:"required,numeric"`
	DBPath        string        `validate:"required"`
	JWTSecret     string        `validate:"required"`
	TokenTTL      time.Duration `validate:"gt=0"`
	CORSOrigins   []string      `validate:"dive,url"`
	MigrationsDir string
	LogLevel      string        `validate:"oneof=debug info warn error"`
	Env           string        `validate:"oneof=development production"`
	TickInterval  time.Duration `validate:"gt=0"`
}

// Load reads the server configuration from the environment. An empty
// MIGRATIONS_DIR selects the migrations built into the binary. Every
// malformed variable is reported, not only the first.
func Load() (Config, error) {
	env := &environment{}
	cfg := Config{
		Port:          env.str("PORT", "8080"),
		DBPath:        env.str("DB_PATH", "./data/pausepad.db"),
		JWTSecret:     env.str("JWT_SECRET", defaultSecret),
		TokenTTL:      env.positive("TOKEN_TTL_HOURS", 72, time.Hour),
		CORSOrigins:   env.list("CORS_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:5173"}),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
		LogLevel:      strings.ToLower(env.str("LOG_LEVEL", "info")),
		Env:           strings.ToLower(env.str("APP_ENV", "production")),
		TickInterval:  env.positive("TIMER_TICK_MS", 1000, time.Millisecond),
	}
	if err := validator.New().Struct(cfg); err != nil {
		env.errs = append(env.errs, err)
	}
	if len(env.errs) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %w", errors.Join(env.errs...))
	}
	return cfg, nil
}

func (c Config) Development() bool {
	return c.Env == "development"
}

// CheckSecret rejects the built-in token secret outside development.
func (c Config) CheckSecret() error {
	if !c.Development() && c.JWTSecret == defaultSecret {
		return errors.New("JWT_SECRET must be set outside development")
	}
	return nil
}

type environment struct {
	errs []error
}

func (e *environment) str(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func (e *environment) positive(key string, fallback int, unit time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return time.Duration(fallback) * unit
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		e.errs = append(e.errs, fmt.Errorf("%s: want a positive integer, got %q", key, value))
		return time.Duration(fallback) * unit
	}
	return time.Duration(parsed) * unit
}

func (e *environment) list(key string, fallback []string) []string {
	var items []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
