package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pausepad/internal/config"
)

var keys = []string{
	"PORT", "DB_PATH", "JWT_SECRET", "TOKEN_TTL_HOURS", "CORS_ORIGINS",
	"MIGRATIONS_DIR", "LOG_LEVEL", "APP_ENV", "TIMER_TICK_MS",
}

func clearEnv(t *testing.T) {
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Empty(t, cfg.MigrationsDir)
	assert.Len(t, cfg.CORSOrigins, 2)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Development())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("TIMER_TICK_MS", "250")
	t.Setenv("APP_ENV", "Development")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Development())
}

func TestLoadReportsEveryBadValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "development")
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")
	t.Setenv("TIMER_TICK_MS", "-5")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL_HOURS")
	assert.Contains(t, err.Error(), "TIMER_TICK_MS")
	assert.Contains(t, err.Error(), "LogLevel")
}

func TestCheckSecret(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.ErrorContains(t, cfg.CheckSecret(), "JWT_SECRET")

	t.Setenv("APP_ENV", "development")
	cfg, err = config.Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.CheckSecret())
}
