package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://onboarding@localhost/onboarding")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "UTC", cfg.Server.Timezone)
	assert.Equal(t, 5, cfg.Database.ConnectAttempts)
	assert.Equal(t, time.Duration(0), cfg.Database.ConnectBackoff)
	assert.Equal(t, 10*time.Second, cfg.Database.TxTimeout)
	assert.False(t, cfg.Validation.StrictPhone)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Auth.FunctionKeyHash)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://onboarding@db/onboarding")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_CONNECT_ATTEMPTS", "3")
	t.Setenv("DB_CONNECT_BACKOFF", "250ms")
	t.Setenv("VALIDATION_STRICT_PHONE", "true")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Database.ConnectAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.ConnectBackoff)
	assert.True(t, cfg.Validation.StrictPhone)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboarding.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL: postgres://file@db/onboarding\nLOG_LEVEL: debug\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://file@db/onboarding", cfg.Database.URL)
	assert.Equal(t, "warn", cfg.Server.LogLevel, "environment wins over file")
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		assert.ErrorContains(t, err, "DATABASE_URL is required")
	})

	t.Run("zero attempts", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://x")
		t.Setenv("DB_CONNECT_ATTEMPTS", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "DB_CONNECT_ATTEMPTS")
	})

	t.Run("unknown timezone", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://x")
		t.Setenv("APP_TIMEZONE", "Mars/Olympus_Mons")
		_, err := Load()
		assert.ErrorContains(t, err, "APP_TIMEZONE")
	})
}
