package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "c2VjcmV0LXNpZ25pbmcta2V5")

	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.RunAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.DatabaseDSN)
	assert.Equal(t, "", cfg.DBFileName)
	assert.Equal(t, 10*time.Second, cfg.DBConnectionTimeout)
	assert.Equal(t, "cmd/bookmarks/migrations", cfg.MigrationsDir)
	assert.Equal(t, 15*time.Minute, cfg.TokenLifetime)
}

func TestConfigEnvOverridesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "c2VjcmV0LXNpZ25pbmcta2V5")
	t.Setenv("SERVER_ADDRESS", ":7000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_DSN", "env-dsn")
	t.Setenv("TOKEN_LIFETIME", "30m")

	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.RunAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "env-dsn", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, cfg.TokenLifetime)
}

func TestConfigMissingSecretIsFatal(t *testing.T) {
	_, err := New(WithDisableFlagsParsing(true))
	assert.Error(t, err)
}

func TestConfigRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("JWT_SECRET", "c2VjcmV0LXNpZ25pbmcta2V5")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := New(WithDisableFlagsParsing(true))
	assert.Error(t, err)
}
