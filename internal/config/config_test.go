package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, "memory", cfg.SessionBackend)
	assert.Equal(t, 12*time.Hour, cfg.AccessTTL)
	assert.Equal(t, time.Second, cfg.MockDelay)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("MOCK_DELAY", "0s")
	t.Setenv("AVAILABILITY_SEED", "99")
	t.Setenv("ACCESS_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://portal.uni.edu, https://admin.uni.edu")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.Equal(t, time.Duration(0), cfg.MockDelay)
	assert.Equal(t, int64(99), cfg.AvailabilitySeed)
	assert.Equal(t, 30*time.Minute, cfg.AccessTTL)
	assert.Equal(t, []string{"https://portal.uni.edu", "https://admin.uni.edu"}, cfg.AllowedOrigins())
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
}

func TestLoadRejectsBadOrigin(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "portal.uni.edu")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CORS_ALLOWED_ORIGINS")
}
