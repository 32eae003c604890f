package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "JWKS_URL", "SESSION_TTL", "SESSION_CACHE_SIZE", "DEBUG"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Empty(t, cfg.JWKSURL)
	assert.Equal(t, "user1", cfg.DevActorID)
	assert.Equal(t, 256, cfg.SessionCacheSize)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("SESSION_CACHE_SIZE", "not-a-number")
	t.Setenv("DEBUG", "")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 256, cfg.SessionCacheSize, "invalid ints fall back to the default")
	assert.False(t, cfg.Debug, "prod defaults debug off")
}
