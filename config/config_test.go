package config_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-auth-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults apply when only the secret is set", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-signing-key")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.HTTPAddr)
		assert.Equal(t, "test-signing-key", cfg.SigningKey)
		assert.Equal(t, 24*time.Hour, cfg.TokenExpiration)
		assert.Equal(t, 100, cfg.RateLimitMax)
		assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-signing-key")
		t.Setenv("HTTP_ADDR", ":9999")
		t.Setenv("TOKEN_EXPIRATION", "1h")
		t.Setenv("RATE_LIMIT_MAX", "5")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, ":9999", cfg.HTTPAddr)
		assert.Equal(t, time.Hour, cfg.TokenExpiration)
		assert.Equal(t, 5, cfg.RateLimitMax)
	})

	t.Run("missing signing secret fails fast", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := config.Load()
		assert.Error(t, err)
	})
}
