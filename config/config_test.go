package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ADMIN_USER", "ADMIN_PASS", "CHECKOUT_CURRENCY", "BODY_LIMIT_MB", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, AppConfig)
	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.Equal(t, "changeme", cfg.AdminPass)
	assert.Equal(t, "usd", cfg.CheckoutCurrency)
	assert.Equal(t, 10, cfg.BodyLimitMB)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("BODY_LIMIT_MB", "2")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, 2, cfg.BodyLimitMB)
	assert.True(t, cfg.IsProduction())
}

func TestGetEnvInt_RejectsGarbage(t *testing.T) {
	t.Setenv("BODY_LIMIT_MB", "lots")
	assert.Equal(t, 10, getEnvInt("BODY_LIMIT_MB", 10))

	t.Setenv("BODY_LIMIT_MB", "-3")
	assert.Equal(t, 10, getEnvInt("BODY_LIMIT_MB", 10))
}
