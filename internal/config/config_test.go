package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, 24, cfg.Auth.TokenExpiryHours)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.App.CORSOrigins)
	assert.True(t, cfg.App.SeedOnStartup)
	assert.False(t, cfg.NATS.Enabled)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("TOKEN_EXPIRY_HOURS", "1")
	t.Setenv("SEED_ON_STARTUP", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg := New()

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 1, cfg.Auth.TokenExpiryHours)
	assert.False(t, cfg.App.SeedOnStartup)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.App.CORSOrigins)
}

func TestEnvOverrides_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("TOKEN_EXPIRY_HOURS", "soon")
	t.Setenv("SEED_ON_STARTUP", "maybe")

	cfg := New()

	assert.Equal(t, 24, cfg.Auth.TokenExpiryHours)
	assert.True(t, cfg.App.SeedOnStartup)
}
