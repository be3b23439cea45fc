package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "APP_TIMEZONE", "BODY_LIMIT_BYTES", "BODY_LIMIT_MB", "JWT_SECRET_KEY", "JWT_SECRET", "DB_USER", "DB_NAME"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, 4*1024*1024, cfg.BodyLimitBytes)
	assert.Equal(t, 60*time.Second, cfg.RateLimitWindow)
	assert.Error(t, cfg.ValidateAuth())
	assert.Error(t, cfg.ValidateDatabase())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_TIMEZONE", "America/Guayaquil")
	t.Setenv("BODY_LIMIT_BYTES", "1024")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("JWT_SECRET", " fallback ")
	t.Setenv("DB_USER", "gateway")
	t.Setenv("DB_NAME", "billing")
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 1024, cfg.BodyLimitBytes)
	assert.Equal(t, "fallback", cfg.JWTSecret)
	assert.Equal(t, 60, cfg.RateLimitMax)
	assert.NoError(t, cfg.ValidateAuth())
	assert.NoError(t, cfg.ValidateDatabase())
	assert.Contains(t, cfg.DSN(), "dbname=billing")
	assert.Contains(t, cfg.DSN(), "TimeZone=America/Guayaquil")
	assert.Equal(t, "America/Guayaquil", cfg.Now().Location().String())
}

func TestLoad_BadTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.Error(t, err)
}
