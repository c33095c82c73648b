package config_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkoseoglu/messageboard/internal/config"
)

func TestLoadConfig_Success(t *testing.T) {
	t.Setenv("API_SERVICE_PORT", "9090")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRATION", "1800")
	t.Setenv("REFRESH_TOKEN_EXPIRATION", "604800")
	t.Setenv("RESET_PASSWORD_TOKEN_EXPIRATION", "300")
	t.Setenv("VERIFY_EMAIL_TOKEN_EXPIRATION", "7200")
	t.Setenv("AUTH_RATE_LIMIT", "5")

	cfg := config.LoadConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "9090", cfg.ApiServicePort)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, int64(1800), cfg.AccessTokenTTL)
	assert.Equal(t, int64(604800), cfg.RefreshTokenTTL)
	assert.Equal(t, int64(300), cfg.ResetPasswordTTL)
	assert.Equal(t, int64(7200), cfg.VerifyEmailTTL)
	assert.Equal(t, int64(5), cfg.AuthRateLimit)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := config.LoadConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.ApiServicePort)
	assert.Equal(t, int64(900), cfg.AccessTokenTTL)
	assert.Equal(t, int64(2592000), cfg.RefreshTokenTTL)
	assert.Equal(t, int64(600), cfg.ResetPasswordTTL)
	assert.Equal(t, int64(3600), cfg.VerifyEmailTTL)
	assert.Equal(t, int64(10), cfg.AuthRateLimit)
	assert.Equal(t, int64(60), cfg.AuthRateWindow)
	assert.Equal(t, int64(587), cfg.SMTPPort)
	assert.Empty(t, cfg.TwilioAccountSID)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRATION", "invalid")

	cfg := config.LoadConfig()

	// Falls back to the default when the value is not an integer
	assert.NotNil(t, cfg)
	assert.Equal(t, int64(900), cfg.AccessTokenTTL)
}

func TestLoadConfig_LogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")

	cfg := config.LoadConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}
