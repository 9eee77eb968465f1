package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"miniapp-auth-backend/internal/common/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123456:test-token")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "123456:test-token", cfg.Telegram.BotToken)
	assert.Equal(t, 24*time.Hour, cfg.Auth.MaxInitDataAge)
	assert.False(t, cfg.Auth.EnforceMaxAge)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, 5*time.Minute, cfg.Cache.ProfileTTL)
}

func TestLoadRequiresBotToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123456:test-token")
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("INIT_DATA_MAX_AGE", "1h")
	t.Setenv("INIT_DATA_ENFORCE_MAX_AGE", "true")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, time.Hour, cfg.Auth.MaxInitDataAge)
	assert.True(t, cfg.Auth.EnforceMaxAge)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.Origins)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123456:test-token")
	t.Setenv("STORAGE_DRIVER", "mysql")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
}
