package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.NotEmpty(t, cfg.CacheDBPath)
	assert.NotEmpty(t, cfg.SessionPath)
	assert.NotEmpty(t, cfg.APIBaseURL)
	assert.Positive(t, cfg.APITimeoutSeconds)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("CACHE_DB_PATH", "/tmp/override.db")
	t.Setenv("API_BASE_URL", "https://api.gatherly.dev/v1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override.db", cfg.CacheDBPath)
	assert.Equal(t, "https://api.gatherly.dev/v1", cfg.APIBaseURL)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Env:               "development",
		CacheDBPath:       "gatherly.db",
		SessionPath:       "session.db",
		APIBaseURL:        "http://localhost:8375/api",
		APITimeoutSeconds: 30,
	}
	require.NoError(t, valid.Validate())

	t.Run("missing cache path", func(t *testing.T) {
		cfg := valid
		cfg.CacheDBPath = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing api base url", func(t *testing.T) {
		cfg := valid
		cfg.APIBaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := valid
		cfg.APITimeoutSeconds = 0
		assert.Error(t, cfg.Validate())
	})
}
