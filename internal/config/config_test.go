package config_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gitlab.com/velorent/booking-widget/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("SESSION_REDIS_URI", "redis://localhost:6379/0")
	t.Setenv("VAULT_REDIS_URI", "redis://localhost:6379/1")
}

func unsignedToken(t *testing.T, claims map[string]interface{}) string {
	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	assert.Nil(t, err)

	payload, err := json.Marshal(claims)
	assert.Nil(t, err)

	encode := base64.RawURLEncoding.EncodeToString

	return encode(header) + "." + encode(payload) + "."
}

func TestLoad(t *testing.T) {
	t.Run("should apply defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := config.Load()

		assert.Nil(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 8000, cfg.RemoteStore.TimeoutMs)
		assert.Equal(t, 8000, cfg.Relay.TimeoutMs)
		assert.False(t, cfg.RemoteStore.Configured())
	})

	t.Run("should read the full environment", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("REMOTE_STORE_URL", "https://example.invalid")
		t.Setenv("REMOTE_STORE_ANON_KEY", "test-anon-key")
		t.Setenv("REMOTE_STORE_TIMEOUT_MS", "2500")
		t.Setenv("FORM_RELAY_URL", "https://relay.invalid/f/abc")
		t.Setenv("FORM_RELAY_TIMEOUT_MS", "3500")

		cfg, err := config.Load()

		assert.Nil(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "https://example.invalid", cfg.RemoteStore.BaseURL)
		assert.Equal(t, 2500, cfg.RemoteStore.TimeoutMs)
		assert.Equal(t, "https://relay.invalid/f/abc", cfg.Relay.URL)
		assert.Equal(t, 3500, cfg.Relay.TimeoutMs)
		assert.True(t, cfg.RemoteStore.Configured())
	})

	t.Run("should fall back on an unparsable timeout", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REMOTE_STORE_TIMEOUT_MS", "soon")

		cfg, err := config.Load()

		assert.Nil(t, err)
		assert.Equal(t, 8000, cfg.RemoteStore.TimeoutMs)
	})

	t.Run("should require the session redis uri", func(t *testing.T) {
		t.Setenv("SESSION_REDIS_URI", "")
		t.Setenv("VAULT_REDIS_URI", "redis://localhost:6379/1")

		_, err := config.Load()

		var configError *config.ConfigError
		assert.ErrorAs(t, err, &configError)
		assert.Equal(t, "SESSION_REDIS_URI", configError.Setting)
	})

	t.Run("should require the vault redis uri", func(t *testing.T) {
		t.Setenv("SESSION_REDIS_URI", "redis://localhost:6379/0")
		t.Setenv("VAULT_REDIS_URI", "")

		_, err := config.Load()

		var configError *config.ConfigError
		assert.ErrorAs(t, err, &configError)
		assert.Equal(t, "VAULT_REDIS_URI", configError.Setting)
	})

	t.Run("should require the anon key once a remote url is set", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REMOTE_STORE_URL", "https://example.invalid")
		t.Setenv("REMOTE_STORE_ANON_KEY", "")

		_, err := config.Load()

		var configError *config.ConfigError
		assert.ErrorAs(t, err, &configError)
		assert.Equal(t, "REMOTE_STORE_ANON_KEY", configError.Setting)
	})
}

func TestAnonKeyExpiry(t *testing.T) {
	t.Run("should read the expiry claim", func(t *testing.T) {
		expiry := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
		store := config.RemoteStore{
			AnonKey: unsignedToken(t, map[string]interface{}{"exp": expiry.Unix()}),
		}

		parsed, err := store.AnonKeyExpiry()

		assert.Nil(t, err)
		assert.Equal(t, expiry.Unix(), parsed.Unix())
	})

	t.Run("should fail on a key without an expiry claim", func(t *testing.T) {
		store := config.RemoteStore{
			AnonKey: unsignedToken(t, map[string]interface{}{"role": "anon"}),
		}

		_, err := store.AnonKeyExpiry()

		assert.NotNil(t, err)
	})

	t.Run("should fail on a key that is not a token at all", func(t *testing.T) {
		store := config.RemoteStore{AnonKey: "not-a-token"}

		_, err := store.AnonKeyExpiry()

		assert.NotNil(t, err)
	})
}
