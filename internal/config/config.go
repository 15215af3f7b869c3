package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const defaultRequestTimeoutMs = 8000

// ConfigError names the setting that could not be resolved. Raised once at
// startup instead of failing deep inside a request.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Setting, e.Reason)
}

type RemoteStore struct {
	BaseURL   string
	AnonKey   string
	TimeoutMs int
}

// Configured reports whether both credentials are present. Absent credentials
// are not a startup failure: submissions fall back to the next tier instead.
func (r RemoteStore) Configured() bool {
	return r.BaseURL != "" && r.AnonKey != ""
}

// AnonKeyExpiry parses the anonymous key as an unverified JWT and returns its
// expiry, so startup can warn about a key that is about to lapse.
func (r RemoteStore) AnonKeyExpiry() (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(r.AnonKey, &claims)
	if err != nil {
		return time.Time{}, err
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("anon key carries no expiry claim")
	}

	return claims.ExpiresAt.Time, nil
}

type Relay struct {
	URL       string
	TimeoutMs int
}

type Redis struct {
	SessionURI string
	VaultURI   string
}

type Config struct {
	Port        string
	LogLevel    string
	RemoteStore RemoteStore
	Relay       Relay
	Redis       Redis
}

func Load() (Config, error) {
	cfg := Config{
		Port:     os.Getenv("PORT"),
		LogLevel: os.Getenv("LOG_LEVEL"),
		RemoteStore: RemoteStore{
			BaseURL:   os.Getenv("REMOTE_STORE_URL"),
			AnonKey:   os.Getenv("REMOTE_STORE_ANON_KEY"),
			TimeoutMs: envInt("REMOTE_STORE_TIMEOUT_MS", defaultRequestTimeoutMs),
		},
		Relay: Relay{
			URL:       os.Getenv("FORM_RELAY_URL"),
			TimeoutMs: envInt("FORM_RELAY_TIMEOUT_MS", defaultRequestTimeoutMs),
		},
		Redis: Redis{
			SessionURI: os.Getenv("SESSION_REDIS_URI"),
			VaultURI:   os.Getenv("VAULT_REDIS_URI"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.Redis.SessionURI == "" {
		return Config{}, &ConfigError{Setting: "SESSION_REDIS_URI", Reason: "is required"}
	}

	if cfg.Redis.VaultURI == "" {
		return Config{}, &ConfigError{Setting: "VAULT_REDIS_URI", Reason: "is required"}
	}

	if cfg.RemoteStore.BaseURL != "" && cfg.RemoteStore.AnonKey == "" {
		return Config{}, &ConfigError{Setting: "REMOTE_STORE_ANON_KEY", Reason: "is required when REMOTE_STORE_URL is set"}
	}

	return cfg, nil
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
