package redisfactory

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gitlab.com/velorent/booking-widget/internal/config"
)

// Sessions and the vault get their own connections so a slow vault write can
// never hold up form interaction.

type Factory struct {
	sessionCache *redis.Client
	vaultCache   *redis.Client
}

func New(cfg config.Redis) (*Factory, error) {
	sessionOpt, err := redis.ParseURL(cfg.SessionURI)
	if err != nil {
		return nil, &config.ConfigError{Setting: "SESSION_REDIS_URI", Reason: err.Error()}
	}

	tuneTimeouts(sessionOpt)
	sessionCache := redis.NewClient(sessionOpt)

	vaultOpt, err := redis.ParseURL(cfg.VaultURI)
	if err != nil {
		return nil, &config.ConfigError{Setting: "VAULT_REDIS_URI", Reason: err.Error()}
	}

	tuneTimeouts(vaultOpt)
	vaultCache := redis.NewClient(vaultOpt)

	return &Factory{
		sessionCache: sessionCache,
		vaultCache:   vaultCache,
	}, nil
}

func tuneTimeouts(opt *redis.Options) {
	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
}

func (f *Factory) SessionClient() *redis.Client {
	return f.sessionCache
}

func (f *Factory) VaultClient() *redis.Client {
	return f.vaultCache
}
