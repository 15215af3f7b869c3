package factory

import (
	"fmt"

	"gitlab.com/velorent/booking-widget/internal/config"
	"gitlab.com/velorent/booking-widget/internal/store/implementations/formrelay"
	"gitlab.com/velorent/booking-widget/internal/store/implementations/localvault"
	"gitlab.com/velorent/booking-widget/internal/store/implementations/resthost"
	"gitlab.com/velorent/booking-widget/internal/tools/redisfactory"
)

type Factory struct {
	cfg          config.Config
	redisFactory *redisfactory.Factory
	tiers        map[string]any
}

func (f *Factory) GetTier(name string) (any, error) {
	_, ok := f.tiers[name]

	if !ok {
		switch name {

		// Register all persistence tiers here
		case "resthost":
			f.tiers[name] = resthost.New(f.cfg.RemoteStore)
		case "formrelay":
			f.tiers[name] = formrelay.New(f.cfg.Relay)
		case "localvault":
			f.tiers[name] = localvault.New(f.redisFactory.VaultClient())
		default:
			return nil, fmt.Errorf("persistence tier %s not found", name)
		}
	}

	return f.tiers[name], nil
}

func NewFactory(cfg config.Config, redisFactory *redisfactory.Factory) *Factory {
	return &Factory{
		cfg:          cfg,
		redisFactory: redisFactory,
		tiers:        make(map[string]any),
	}
}
