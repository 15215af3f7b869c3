package localvault

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gitlab.com/velorent/booking-widget/internal/schema"
	"gitlab.com/velorent/booking-widget/internal/tools/caching"
)

// SlotKey is the single named slot holding the ordered list of bookings that
// could not be persisted remotely.
const SlotKey = "widget:vault:failed_bookings"

const localIDPrefix = "local-"

// localVault keeps failed payloads in one key-value slot. The slot is read,
// appended to and written back whole; concurrent writers are last-write-wins,
// acceptable for a fallback-only tier.
type localVault struct {
	cache *caching.Cacher
	newID func() string
	now   func() time.Time
}

func New(redisClient *redis.Client) *localVault {
	return &localVault{
		cache: caching.NewRedisCache(redisClient),
		newID: func() string {
			return localIDPrefix + uuid.New().String()
		},
		now: time.Now,
	}
}

func (v *localVault) VaultBooking(ctx context.Context, payload schema.RelayPayload, logger *zerolog.Logger) (schema.VaultEntry, error) {
	entries := []schema.VaultEntry{}
	v.cache.Fetch(ctx, SlotKey, &entries)

	entry := schema.VaultEntry{
		RelayPayload: payload,
		LocalID:      v.newID(),
		SavedAt:      v.now().UTC(),
	}

	entries = append(entries, entry)

	if err := v.cache.Store(ctx, SlotKey, entries, 0); err != nil {
		logger.Error().
			Err(err).
			Str("label", "local-vault").
			Msg("Unable to write the vault slot")

		return schema.VaultEntry{}, err
	}

	logger.Info().
		Str("label", "local-vault").
		Str("localId", entry.LocalID).
		Int("slotSize", len(entries)).
		Msg("Booking saved to the local vault")

	return entry, nil
}
