package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gitlab.com/velorent/booking-widget/internal/booking/form"
	"gitlab.com/velorent/booking-widget/internal/tools/caching"
)

const (
	keyPrefix = "widget:session:"

	// An abandoned widget session expires on its own.
	TTL = 30 * time.Minute
)

// Store keeps widget form state between events. State lives in redis so the
// widget backend itself stays stateless; concurrent tabs on the same session
// are last-write-wins.
type Store struct {
	cache *caching.Cacher
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{
		cache: caching.NewRedisCache(redisClient),
	}
}

func NewID() string {
	return uuid.New().String()
}

func (s *Store) Load(ctx context.Context, id string) (form.Form, bool) {
	var f form.Form
	ok := s.cache.Fetch(ctx, keyPrefix+id, &f)
	return f, ok
}

func (s *Store) Save(ctx context.Context, id string, f form.Form) error {
	return s.cache.Store(ctx, keyPrefix+id, f, TTL)
}

func (s *Store) Drop(ctx context.Context, id string) error {
	return s.cache.Forget(ctx, keyPrefix+id)
}
