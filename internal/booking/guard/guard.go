package guard

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	lockPrefix = "widget:submit:"

	// Ceiling on how long a lock can outlive a crashed submission.
	lockTTL = 2 * time.Minute
)

// Guard is the single in-flight-submission guard: while one submission for a
// session is running no second one can start, across all service instances.
type Guard struct {
	redis *redis.Client
	log   *zerolog.Logger
}

func New(redisClient *redis.Client, log *zerolog.Logger) *Guard {
	return &Guard{
		redis: redisClient,
		log:   log,
	}
}

func (g *Guard) Acquire(ctx context.Context, sessionID string) (bool, error) {
	response := g.redis.SetNX(ctx, lockPrefix+sessionID, "", lockTTL)
	lockAcquired, err := response.Result()
	return lockAcquired, err
}

// Held reports whether a submission lock for the session is currently held,
// possibly by another service instance.
func (g *Guard) Held(ctx context.Context, sessionID string) (bool, error) {
	count, err := g.redis.Exists(ctx, lockPrefix+sessionID).Result()
	return count > 0, err
}

func (g *Guard) Release(ctx context.Context, sessionID string) {
	if err := g.redis.Del(context.Background(), lockPrefix+sessionID).Err(); err != nil {
		g.log.Err(err).
			Str("sessionId", sessionID).
			Msg("Unable to release the submission lock")
	}
}
