package guard_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gitlab.com/velorent/booking-widget/internal/booking/guard"
)

func TestGuard(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	sessionID := "5aa3efcf-2f45-4f0b-bb6a-9e2b3a2d9f10"
	lockKey := "widget:submit:" + sessionID

	t.Run("should acquire a free lock", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectSetNX(lockKey, "", 2*time.Minute).SetVal(true)

		g := guard.New(redisClient, &log)
		acquired, err := g.Acquire(context.Background(), sessionID)

		assert.Nil(t, err)
		assert.True(t, acquired)
		assert.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run("should refuse a lock that is already held", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectSetNX(lockKey, "", 2*time.Minute).SetVal(false)

		g := guard.New(redisClient, &log)
		acquired, err := g.Acquire(context.Background(), sessionID)

		assert.Nil(t, err)
		assert.False(t, acquired)
	})

	t.Run("should surface redis errors on acquire", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectSetNX(lockKey, "", 2*time.Minute).SetErr(errors.New("connection refused"))

		g := guard.New(redisClient, &log)
		_, err := g.Acquire(context.Background(), sessionID)

		assert.NotNil(t, err)
	})

	t.Run("should report a held lock", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectExists(lockKey).SetVal(1)

		g := guard.New(redisClient, &log)
		held, err := g.Held(context.Background(), sessionID)

		assert.Nil(t, err)
		assert.True(t, held)
	})

	t.Run("should report a free lock", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectExists(lockKey).SetVal(0)

		g := guard.New(redisClient, &log)
		held, err := g.Held(context.Background(), sessionID)

		assert.Nil(t, err)
		assert.False(t, held)
	})

	t.Run("should surface redis errors on the held check", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectExists(lockKey).SetErr(errors.New("connection refused"))

		g := guard.New(redisClient, &log)
		_, err := g.Held(context.Background(), sessionID)

		assert.NotNil(t, err)
	})

	t.Run("should release the lock", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectDel(lockKey).SetVal(1)

		g := guard.New(redisClient, &log)
		g.Release(context.Background(), sessionID)

		assert.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run("should log and carry on when the release fails", func(t *testing.T) {
		logOut := &bytes.Buffer{}
		failLog := zerolog.New(logOut)

		redisClient, mock := redismock.NewClientMock()
		mock.ExpectDel(lockKey).SetErr(errors.New("connection refused"))

		g := guard.New(redisClient, &failLog)
		g.Release(context.Background(), sessionID)

		assert.Contains(t, logOut.String(), "Unable to release the submission lock")
	})
}
