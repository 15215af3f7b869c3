package caching

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func compressedValue(t *testing.T, value any) []byte {
	uncompressed, err := json.Marshal(value)
	assert.Nil(t, err)

	var buffer bytes.Buffer
	writer, _ := flate.NewWriter(&buffer, flate.BestSpeed)

	_, err = writer.Write(uncompressed)
	assert.Nil(t, err)
	assert.Nil(t, writer.Close())

	return buffer.Bytes()
}

func TestStore(t *testing.T) {
	t.Run("should compress and write with a ttl", func(t *testing.T) {
		value := cachedValue{Name: "slot", Count: 3}

		redisClient, mock := redismock.NewClientMock()
		mock.ExpectSet("test-key", compressedValue(t, value), time.Minute).SetVal("OK")

		cache := NewRedisCache(redisClient)
		assert.Nil(t, cache.Store(context.Background(), "test-key", value, time.Minute))
		assert.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run("should keep the key forever on a zero ttl", func(t *testing.T) {
		value := cachedValue{Name: "slot"}

		redisClient, mock := redismock.NewClientMock()
		mock.ExpectSet("test-key", compressedValue(t, value), 0).SetVal("OK")

		cache := NewRedisCache(redisClient)
		assert.Nil(t, cache.Store(context.Background(), "test-key", value, 0))
		assert.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run("should surface redis write errors", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.Regexp().ExpectSet("test-key", `(?s).*`, 0).SetErr(errors.New("connection refused"))

		cache := NewRedisCache(redisClient)
		assert.NotNil(t, cache.Store(context.Background(), "test-key", cachedValue{}, 0))
	})
}

func TestFetch(t *testing.T) {
	t.Run("should read a stored value back", func(t *testing.T) {
		value := cachedValue{Name: "slot", Count: 3}

		redisClient, mock := redismock.NewClientMock()
		mock.ExpectGet("test-key").SetVal(string(compressedValue(t, value)))

		cache := NewRedisCache(redisClient)

		var destination cachedValue
		assert.True(t, cache.Fetch(context.Background(), "test-key", &destination))
		assert.Equal(t, value, destination)
	})

	t.Run("should miss on an absent key", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectGet("test-key").RedisNil()

		cache := NewRedisCache(redisClient)

		var destination cachedValue
		assert.False(t, cache.Fetch(context.Background(), "test-key", &destination))
	})

	t.Run("should miss on a value that does not inflate", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectGet("test-key").SetVal("plain text, never compressed")

		cache := NewRedisCache(redisClient)

		var destination cachedValue
		assert.False(t, cache.Fetch(context.Background(), "test-key", &destination))
	})
}

func TestForget(t *testing.T) {
	t.Run("should delete the key", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectDel("test-key").SetVal(1)

		cache := NewRedisCache(redisClient)
		assert.Nil(t, cache.Forget(context.Background(), "test-key"))
		assert.Nil(t, mock.ExpectationsWereMet())
	})
}
