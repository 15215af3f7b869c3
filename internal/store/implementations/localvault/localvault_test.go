package localvault

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gitlab.com/velorent/booking-widget/internal/schema"
	"gitlab.com/velorent/booking-widget/internal/tools/caching"
)

func payloadTemplate() schema.RelayPayload {
	return schema.RelayPayload{
		CustomerName:  "Ravi Kumar",
		ContactNumber: "9876543210",
		PickupAddress: "12 MG Road, Bengaluru",
		VehicleModel:  "Bajaj Pulsar 150",
		BookingType:   schema.BookingTypeDaily,
		RentalDays:    1,
		PickupDate:    "2025-01-15",
		TotalPrice:    495,
		Source:        "booking-widget",
	}
}

func frozenTime() time.Time {
	return time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
}

func frozenVault(cache *caching.Cacher, localID string) *localVault {
	return &localVault{
		cache: cache,
		newID: func() string { return localID },
		now:   frozenTime,
	}
}

func compressedSlot(entries []schema.VaultEntry) ([]byte, error) {
	uncompressed, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	writer, _ := flate.NewWriter(&buffer, flate.BestSpeed)

	_, err = writer.Write(uncompressed)
	if err != nil {
		return nil, err
	}

	err = writer.Close()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func TestVaultBooking(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should start the slot with a single entry", func(t *testing.T) {
		localID := "local-5aa3efcf-2f45-4f0b-bb6a-9e2b3a2d9f10"

		expectedSlot, err := compressedSlot([]schema.VaultEntry{{
			RelayPayload: payloadTemplate(),
			LocalID:      localID,
			SavedAt:      frozenTime(),
		}})
		assert.Nil(t, err)

		redisClient, mock := redismock.NewClientMock()
		mock.ExpectGet(SlotKey).RedisNil()
		mock.ExpectSet(SlotKey, expectedSlot, 0).SetVal("OK")

		vault := frozenVault(caching.NewRedisCache(redisClient), localID)
		entry, err := vault.VaultBooking(context.Background(), payloadTemplate(), &log)

		assert.Nil(t, err)
		assert.Equal(t, localID, entry.LocalID)
		assert.Equal(t, frozenTime(), entry.SavedAt)
		assert.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run("should append to an existing slot", func(t *testing.T) {
		existing := schema.VaultEntry{
			RelayPayload: payloadTemplate(),
			LocalID:      "local-earlier",
			SavedAt:      frozenTime().Add(-time.Hour),
		}

		existingSlot, err := compressedSlot([]schema.VaultEntry{existing})
		assert.Nil(t, err)

		localID := "local-later"
		expectedSlot, err := compressedSlot([]schema.VaultEntry{existing, {
			RelayPayload: payloadTemplate(),
			LocalID:      localID,
			SavedAt:      frozenTime(),
		}})
		assert.Nil(t, err)

		redisClient, mock := redismock.NewClientMock()
		mock.ExpectGet(SlotKey).SetVal(string(existingSlot))
		mock.ExpectSet(SlotKey, expectedSlot, 0).SetVal("OK")

		vault := frozenVault(caching.NewRedisCache(redisClient), localID)
		entry, err := vault.VaultBooking(context.Background(), payloadTemplate(), &log)

		assert.Nil(t, err)
		assert.Equal(t, localID, entry.LocalID)
		assert.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run("should start over when the existing slot is unreadable", func(t *testing.T) {
		localID := "local-fresh"

		expectedSlot, err := compressedSlot([]schema.VaultEntry{{
			RelayPayload: payloadTemplate(),
			LocalID:      localID,
			SavedAt:      frozenTime(),
		}})
		assert.Nil(t, err)

		redisClient, mock := redismock.NewClientMock()
		mock.ExpectGet(SlotKey).SetVal("not a compressed slot")
		mock.ExpectSet(SlotKey, expectedSlot, 0).SetVal("OK")

		vault := frozenVault(caching.NewRedisCache(redisClient), localID)
		entry, err := vault.VaultBooking(context.Background(), payloadTemplate(), &log)

		assert.Nil(t, err)
		assert.Equal(t, localID, entry.LocalID)
		assert.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run("should fail when the slot cannot be written", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectGet(SlotKey).RedisNil()
		mock.Regexp().ExpectSet(SlotKey, `(?s).*`, 0).SetErr(errors.New("connection refused"))

		vault := frozenVault(caching.NewRedisCache(redisClient), "local-never-saved")
		_, err := vault.VaultBooking(context.Background(), payloadTemplate(), &log)

		assert.NotNil(t, err)
	})

	t.Run("should assign identifiers with the local prefix", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		mock.ExpectGet(SlotKey).RedisNil()
		mock.Regexp().ExpectSet(SlotKey, `(?s).*`, 0).SetVal("OK")

		vault := New(redisClient)
		entry, err := vault.VaultBooking(context.Background(), payloadTemplate(), &log)

		assert.Nil(t, err)
		assert.Contains(t, entry.LocalID, localIDPrefix)
	})
}
