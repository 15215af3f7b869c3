package interfaces

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/velorent/booking-widget/internal/schema"
)

type WithStoreDailyBooking interface {
	StoreDailyBooking(context.Context, schema.DailyBookingRecord, *zerolog.Logger) (schema.StoreResponse, error)
}

type WithStoreWeeklyBooking interface {
	StoreWeeklyBooking(context.Context, schema.WeeklyBookingRecord, *zerolog.Logger) (schema.StoreResponse, error)
}

type WithRelayBooking interface {
	RelayBooking(context.Context, schema.RelayPayload, *zerolog.Logger) error
}

type WithVaultBooking interface {
	VaultBooking(context.Context, schema.RelayPayload, *zerolog.Logger) (schema.VaultEntry, error)
}

type WithListRecentBookings interface {
	ListRecentBookings(context.Context, schema.ListParams, *zerolog.Logger) (schema.BookingList, error)
}

type WithPing interface {
	Ping(context.Context, *zerolog.Logger) error
}
