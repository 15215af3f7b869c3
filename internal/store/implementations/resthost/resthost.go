package resthost

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"gitlab.com/velorent/booking-widget/internal/config"
	"gitlab.com/velorent/booking-widget/internal/schema"
)

const (
	dailyTable  = "daily_bookings"
	weeklyTable = "weekly_bookings"
)

// restHost talks to the hosted datastore's row REST API. The two booking
// tables are plain row inserts returning the inserted row.
type restHost struct {
	cfg           config.RemoteStore
	httpTransport *http.Transport
}

func New(cfg config.RemoteStore) *restHost {
	transport := http.DefaultTransport.(*http.Transport)
	// improves durations a lot
	transport.DisableKeepAlives = true

	return &restHost{
		cfg:           cfg,
		httpTransport: transport,
	}
}

func (h *restHost) StoreDailyBooking(ctx context.Context, record schema.DailyBookingRecord, logger *zerolog.Logger) (schema.StoreResponse, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return schema.StoreResponse{Status: schema.StoreResponseStatusFailed}, err
	}

	insert := rowInsert{
		cfg:      h.cfg,
		table:    dailyTable,
		callName: schema.DailyInsertCall,
		body:     body,
		logger:   logger,
	}

	return insert.Execute(ctx, h.httpTransport), nil
}

func (h *restHost) StoreWeeklyBooking(ctx context.Context, record schema.WeeklyBookingRecord, logger *zerolog.Logger) (schema.StoreResponse, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return schema.StoreResponse{Status: schema.StoreResponseStatusFailed}, err
	}

	insert := rowInsert{
		cfg:      h.cfg,
		table:    weeklyTable,
		callName: schema.WeeklyInsertCall,
		body:     body,
		logger:   logger,
	}

	return insert.Execute(ctx, h.httpTransport), nil
}

func (h *restHost) ListRecentBookings(ctx context.Context, params schema.ListParams, logger *zerolog.Logger) (schema.BookingList, error) {
	table := dailyTable
	if params.BookingType == schema.BookingTypeWeekly {
		table = weeklyTable
	}

	listing := listingRequest{
		cfg:    h.cfg,
		table:  table,
		params: params,
		logger: logger,
	}

	return listing.Execute(ctx, h.httpTransport)
}
