package schema

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const StatusPending = "pending"

// DailyBookingRecord is the row shape of the remote daily_bookings table.
// Built once at submission time and never mutated afterwards.
type DailyBookingRecord struct {
	CustomerName  string              `json:"customer_name"`
	ContactNumber string              `json:"contact_number"`
	PickupAddress string              `json:"pickup_address"`
	VehicleModel  string              `json:"vehicle_model"`
	DayCount      int                 `json:"day_count"`
	PickupDate    *openapi_types.Date `json:"pickup_date,omitempty"`
	ReturnDate    *openapi_types.Date `json:"return_date,omitempty"`
	PickupTime    string              `json:"pickup_time,omitempty"`
	ReturnTime    string              `json:"return_time,omitempty"`
	PricePerDay   RoundedFloat        `json:"price_per_day"`
	TotalPrice    RoundedFloat        `json:"total_price"`
	Status        string              `json:"status"`
}

// WeeklyBookingRecord is the row shape of the remote weekly_bookings table.
type WeeklyBookingRecord struct {
	CustomerName  string              `json:"customer_name"`
	ContactNumber string              `json:"contact_number"`
	PickupAddress string              `json:"pickup_address"`
	VehicleModel  string              `json:"vehicle_model"`
	WeekCount     int                 `json:"week_count"`
	PickupDate    *openapi_types.Date `json:"pickup_date,omitempty"`
	ReturnDate    *openapi_types.Date `json:"return_date,omitempty"`
	PricePerDay   RoundedFloat        `json:"price_per_day"`
	OriginalPrice RoundedFloat        `json:"original_price"`
	TotalPrice    RoundedFloat        `json:"total_price"`
	Savings       RoundedFloat        `json:"savings"`
	Status        string              `json:"status"`
}

// RelayPayload is the simplified shape sent to the form relay endpoint and
// saved to the local vault when remote writes fail.
type RelayPayload struct {
	CustomerName  string       `json:"customer_name"`
	ContactNumber string       `json:"contact_number"`
	PickupAddress string       `json:"pickup_address"`
	VehicleModel  string       `json:"vehicle_model"`
	BookingType   BookingType  `json:"booking_type"`
	RentalDays    int          `json:"rental_days"`
	PickupDate    string       `json:"pickup_date,omitempty"`
	TotalPrice    RoundedFloat `json:"total_price"`
	Source        string       `json:"source"`
}

// VaultEntry augments a relay payload with the locally generated identifier
// and the save timestamp. The "local-" prefix distinguishes vault entries
// from server issued references.
type VaultEntry struct {
	RelayPayload
	LocalID string    `json:"local_id"`
	SavedAt time.Time `json:"saved_at"`
}

type StoreResponseStatus string

const (
	StoreResponseStatusStored StoreResponseStatus = "STORED"
	StoreResponseStatusFailed StoreResponseStatus = "FAILED"
)

// StoreResponse is the outcome of a single remote store write.
type StoreResponse struct {
	Status          StoreResponseStatus `json:"status"`
	RemoteReference string              `json:"remoteReference,omitempty"`
	Errors          *TierErrors         `json:"errors,omitempty"`
	RemoteCalls     *RemoteCalls        `json:"remoteCalls,omitempty"`
}

// StoredBooking is the subset of remote row columns surfaced by the
// diagnostics listing.
type StoredBooking struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customer_name"`
	VehicleModel string `json:"vehicle_model"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type ListParams struct {
	BookingType BookingType
	Limit       int
}

type BookingList struct {
	Bookings    []StoredBooking `json:"bookings"`
	Errors      *TierErrors     `json:"errors,omitempty"`
	RemoteCalls *RemoteCalls    `json:"remoteCalls,omitempty"`
}
