package schema

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

type BookingType string

const (
	BookingTypeDaily  BookingType = "daily"
	BookingTypeWeekly BookingType = "weekly"
)

// BookingRequest is the transient form state of one widget session. It is
// owned by the form controller and never shared between sessions.
type BookingRequest struct {
	CustomerName  string             `json:"customerName"`
	ContactNumber string             `json:"contactNumber"`
	PickupAddress string             `json:"pickupAddress"`
	VehicleModel  string             `json:"vehicleModel"`
	BookingType   BookingType        `json:"bookingType"`
	DayCount      int                `json:"dayCount,omitempty"`
	WeekCount     int                `json:"weekCount,omitempty"`
	PickupDate    openapi_types.Date `json:"pickupDate"`
	ReturnDate    openapi_types.Date `json:"returnDate"`
	PickupTime    string             `json:"pickupTime,omitempty"`
	ReturnTime    string             `json:"returnTime,omitempty"`
}

// Duration returns the active duration field selected by the booking type.
func (r BookingRequest) Duration() int {
	if r.BookingType == BookingTypeWeekly {
		return r.WeekCount
	}
	return r.DayCount
}

// RentalDays returns the booked length in days.
func (r BookingRequest) RentalDays() int {
	if r.BookingType == BookingTypeWeekly {
		return r.WeekCount * 7
	}
	return r.DayCount
}

// FieldErrors maps a form field name to a human readable message.
// A request is valid iff the map is empty.
type FieldErrors map[string]string

type PriceQuote struct {
	PricePerDay           RoundedFloat `json:"pricePerDay"`
	OriginalPrice         RoundedFloat `json:"originalPrice"`
	TotalPrice            RoundedFloat `json:"totalPrice"`
	Savings               RoundedFloat `json:"savings"`
	DailyDiscountApplied  bool         `json:"dailyDiscountApplied"`
	WeeklyDiscountApplied bool         `json:"weeklyDiscountApplied"`
}
