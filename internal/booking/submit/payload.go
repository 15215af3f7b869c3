package submit

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
	"gitlab.com/velorent/booking-widget/internal/schema"
	"gitlab.com/velorent/booking-widget/internal/tools/converting"
)

const payloadSource = "booking-widget"

// Payload shapes are built once per submission and never mutated afterwards;
// every tier receives the same logical content adapted to its own shape.

func buildDailyRecord(r schema.BookingRequest, q schema.PriceQuote) schema.DailyBookingRecord {
	record := schema.DailyBookingRecord{
		CustomerName:  r.CustomerName,
		ContactNumber: r.ContactNumber,
		PickupAddress: r.PickupAddress,
		VehicleModel:  r.VehicleModel,
		DayCount:      r.DayCount,
		PickupTime:    r.PickupTime,
		ReturnTime:    r.ReturnTime,
		PricePerDay:   q.PricePerDay,
		TotalPrice:    q.TotalPrice,
		Status:        schema.StatusPending,
	}

	record.PickupDate = datePointer(r.PickupDate)
	record.ReturnDate = datePointer(r.ReturnDate)

	return record
}

func buildWeeklyRecord(r schema.BookingRequest, q schema.PriceQuote) schema.WeeklyBookingRecord {
	record := schema.WeeklyBookingRecord{
		CustomerName:  r.CustomerName,
		ContactNumber: r.ContactNumber,
		PickupAddress: r.PickupAddress,
		VehicleModel:  r.VehicleModel,
		WeekCount:     r.WeekCount,
		PricePerDay:   q.PricePerDay,
		OriginalPrice: q.OriginalPrice,
		TotalPrice:    q.TotalPrice,
		Savings:       q.Savings,
		Status:        schema.StatusPending,
	}

	record.PickupDate = datePointer(r.PickupDate)
	record.ReturnDate = datePointer(r.ReturnDate)

	return record
}

func buildRelayPayload(r schema.BookingRequest, q schema.PriceQuote) schema.RelayPayload {
	payload := schema.RelayPayload{
		CustomerName:  r.CustomerName,
		ContactNumber: r.ContactNumber,
		PickupAddress: r.PickupAddress,
		VehicleModel:  r.VehicleModel,
		BookingType:   r.BookingType,
		RentalDays:    r.RentalDays(),
		TotalPrice:    q.TotalPrice,
		Source:        payloadSource,
	}

	if !r.PickupDate.IsZero() {
		payload.PickupDate = r.PickupDate.Time.Format(schema.DateFormat)
	}

	return payload
}

func datePointer(date openapi_types.Date) *openapi_types.Date {
	if date.IsZero() {
		return nil
	}

	return converting.PointerToValue(date)
}
