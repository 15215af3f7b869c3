package quote

import (
	"math"
	"strings"

	"gitlab.com/velorent/booking-widget/internal/schema"
)

const (
	weeklyDiscountRate = 0.35
	dailyDiscountRate  = 0.10
	daysPerWeek        = 7
)

// Models qualifying for the single day discount, matched as substrings of the
// catalog model name.
var singleDayDiscountModels = []string{
	"Pulsar 150",
	"Apache RTR",
}

func qualifiesForSingleDayDiscount(vehicleModel string) bool {
	for _, model := range singleDayDiscountModels {
		if strings.Contains(vehicleModel, model) {
			return true
		}
	}

	return false
}

// Calculate derives the price quote for the active booking target. It is a
// pure function: identical inputs always produce the identical quote.
//
// Weekly bookings get a flat 35% discount unconditionally. Daily bookings get
// 10% off only for a single day on a qualifying model. The two paths are
// mutually exclusive through the booking type, so discounts never stack.
func Calculate(pricePerDay float64, bookingType schema.BookingType, dayCount int, weekCount int, vehicleModel string) schema.PriceQuote {
	// No vehicle selected yet: the documented default is a zero quote.
	if pricePerDay <= 0 {
		return schema.PriceQuote{}
	}

	if bookingType == schema.BookingTypeWeekly {
		if weekCount <= 0 {
			return schema.PriceQuote{}
		}

		originalPrice := pricePerDay * float64(weekCount) * daysPerWeek
		totalPrice := math.Round(originalPrice * (1 - weeklyDiscountRate))

		return schema.PriceQuote{
			PricePerDay:           schema.RoundedFloat(pricePerDay),
			OriginalPrice:         schema.RoundedFloat(originalPrice),
			TotalPrice:            schema.RoundedFloat(totalPrice),
			Savings:               schema.RoundedFloat(originalPrice - totalPrice),
			WeeklyDiscountApplied: true,
		}
	}

	if dayCount <= 0 {
		return schema.PriceQuote{}
	}

	originalPrice := pricePerDay * float64(dayCount)
	totalPrice := originalPrice
	discountApplied := false

	if dayCount == 1 && qualifiesForSingleDayDiscount(vehicleModel) {
		totalPrice = math.Round(originalPrice * (1 - dailyDiscountRate))
		discountApplied = true
	}

	return schema.PriceQuote{
		PricePerDay:          schema.RoundedFloat(pricePerDay),
		OriginalPrice:        schema.RoundedFloat(originalPrice),
		TotalPrice:           schema.RoundedFloat(totalPrice),
		Savings:              schema.RoundedFloat(originalPrice - totalPrice),
		DailyDiscountApplied: discountApplied,
	}
}
