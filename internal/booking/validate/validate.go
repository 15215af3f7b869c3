package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gitlab.com/velorent/booking-widget/internal/schema"
)

const (
	nameMinLength    = 2
	nameMaxLength    = 60
	addressMinLength = 10
	maxDayCount      = 30
	maxWeekCount     = 12

	// Weekly bookings tolerate a small drift between the picked return date
	// and weekCount*7 days.
	weeklyToleranceDays = 2
)

var (
	namePattern = regexp.MustCompile(`^[A-Za-z ]+$`)

	// 10 digit mobile number, first significant digit 6-9, optional country
	// code prefix.
	contactPattern    = regexp.MustCompile(`^(\+?91|0)?[6-9][0-9]{9}$`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Check validates the request against the policy of its booking type.
func Check(r schema.BookingRequest) schema.FieldErrors {
	return CheckAt(r, time.Now())
}

// CheckAt is Check with an explicit reference time, keeping the validator a
// pure function.
func CheckAt(r schema.BookingRequest, now time.Time) schema.FieldErrors {
	errs := schema.FieldErrors{}

	checkName(r, errs)
	checkContact(r, errs)
	checkAddress(r, errs)

	if r.BookingType == schema.BookingTypeWeekly {
		checkWeekly(r, now, errs)
	} else {
		checkDaily(r, now, errs)
	}

	return errs
}

func checkName(r schema.BookingRequest, errs schema.FieldErrors) {
	name := strings.TrimSpace(r.CustomerName)

	if name == "" {
		errs["customerName"] = "Name is required"
		return
	}

	if len(name) < nameMinLength || len(name) > nameMaxLength {
		errs["customerName"] = fmt.Sprintf("Name must be between %d and %d characters", nameMinLength, nameMaxLength)
		return
	}

	if !namePattern.MatchString(name) {
		errs["customerName"] = "Name may only contain letters and spaces"
	}
}

func checkContact(r schema.BookingRequest, errs schema.FieldErrors) {
	contact := whitespacePattern.ReplaceAllString(r.ContactNumber, "")

	if contact == "" {
		errs["contactNumber"] = "Contact number is required"
		return
	}

	if !contactPattern.MatchString(contact) {
		errs["contactNumber"] = "Enter a valid 10 digit mobile number"
	}
}

func checkAddress(r schema.BookingRequest, errs schema.FieldErrors) {
	address := strings.TrimSpace(r.PickupAddress)

	if address == "" {
		errs["pickupAddress"] = "Pickup address is required"
		return
	}

	if len(address) < addressMinLength {
		errs["pickupAddress"] = fmt.Sprintf("Address must be at least %d characters", addressMinLength)
	}
}

func checkDaily(r schema.BookingRequest, now time.Time, errs schema.FieldErrors) {
	if r.DayCount < 1 || r.DayCount > maxDayCount {
		errs["dayCount"] = fmt.Sprintf("Number of days must be between 1 and %d", maxDayCount)
	}

	pickupOk := checkPickupDate(r, now, errs)

	if !r.ReturnDate.IsZero() && pickupOk {
		if r.ReturnDate.Time.Before(r.PickupDate.Time) {
			errs["returnDate"] = "Return date cannot be before pickup date"
		}
		// A return date drifting from pickup + dayCount is corrected by the
		// form controller's auto recalculation, not reported here.
	}

	if r.PickupTime == "" {
		errs["pickupTime"] = "Pickup time is required"
	}

	if r.ReturnTime == "" {
		errs["returnTime"] = "Return time is required"
	}

	checkReturnAfterPickup(r, errs)
}

func checkWeekly(r schema.BookingRequest, now time.Time, errs schema.FieldErrors) {
	if r.WeekCount < 1 || r.WeekCount > maxWeekCount {
		errs["weekCount"] = fmt.Sprintf("Number of weeks must be between 1 and %d", maxWeekCount)
	}

	pickupOk := checkPickupDate(r, now, errs)

	if r.ReturnDate.IsZero() {
		errs["returnDate"] = "Return date is required"
		return
	}

	if !pickupOk {
		return
	}

	if !r.ReturnDate.Time.After(r.PickupDate.Time) {
		errs["returnDate"] = "Return date must be after pickup date"
		return
	}

	if r.WeekCount >= 1 && r.WeekCount <= maxWeekCount {
		expectedDays := r.WeekCount * 7
		actualDays := int(r.ReturnDate.Time.Sub(r.PickupDate.Time).Hours() / 24)

		diff := expectedDays - actualDays
		if diff < 0 {
			diff = -diff
		}

		if diff > weeklyToleranceDays {
			errs["returnDate"] = fmt.Sprintf("Return date should be about %d days after pickup for %d week(s)", expectedDays, r.WeekCount)
		}
	}
}

func checkPickupDate(r schema.BookingRequest, now time.Time, errs schema.FieldErrors) bool {
	if r.PickupDate.IsZero() {
		errs["pickupDate"] = "Pickup date is required"
		return false
	}

	// Form dates are UTC midnights, so the reference day must be UTC too.
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if r.PickupDate.Time.Before(today) {
		errs["pickupDate"] = "Pickup date cannot be in the past"
		return false
	}

	return true
}

// checkReturnAfterPickup compares the combined date-time stamps when all four
// parts are present: the return moment must strictly exceed pickup.
func checkReturnAfterPickup(r schema.BookingRequest, errs schema.FieldErrors) {
	if r.PickupDate.IsZero() || r.ReturnDate.IsZero() || r.PickupTime == "" || r.ReturnTime == "" {
		return
	}

	pickupClock, err := time.Parse(schema.TimeFormat, r.PickupTime)
	if err != nil {
		errs["pickupTime"] = "Pickup time must look like 15:04"
		return
	}

	returnClock, err := time.Parse(schema.TimeFormat, r.ReturnTime)
	if err != nil {
		errs["returnTime"] = "Return time must look like 15:04"
		return
	}

	pickupAt := r.PickupDate.Time.Add(time.Duration(pickupClock.Hour())*time.Hour + time.Duration(pickupClock.Minute())*time.Minute)
	returnAt := r.ReturnDate.Time.Add(time.Duration(returnClock.Hour())*time.Hour + time.Duration(returnClock.Minute())*time.Minute)

	if !returnAt.After(pickupAt) {
		errs["returnTime"] = "Return must be after pickup"
	}
}
