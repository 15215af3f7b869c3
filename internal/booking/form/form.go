package form

import (
	"errors"
	"strconv"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"gitlab.com/velorent/booking-widget/internal/booking/validate"
	"gitlab.com/velorent/booking-widget/internal/schema"
)

// State is the explicit widget lifecycle. Transitions only happen through the
// event methods below, never by writing fields directly.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateConfirmed  State = "confirmed"
	StateFailed     State = "failed"
)

var (
	ErrNotEditing         = errors.New("form is not in the editing state")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrUnknownField       = errors.New("unknown form field")
	ErrBadFieldValue      = errors.New("field value could not be parsed")
	ErrNotSubmitting      = errors.New("no submission is in flight")
)

// Form owns the booking request of a single widget session together with its
// validation errors and lifecycle state.
type Form struct {
	State   State                 `json:"state"`
	Request schema.BookingRequest `json:"request"`
	Errors  schema.FieldErrors    `json:"errors"`
}

// Open resets the form to its defaults, the same way the modal resets when it
// transitions from closed to open.
func Open() Form {
	return Form{
		State: StateEditing,
		Request: schema.BookingRequest{
			BookingType: schema.BookingTypeDaily,
			DayCount:    1,
		},
		Errors: schema.FieldErrors{},
	}
}

// SetField applies one field change from the widget. The field's previous
// validation error is cleared the moment its value changes, and the return
// date is recomputed whenever the pickup date or the active duration moves.
func (f *Form) SetField(name, value string) error {
	if f.State != StateEditing {
		if f.State == StateSubmitting {
			return ErrSubmissionInFlight
		}
		return ErrNotEditing
	}

	switch name {
	case "customerName":
		f.Request.CustomerName = value
	case "contactNumber":
		f.Request.ContactNumber = value
	case "pickupAddress":
		f.Request.PickupAddress = value
	case "vehicleModel":
		f.Request.VehicleModel = value
	case "bookingType":
		switch schema.BookingType(value) {
		case schema.BookingTypeDaily, schema.BookingTypeWeekly:
			f.Request.BookingType = schema.BookingType(value)
		default:
			return ErrBadFieldValue
		}
	case "dayCount":
		count, err := strconv.Atoi(value)
		if err != nil {
			return ErrBadFieldValue
		}
		f.Request.DayCount = count
	case "weekCount":
		count, err := strconv.Atoi(value)
		if err != nil {
			return ErrBadFieldValue
		}
		f.Request.WeekCount = count
	case "pickupDate":
		date, err := parseDate(value)
		if err != nil {
			return ErrBadFieldValue
		}
		f.Request.PickupDate = date
	case "returnDate":
		date, err := parseDate(value)
		if err != nil {
			return ErrBadFieldValue
		}
		f.Request.ReturnDate = date
	case "pickupTime":
		f.Request.PickupTime = value
	case "returnTime":
		f.Request.ReturnTime = value
	default:
		return ErrUnknownField
	}

	delete(f.Errors, name)
	f.recalculateReturnDate(name)

	return nil
}

// recalculateReturnDate keeps the derived return date consistent with the
// pickup date and the active duration field.
func (f *Form) recalculateReturnDate(changed string) {
	switch changed {
	case "pickupDate", "dayCount", "weekCount", "bookingType":
	default:
		return
	}

	if f.Request.PickupDate.IsZero() {
		return
	}

	days := 0
	switch f.Request.BookingType {
	case schema.BookingTypeWeekly:
		if f.Request.WeekCount < 1 {
			return
		}
		days = f.Request.WeekCount * 7
	default:
		if f.Request.DayCount < 1 {
			return
		}
		days = f.Request.DayCount
	}

	f.Request.ReturnDate = openapi_types.Date{
		Time: f.Request.PickupDate.Time.AddDate(0, 0, days),
	}
	delete(f.Errors, "returnDate")
}

// BeginSubmit validates the request and moves the form into the submitting
// state. Field errors keep the form editable and block the submission.
func (f *Form) BeginSubmit() error {
	return f.BeginSubmitAt(time.Now())
}

// BeginSubmitAt is BeginSubmit with an explicit reference time for the date
// rules.
func (f *Form) BeginSubmitAt(now time.Time) error {
	if f.State == StateSubmitting {
		return ErrSubmissionInFlight
	}

	if f.State != StateEditing {
		return ErrNotEditing
	}

	f.State = StateValidating

	errs := validate.CheckAt(f.Request, now)
	if len(errs) > 0 {
		f.Errors = errs
		f.State = StateEditing
		return nil
	}

	f.Errors = schema.FieldErrors{}
	f.State = StateSubmitting

	return nil
}

// FinishSubmit records the terminal result of the submission attempt.
func (f *Form) FinishSubmit(succeeded bool) error {
	if f.State != StateSubmitting {
		return ErrNotSubmitting
	}

	if succeeded {
		f.State = StateConfirmed
	} else {
		f.State = StateFailed
	}

	return nil
}

// Retry returns a failed form to editing with its input intact.
func (f *Form) Retry() error {
	if f.State != StateFailed {
		return ErrNotEditing
	}

	f.State = StateEditing

	return nil
}

// Close discards the form. Closing is blocked while a submission is in
// flight.
func (f *Form) Close() error {
	if f.State == StateSubmitting {
		return ErrSubmissionInFlight
	}

	return nil
}

func parseDate(value string) (openapi_types.Date, error) {
	parsed, err := time.Parse(schema.DateFormat, value)
	if err != nil {
		return openapi_types.Date{}, err
	}

	return openapi_types.Date{Time: parsed}, nil
}
