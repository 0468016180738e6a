package reservation

import (
	"errors"

	"github.com/BruksfildServices01/troia-reservas/internal/httperr"
)

const (
	CodeNameRequired   = "name_required"
	CodeEmailRequired  = "email_required"
	CodePhoneRequired  = "phone_required"
	CodeNameTooLong    = "name_too_long"
	CodeEmailTooLong   = "email_too_long"
	CodePhoneTooLong   = "phone_too_long"
	CodeDateRequired   = "date_required"
	CodeInvalidDate    = "invalid_date"
	CodeDateInPast     = "date_in_past"
	CodePeriodRequired = "period_required"
	CodeInvalidPeriod  = "invalid_period"
	CodeInvalidGuests  = "invalid_guests"

	CodeCapacityFull      = "capacity_full"
	CodeInsufficientSeats = "insufficient_seats"
	CodeCapacityRace      = "capacity_race"
	CodeReservationFailed = "reservation_failed"
	CodeNotFound          = "reservation_not_found"
)

var (
	// ErrCapacityViolation is returned by repositories when the database
	// rejects a write because the day would exceed its capacity.
	ErrCapacityViolation = errors.New("daily capacity violation")

	ErrNotFound = httperr.ErrBusiness(CodeNotFound)
)

// IsValidationError reports whether err is one of the field validation codes.
func IsValidationError(err error) bool {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		return false
	}
	switch be.Code {
	case CodeNameRequired, CodeEmailRequired, CodePhoneRequired,
		CodeNameTooLong, CodeEmailTooLong, CodePhoneTooLong,
		CodeDateRequired, CodeInvalidDate, CodeDateInPast,
		CodePeriodRequired, CodeInvalidPeriod, CodeInvalidGuests:
		return true
	}
	return false
}
