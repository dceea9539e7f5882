package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Schedule errors
	ErrTimetableEntryNotFound = errors.New("timetable entry not found")
	ErrFacilityNotFound       = errors.New("facility not found")
	ErrInvalidSlotCode        = errors.New("invalid slot code")
	ErrSlotNoLongerOffered    = errors.New("slot no longer offered")

	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotAnAttendee   = errors.New("user is not an attendee of this booking")
	ErrCheckoutInvalid = errors.New("checkout contains unresolved problems")
	ErrPaymentRequired = errors.New("payment confirmation required")
	ErrEmptyBasket     = errors.New("basket is empty")

	// Auth errors
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
