package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service that the caller can act on
// wraps exactly one of these; anything else is an infrastructure failure.
var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")

	ErrUnauthenticated = errors.New("unauthenticated")
)

var (
	ErrUserNotFound    = newError(ErrNotFound, "user not found")
	ErrPlaceNotFound   = newError(ErrNotFound, "place not found")
	ErrBookingNotFound = newError(ErrNotFound, "booking not found")
	ErrPhotoNotFound   = newError(ErrNotFound, "photo not found")
	ErrReviewNotFound  = newError(ErrNotFound, "review not found")
	ErrAmenityNotFound = newError(ErrNotFound, "amenity not found")
)

var (
	ErrOwnPlaceBooking        = newError(ErrValidation, "you cannot book your own place")
	ErrCheckInPast            = newError(ErrValidation, "check-in date cannot be in the past")
	ErrCheckOutBeforeCheckIn  = newError(ErrValidation, "check-out date must be after check-in date")
	ErrInvalidGuests          = newError(ErrValidation, "number of guests must be greater than 0")
	ErrTooManyGuests          = newError(ErrValidation, "number of guests exceeds the place capacity")
	ErrInvalidStatus          = newError(ErrValidation, "invalid status")
	ErrBookingNotPending      = newError(ErrValidation, "booking is not pending")
	ErrBookingNotCancellable  = newError(ErrValidation, "booking can no longer be cancelled")
	ErrReceiptUnavailable     = newError(ErrValidation, "receipt is only available for confirmed or completed bookings")
	ErrDatesUnavailable       = newError(ErrConflict, "these dates are not available")
	ErrDatesNoLongerAvailable = newError(ErrConflict, "these dates are no longer available")
)

var (
	ErrNotPlaceOwner     = newError(ErrForbidden, "only the owner of the place can do this")
	ErrNotBookingParty   = newError(ErrForbidden, "only the tenant or the owner can access this booking")
	ErrNotReviewAuthor   = newError(ErrForbidden, "you can only modify your own reviews")
	ErrInvalidLogin      = newError(ErrUnauthenticated, "invalid email or password")
	ErrEmailTaken        = newError(ErrConflict, "email already registered")
	ErrAmenityExists     = newError(ErrConflict, "amenity already exists")
	ErrAlreadyReviewed   = newError(ErrConflict, "you have already reviewed this place")
	ErrOwnPlaceReview    = newError(ErrValidation, "you cannot review your own place")
	ErrInvalidRating     = newError(ErrValidation, "rating must be between 1 and 5")
	ErrEmptyReview       = newError(ErrValidation, "review text is required")
	ErrPasswordTooShort  = newError(ErrValidation, "password must be at least 8 characters long")
	ErrInvalidEmail      = newError(ErrValidation, "invalid email format")
	ErrInvalidAmenityRef = newError(ErrValidation, "unknown amenity id")
)

type kindError struct {
	kind error
	msg  string
}

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func invalidf(format string, args ...any) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}
