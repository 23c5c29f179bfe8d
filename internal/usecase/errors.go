package usecase

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrOwnItemBooking is deliberately a not-found-kind error: owners
	// probing for their own items must not learn anything from the
	// response shape. Intentional contract carried over from the
	// original service, not a bug.
	ErrOwnItemBooking = errors.New("cannot book own item")

	ErrItemUnavailable    = errors.New("item is unavailable for booking")
	ErrNotItemOwner       = errors.New("item can only be edited by its owner")
	ErrRequestImmutable   = errors.New("originating request cannot be changed")
	ErrNoCompletedBooking = errors.New("no completed approved booking for this item")
	ErrDuplicateEmail     = errors.New("email is already in use")
	ErrUserHasActivity    = errors.New("user still holds items or bookings")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
