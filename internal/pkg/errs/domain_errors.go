package errs

import "errors"

// Sentinel errors shared between the command and query sides. All of
// them report caller misuse or business-rule violations; none are
// retried or recovered internally.
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Item errors
	ErrItemNotFound    = errors.New("item not found")
	ErrItemUnavailable = errors.New("item is not available")

	// Booking errors
	ErrBookingNotFound      = errors.New("booking not found")
	ErrSelfBooking          = errors.New("owner cannot book their own item")
	ErrNotAuthorized        = errors.New("actor is not allowed to access this booking")
	ErrSameStatusTransition = errors.New("booking already has the requested status")
	ErrUnknownState         = errors.New("unknown booking state")
	ErrInvalidPeriod        = errors.New("invalid booking period")

	// Comment errors
	ErrCommentNotAllowed = errors.New("user has no finished booking for this item")

	// Item request errors
	ErrRequestNotFound = errors.New("item request not found")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
