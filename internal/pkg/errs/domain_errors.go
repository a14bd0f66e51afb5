package errs

import "errors"

// Sentinels shared by the command and query sides.
var (
	ErrTeeTimeNotFound     = errors.New("tee time not found")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationAccess   = errors.New("reservation belongs to another customer")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyKeyReused   = errors.New("idempotency key reused with a different request")

	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
