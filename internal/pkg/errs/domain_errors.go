package errs

import "errors"

// Sentinel errors shared across the usecase layers.
var (
	// Slot errors
	ErrSlotNotFound  = errors.New("slot not found")
	ErrSlotExhausted = errors.New("slot exhausted")

	// Booking errors
	ErrBookingNotFound       = errors.New("booking not found")
	ErrIntentAlreadyAttached = errors.New("payment intent already attached")

	// Webhook errors
	ErrAuthenticationFailed = errors.New("webhook authentication failed")

	// Gateway / store errors
	ErrUpstreamFailure = errors.New("upstream failure")

	// Booking completed but the credit grant did not land; resolved by the
	// reconciliation sweep, never by an automatic re-grant.
	ErrInconsistent = errors.New("booking and credit ledger inconsistent")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
