package economy

import "errors"

// Validation errors are deterministic outcomes of current state: retrying
// without a state change reproduces them, so callers must not auto-retry.
// ErrAlreadyInProgress is retryable after a short backoff. Anything else
// coming out of the engine is a storage/transaction failure; those roll back
// completely and are safe to retry as-is.
var (
	ErrNotFound            = errors.New("position not found")
	ErrNotOwner            = errors.New("position not owned by requester")
	ErrInvalidMode         = errors.New("operation not valid for position mode")
	ErrInvalidState        = errors.New("operation not valid in current position status")
	ErrTooSoon             = errors.New("minimum collection interval not reached")
	ErrInvalidAmount       = errors.New("amount is zero at coin precision")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyInProgress   = errors.New("another operation on this position is in progress")
	ErrCatalogInactive     = errors.New("catalog entry is not active")
	ErrNotDamaged          = errors.New("position is not damaged")
	ErrNotMatured          = errors.New("position has not matured yet")
)
