package utils

import "errors"

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrActionTypeNotFound = errors.New("action_type_not_found")
	ErrStateNotFound      = errors.New("state_not_found")
	ErrMissingTrace       = errors.New("trace_not_provided")
	ErrMissingStatusCode  = errors.New("status_code_not_provided")
	ErrMissingDescription = errors.New("description_not_provided")
	ErrMissingAction      = errors.New("action_not_provided")

	// ErrActionClosed is returned when a complete/fail call races with or
	// repeats a terminal transition. The store only transitions rows that
	// are still Active.
	ErrActionClosed = errors.New("action_already_closed")

	// ErrReferenceExhausted means reference generation kept colliding past
	// the retry bound and the open was abandoned.
	ErrReferenceExhausted = errors.New("reference_generation_exhausted")

	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInsufficientStock  = errors.New("insufficient_stock")
)
