package domain

import "errors"

// Error kinds, matched with errors.Is. Adapters and services wrap these
// with fmt.Errorf("%w: ...") to attach detail.
var (
	// ErrValidation covers bad user input: unknown currency code,
	// non-positive threshold, identical source and target. Never retried.
	ErrValidation = errors.New("invalid input")

	// ErrTransient covers network failures, timeouts and 5xx responses.
	// Retried inside the fetcher; the exchange service falls back to a
	// stale cached rate when one exists.
	ErrTransient = errors.New("transient provider failure")

	// ErrClient covers 4xx responses and unknown pairs. Not retried.
	ErrClient = errors.New("provider rejected request")

	// ErrRateLimited is surfaced when the local limiter cannot grant a
	// slot within the maximum wait.
	ErrRateLimited = errors.New("rate limit wait exceeded")

	// ErrPersistence covers corrupt or unwritable store files.
	ErrPersistence = errors.New("persistence failure")
)
