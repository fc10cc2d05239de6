package apikey

import "errors"

var (
	// ErrEntropyFailure indicates the system random source is unavailable.
	// This is fatal and unrecoverable; do not retry.
	ErrEntropyFailure = errors.New("apikey: entropy source failure")

	// ErrInvalidLabel indicates the key label is empty or contains
	// characters outside [a-z0-9_].
	ErrInvalidLabel = errors.New("apikey: invalid label")

	// ErrInvalidConfig indicates the key sizing is out of bounds.
	ErrInvalidConfig = errors.New("apikey: invalid config")
)
