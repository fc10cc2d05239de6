package digest

import "errors"

var (
	// ErrNotFound indicates the file to hash does not exist.
	ErrNotFound = errors.New("digest: file not found")

	// ErrIOFailure indicates a read error (permissions, disk error).
	ErrIOFailure = errors.New("digest: I/O failure")

	// ErrInvalidInput indicates an empty path, a non-positive chunk size,
	// or a malformed digest string.
	ErrInvalidInput = errors.New("digest: invalid input")
)
