package password

import "errors"

var (
	// ErrMalformedHash indicates the encoded hash is not a valid Argon2id
	// PHC string.
	ErrMalformedHash = errors.New("password: malformed hash")

	// ErrIncompatibleVersion indicates the hash was produced by an
	// unsupported Argon2 version.
	ErrIncompatibleVersion = errors.New("password: incompatible argon2 version")

	// ErrInvalidParams indicates zero-valued cost parameters.
	ErrInvalidParams = errors.New("password: invalid parameters")

	// ErrEntropyFailure indicates the system random source is unavailable.
	ErrEntropyFailure = errors.New("password: entropy source failure")
)
