package keystore

import "errors"

var (
	// ErrKeyNotFound indicates no record matches the presented secret or ID.
	ErrKeyNotFound = errors.New("keystore: key not found")

	// ErrKeyRevoked indicates the key exists but has been revoked.
	ErrKeyRevoked = errors.New("keystore: key revoked")

	// ErrDuplicateKey indicates a record with the same hash already exists.
	ErrDuplicateKey = errors.New("keystore: duplicate key")

	// ErrNilKey indicates a nil or malformed key was passed to Add.
	ErrNilKey = errors.New("keystore: nil or invalid key")
)
