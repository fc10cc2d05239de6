// Package password implements password hashing and verification with
// Argon2id, encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Verification is constant time. NeedsRehash lets callers upgrade stored
// hashes when parameters are strengthened.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Params are the Argon2id cost parameters.
type Params struct {
	Time        uint32 // iterations
	Memory      uint32 // KiB
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// DefaultParams returns the standard cost parameters (64 MiB, 3 passes).
func DefaultParams() Params {
	return Params{
		Time:        3,
		Memory:      64 * 1024,
		Parallelism: 4,
		SaltLen:     16,
		KeyLen:      32,
	}
}

// Hash derives an Argon2id hash of password with DefaultParams and returns
// the PHC-encoded string.
func Hash(password string) (string, error) {
	return HashParams(password, DefaultParams())
}

// HashParams derives an Argon2id hash of password with explicit parameters.
func HashParams(password string, p Params) (string, error) {
	if p.Time == 0 || p.Memory == 0 || p.Parallelism == 0 || p.SaltLen == 0 || p.KeyLen == 0 {
		return "", fmt.Errorf("%w: all parameters must be positive", ErrInvalidParams)
	}

	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropyFailure, err)
	}

	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches the PHC-encoded hash. A malformed
// encoded string is an error; a wrong password is (false, nil).
func Verify(password, encoded string) (bool, error) {
	p, salt, key, err := decode(encoded)
	if err != nil {
		return false, err
	}
	candidate := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1, nil
}

// NeedsRehash reports whether encoded was produced with parameters weaker
// than p, meaning the caller should re-hash on the next successful login.
func NeedsRehash(encoded string, p Params) (bool, error) {
	stored, _, key, err := decode(encoded)
	if err != nil {
		return false, err
	}
	return stored.Time < p.Time ||
		stored.Memory < p.Memory ||
		stored.Parallelism < p.Parallelism ||
		uint32(len(key)) < p.KeyLen, nil
}

// decode parses a PHC-encoded Argon2id string into parameters, salt, and key.
func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return Params{}, nil, nil, fmt.Errorf("%w: expected 6 segments", ErrMalformedHash)
	}
	if parts[1] != "argon2id" {
		return Params{}, nil, nil, fmt.Errorf("%w: unsupported variant %q", ErrMalformedHash, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: bad version segment: %w", ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return Params{}, nil, nil, fmt.Errorf("%w: got v=%d, want v=%d", ErrIncompatibleVersion, version, argon2.Version)
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Parallelism); err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: bad parameter segment: %w", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: bad salt: %w", ErrMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: bad key: %w", ErrMalformedHash, err)
	}

	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}
