// Package apikey issues API keys backed by a CSPRNG.
//
// A generated key has three faces: the plaintext Secret (returned exactly
// once, never to be persisted), its Hash (the only form meant for storage),
// and a short display Prefix safe to show in dashboards and logs.
package apikey

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/absnotary/libnotary-go/digest"
)

const (
	// DefaultRandomBytes is the entropy drawn per key (256 bits).
	DefaultRandomBytes = 32

	// DefaultDisplayChars is how many hex characters of the random part the
	// display prefix exposes.
	DefaultDisplayChars = 8

	// MinRandomBytes is the entropy floor; weaker keys are refused.
	MinRandomBytes = 32

	// MaxDisplayChars caps the prefix so it cannot meaningfully narrow a
	// brute-force search of the remaining random material.
	MaxDisplayChars = 16

	// Delimiter separates the label from the random material.
	Delimiter = "_"
)

// Key is a freshly generated API key.
type Key struct {
	// Secret is the full plaintext key ("label_<hex random>"). Show it to
	// the user once and discard it; it must never be stored.
	Secret string

	// Hash is digest.HashString(Secret), the storable form.
	Hash digest.Digest

	// Prefix is "label_" plus the leading characters of the random part.
	// Safe to store and display for key identification.
	Prefix string
}

// Config sizes the generated key material.
type Config struct {
	// RandomBytes is the number of CSPRNG bytes per key (hex encoded in the
	// secret). Must be at least MinRandomBytes.
	RandomBytes int

	// DisplayChars is the number of hex characters of the random part
	// included in the display prefix. Must be in [1, MaxDisplayChars].
	DisplayChars int
}

// DefaultConfig returns the standard key sizing.
func DefaultConfig() Config {
	return Config{RandomBytes: DefaultRandomBytes, DisplayChars: DefaultDisplayChars}
}

// Generate creates a new API key with the default sizing.
// label is the identification prefix, e.g. "sk_live" or "sk_test".
func Generate(label string) (*Key, error) {
	return GenerateConfig(label, DefaultConfig())
}

// GenerateConfig creates a new API key with explicit sizing.
func GenerateConfig(label string, cfg Config) (*Key, error) {
	if err := validLabel(label); err != nil {
		return nil, err
	}
	if cfg.RandomBytes < MinRandomBytes {
		return nil, fmt.Errorf("%w: random length %d below minimum %d bytes", ErrInvalidConfig, cfg.RandomBytes, MinRandomBytes)
	}
	if cfg.DisplayChars < 1 || cfg.DisplayChars > MaxDisplayChars {
		return nil, fmt.Errorf("%w: display chars must be in [1, %d], got %d", ErrInvalidConfig, MaxDisplayChars, cfg.DisplayChars)
	}

	raw := make([]byte, cfg.RandomBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntropyFailure, err)
	}
	random := hex.EncodeToString(raw)

	secret := label + Delimiter + random
	return &Key{
		Secret: secret,
		Hash:   digest.HashString(secret),
		Prefix: label + Delimiter + random[:cfg.DisplayChars],
	}, nil
}

// Verify reports whether secret is the plaintext behind stored. The
// comparison is constant time; a malformed stored hash is simply false.
func Verify(secret string, stored digest.Digest) bool {
	return digest.VerifyString(secret, string(stored))
}

// validLabel checks the identification prefix: non-empty, lower-case
// letters, digits, and underscores only.
func validLabel(label string) error {
	if label == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidLabel)
	}
	for _, c := range label {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return fmt.Errorf("%w: %q (allowed: [a-z0-9_])", ErrInvalidLabel, label)
		}
	}
	return nil
}
