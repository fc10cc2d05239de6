// Package digest computes content-integrity digests for bytes, strings, and
// files, and verifies them in constant time.
//
// A Digest is the fixed wire format "0x" + 64 lowercase hex characters
// (SHA-256). File hashing is streaming: memory use is bounded by the chunk
// size regardless of input size, and the context-aware variant yields a
// cancellation point at every chunk boundary.
package digest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// EncodedLen is the length of an encoded digest: "0x" + 64 hex chars.
	EncodedLen = 66

	// digestPrefix marks the canonical encoding.
	digestPrefix = "0x"
)

// Digest is a 256-bit hash encoded as "0x" + 64 lowercase hex characters.
type Digest string

// String returns the canonical encoded form.
func (d Digest) String() string { return string(d) }

// Valid reports whether d is in canonical form.
func (d Digest) Valid() bool {
	if len(d) != EncodedLen || !strings.HasPrefix(string(d), digestPrefix) {
		return false
	}
	for _, c := range d[len(digestPrefix):] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Bytes decodes the 32 raw hash bytes.
func (d Digest) Bytes() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: malformed digest %q", ErrInvalidInput, string(d))
	}
	return hex.DecodeString(string(d[len(digestPrefix):]))
}

// Parse normalizes s into a canonical Digest. The "0x" prefix is optional
// and hex characters may be upper case; the result is always canonical.
func Parse(s string) (Digest, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(s), digestPrefix)
	if len(trimmed) != EncodedLen-len(digestPrefix) {
		return "", fmt.Errorf("%w: digest must be 64 hex chars, got %d", ErrInvalidInput, len(trimmed))
	}
	if _, err := hex.DecodeString(trimmed); err != nil {
		return "", fmt.Errorf("%w: digest is not hex: %w", ErrInvalidInput, err)
	}
	return Digest(digestPrefix + trimmed), nil
}

// fromSum encodes a raw SHA-256 sum as a canonical Digest.
func fromSum(sum []byte) Digest {
	return Digest(digestPrefix + hex.EncodeToString(sum))
}

// HashBytes computes the digest of data.
func HashBytes(data []byte) Digest {
	sum := sha256.Sum256(data)
	return fromSum(sum[:])
}

// HashString computes the digest of the UTF-8 bytes of s.
func HashString(s string) Digest {
	return HashBytes([]byte(s))
}

// HashFile computes the digest of the file at path, reading it in
// DefaultChunkSize chunks. Blocks until the whole file is consumed.
func HashFile(path string) (Digest, error) {
	return HashFileContext(context.Background(), path)
}

// HashFileContext computes the digest of the file at path, checking ctx at
// every chunk boundary. On cancellation the file handle is released and the
// context error is returned; no partial digest is ever produced.
func HashFileContext(ctx context.Context, path string) (Digest, error) {
	r, err := Open(path)
	if err != nil {
		return "", err
	}
	defer r.Close()
	return HashReader(ctx, r)
}

// HashReader consumes r to EOF and returns the digest of its contents.
// The reader is not closed; the caller retains ownership. Because chunk
// sequences are not restartable, r must be freshly opened.
func HashReader(ctx context.Context, r *ChunkReader) (Digest, error) {
	h := sha256.New()
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		chunk, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		h.Write(chunk)
	}
	return fromSum(h.Sum(nil)), nil
}
