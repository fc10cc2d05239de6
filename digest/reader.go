package digest

import (
	"fmt"
	"io"
	"os"
)

// DefaultChunkSize is the default read size for streaming file hashing (64 KiB).
const DefaultChunkSize = 64 * 1024

// ChunkReader yields a lazy, finite, non-restartable sequence of fixed-size
// chunks from a file. The final chunk may be shorter. The buffer returned by
// Next is owned by the reader and only valid until the following Next call.
type ChunkReader struct {
	f      *os.File
	buf    []byte
	closed bool
}

// Open opens path for chunked reading with DefaultChunkSize.
func Open(path string) (*ChunkReader, error) {
	return OpenSize(path, DefaultChunkSize)
}

// OpenSize opens path for chunked reading with an explicit chunk size.
func OpenSize(path string, chunkSize int) (*ChunkReader, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidInput)
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidInput, chunkSize)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return &ChunkReader{f: f, buf: make([]byte, chunkSize)}, nil
}

// Next returns the next chunk, or io.EOF after the final chunk has been
// yielded. Any other failure is reported as ErrIOFailure and the sequence
// ends; Next must not be called again after a non-nil error.
func (r *ChunkReader) Next() ([]byte, error) {
	if r.closed {
		return nil, io.EOF
	}
	n, err := io.ReadFull(r.f, r.buf)
	switch {
	case err == io.EOF:
		return nil, io.EOF
	case err == io.ErrUnexpectedEOF:
		// Short final chunk.
		return r.buf[:n], nil
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return r.buf, nil
}

// Close releases the file handle. Safe to call multiple times.
func (r *ChunkReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.f.Close()
}
