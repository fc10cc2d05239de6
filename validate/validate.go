// Package validate provides format validators for the inputs surrounding
// document notarization: addresses, digests, emails, and file policy.
//
// Validators return nil for acceptable input and a package sentinel
// otherwise, so callers can branch with errors.Is.
package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxFileSize is the default ceiling for files submitted for hashing (100 MiB).
const MaxFileSize = 100 * 1024 * 1024

var (
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	addressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	hashRe    = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)
)

// supportedMIMETypes is the allow-list for notarized documents.
var supportedMIMETypes = map[string]bool{
	"application/pdf":  true,
	"image/png":        true,
	"image/jpeg":       true,
	"application/json": true,
	"text/plain":       true,
	"text/csv":         true,
	"application/zip":  true,
}

// extensionToMIME maps file extensions to their MIME types.
var extensionToMIME = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".json": "application/json",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".zip":  "application/zip",
}

// Email checks basic email address shape.
func Email(addr string) error {
	if !emailRe.MatchString(addr) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, addr)
	}
	return nil
}

// EthereumAddress checks the 0x + 40 hex character address format.
func EthereumAddress(addr string) error {
	if !addressRe.MatchString(addr) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	return nil
}

// DigestFormat checks the 0x + 64 hex character digest format.
func DigestFormat(s string) error {
	if !hashRe.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidDigest, s)
	}
	return nil
}

// TransactionHash checks an EVM transaction hash, which shares the digest
// wire format.
func TransactionHash(s string) error {
	if err := DigestFormat(s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTxHash, s)
	}
	return nil
}

// FileSize checks size against max. A non-positive max applies the default
// MaxFileSize ceiling.
func FileSize(size, max int64) error {
	if max <= 0 {
		max = MaxFileSize
	}
	if size < 0 {
		return fmt.Errorf("%w: negative size %d", ErrFileTooLarge, size)
	}
	if size > max {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, size, max)
	}
	return nil
}

// FileType checks a file against the document allow-list. When mimeType is
// non-empty it is checked directly; otherwise the type is inferred from the
// file extension.
func FileType(fileName, mimeType string) error {
	if mimeType != "" {
		if !supportedMIMETypes[mimeType] {
			return fmt.Errorf("%w: MIME type %q", ErrUnsupportedFileType, mimeType)
		}
		return nil
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	mime, ok := extensionToMIME[ext]
	if !ok || !supportedMIMETypes[mime] {
		return fmt.Errorf("%w: extension %q", ErrUnsupportedFileType, ext)
	}
	return nil
}

// StringLength checks that len(value) is within [min, max]. A negative max
// means no upper bound.
func StringLength(value string, min, max int) error {
	if len(value) < min {
		return fmt.Errorf("%w: at least %d characters required, got %d", ErrStringLength, min, len(value))
	}
	if max >= 0 && len(value) > max {
		return fmt.Errorf("%w: at most %d characters allowed, got %d", ErrStringLength, max, len(value))
	}
	return nil
}
