package validate

import "errors"

var (
	// ErrInvalidEmail indicates the email address is malformed.
	ErrInvalidEmail = errors.New("validate: invalid email format")

	// ErrInvalidAddress indicates the Ethereum address is not 0x + 40 hex chars.
	ErrInvalidAddress = errors.New("validate: invalid ethereum address")

	// ErrInvalidDigest indicates the digest is not 0x + 64 hex chars.
	ErrInvalidDigest = errors.New("validate: invalid digest format")

	// ErrInvalidTxHash indicates the transaction hash is malformed.
	ErrInvalidTxHash = errors.New("validate: invalid transaction hash")

	// ErrFileTooLarge indicates the file exceeds the size ceiling.
	ErrFileTooLarge = errors.New("validate: file too large")

	// ErrUnsupportedFileType indicates the file type is outside the allow-list.
	ErrUnsupportedFileType = errors.New("validate: unsupported file type")

	// ErrStringLength indicates a string field is outside its length bounds.
	ErrStringLength = errors.New("validate: string length out of bounds")
)
