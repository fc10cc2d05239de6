// Copyright (c) 2026 The absnotary developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidChunkSize indicates the chunk size is not positive.
	ErrInvalidChunkSize = errors.New("config: chunk size must be positive")

	// ErrInvalidMaxFileSize indicates the file-size ceiling is not positive.
	ErrInvalidMaxFileSize = errors.New("config: max file size must be positive")

	// ErrInvalidKeyLabel indicates the key label is empty or has characters
	// outside [a-z0-9_].
	ErrInvalidKeyLabel = errors.New("config: invalid key label")

	// ErrInvalidKeySizing indicates key entropy or display sizing is out of
	// bounds.
	ErrInvalidKeySizing = errors.New("config: invalid key sizing")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfigLine indicates a line in the config file is malformed.
	ErrInvalidConfigLine = errors.New("config: invalid configuration line")
)
