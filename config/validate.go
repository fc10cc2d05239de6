// Copyright (c) 2026 The absnotary developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package config

import (
	"strings"

	"github.com/absnotary/libnotary-go/apikey"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.ChunkSize <= 0 {
		return ErrInvalidChunkSize
	}

	if cfg.MaxFileSize <= 0 {
		return ErrInvalidMaxFileSize
	}

	if !validKeyLabel(cfg.KeyLabel) {
		return ErrInvalidKeyLabel
	}

	if cfg.KeyRandomBytes < apikey.MinRandomBytes {
		return ErrInvalidKeySizing
	}
	if cfg.KeyDisplayChars < 1 || cfg.KeyDisplayChars > apikey.MaxDisplayChars {
		return ErrInvalidKeySizing
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}

// validKeyLabel checks the label charset: non-empty, [a-z0-9_] only.
func validKeyLabel(label string) bool {
	if label == "" {
		return false
	}
	for _, c := range label {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
