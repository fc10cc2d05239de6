// Copyright (c) 2026 The absnotary developers
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package config loads and validates notary tool configuration.
//
// The file format is plain "key = value" lines; blank lines and lines
// starting with '#' are ignored. Library packages never read this
// themselves — callers load a Config once and pass the values down
// explicitly.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds every tunable of the hashing and credential tooling.
type Config struct {
	// DataDir is the root for the keystore database and config file.
	DataDir string

	// ChunkSize is the streaming read size for file hashing, in bytes.
	ChunkSize int

	// MaxFileSize is the ceiling enforced before hashing a file, in bytes.
	MaxFileSize int64

	// KeyLabel is the identification prefix for newly issued API keys.
	KeyLabel string

	// KeyRandomBytes is the entropy drawn per API key.
	KeyRandomBytes int

	// KeyDisplayChars is the number of random hex characters exposed in a
	// key's display prefix.
	KeyDisplayChars int

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
}

// DefaultConfig returns the standard configuration. DataDir falls back to
// the current directory when the home directory cannot be determined.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:         filepath.Join(home, ".absnotary"),
		ChunkSize:       64 * 1024,
		MaxFileSize:     100 * 1024 * 1024,
		KeyLabel:        "sk_live",
		KeyRandomBytes:  32,
		KeyDisplayChars: 8,
		LogLevel:        "info",
	}
}

// ConfigPath returns the path of the config file inside dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(dataDir, "config")
}

// LoadConfig reads a config file. Keys not present keep their default
// values; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, i+1, line)
		}
		if err := cfg.set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return cfg, fmt.Errorf("%w: line %d: %w", ErrInvalidConfigLine, i+1, err)
		}
	}

	return cfg, nil
}

// SaveConfig writes cfg to path, creating parent directories as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# absnotary configuration\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "chunksize = %d\n", cfg.ChunkSize)
	fmt.Fprintf(&b, "maxfilesize = %d\n", cfg.MaxFileSize)
	fmt.Fprintf(&b, "keylabel = %s\n", cfg.KeyLabel)
	fmt.Fprintf(&b, "keyrandombytes = %d\n", cfg.KeyRandomBytes)
	fmt.Fprintf(&b, "keydisplaychars = %d\n", cfg.KeyDisplayChars)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// set applies one key = value pair to cfg.
func (c *Config) set(key, value string) error {
	switch key {
	case "datadir":
		c.DataDir = value
	case "chunksize":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("chunksize: %w", err)
		}
		c.ChunkSize = n
	case "maxfilesize":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("maxfilesize: %w", err)
		}
		c.MaxFileSize = n
	case "keylabel":
		c.KeyLabel = value
	case "keyrandombytes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("keyrandombytes: %w", err)
		}
		c.KeyRandomBytes = n
	case "keydisplaychars":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("keydisplaychars: %w", err)
		}
		c.KeyDisplayChars = n
	case "loglevel":
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

// KeystorePath returns the keystore database path inside the data directory.
func (c Config) KeystorePath() string {
	return filepath.Join(c.DataDir, "keys", "keystore.db")
}
