// Package keystore persists API-key metadata in bbolt.
//
// Only the key hash, display prefix, and bookkeeping metadata are stored.
// The plaintext secret never touches disk; callers authenticate by
// presenting the secret, which is re-hashed and looked up by digest.
package keystore

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/absnotary/libnotary-go/apikey"
	"github.com/absnotary/libnotary-go/digest"
)

var (
	bucketKeys   = []byte("keys")    // digest -> gob(Record)
	bucketKeyIDs = []byte("key_ids") // id -> digest
)

// Record is the stored view of an issued API key.
type Record struct {
	ID         string        // uuid assigned at Add
	Label      string        // identification prefix, e.g. "sk_live"
	Prefix     string        // display prefix, safe to show
	Hash       digest.Digest // digest of the plaintext secret
	CreatedAt  time.Time
	LastUsedAt time.Time // zero until first successful Authenticate
	Revoked    bool
}

// Store wraps a bbolt database holding API-key records.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the keystore database at dbPath.
// The parent directory is created if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("keystore: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("keystore: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketKeys, bucketKeyIDs} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("keystore: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("keystore: create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Add registers a freshly generated key under label and returns its record.
// The key's plaintext secret is not stored.
func (s *Store) Add(key *apikey.Key, label string) (*Record, error) {
	if key == nil {
		return nil, ErrNilKey
	}
	if !key.Hash.Valid() {
		return nil, fmt.Errorf("%w: malformed hash", ErrNilKey)
	}

	rec := &Record{
		ID:        uuid.NewString(),
		Label:     label,
		Prefix:    key.Prefix,
		Hash:      key.Hash,
		CreatedAt: time.Now().UTC(),
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		kb := tx.Bucket(bucketKeys)
		if kb.Get([]byte(rec.Hash)) != nil {
			return ErrDuplicateKey
		}
		data, err := encodeGob(rec)
		if err != nil {
			return fmt.Errorf("keystore: encode record: %w", err)
		}
		if err := kb.Put([]byte(rec.Hash), data); err != nil {
			return fmt.Errorf("keystore: put record: %w", err)
		}
		if err := tx.Bucket(bucketKeyIDs).Put([]byte(rec.ID), []byte(rec.Hash)); err != nil {
			return fmt.Errorf("keystore: put id index: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Authenticate looks up the record for a presented plaintext secret.
// The secret is hashed and used as the lookup key, so timing reveals only
// whether a record exists, never secret contents. Revoked keys are refused.
// On success the record's LastUsedAt is advanced.
func (s *Store) Authenticate(secret string) (*Record, error) {
	hash := digest.HashString(secret)

	var rec Record
	err := s.db.Update(func(tx *bbolt.Tx) error {
		kb := tx.Bucket(bucketKeys)
		data := kb.Get([]byte(hash))
		if data == nil {
			return ErrKeyNotFound
		}
		if err := decodeGob(data, &rec); err != nil {
			return fmt.Errorf("keystore: decode record: %w", err)
		}
		if rec.Revoked {
			return ErrKeyRevoked
		}
		rec.LastUsedAt = time.Now().UTC()
		updated, err := encodeGob(&rec)
		if err != nil {
			return fmt.Errorf("keystore: encode record: %w", err)
		}
		return kb.Put([]byte(hash), updated)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get retrieves a record by its ID.
func (s *Store) Get(id string) (*Record, error) {
	var rec Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		hash := tx.Bucket(bucketKeyIDs).Get([]byte(id))
		if hash == nil {
			return ErrKeyNotFound
		}
		data := tx.Bucket(bucketKeys).Get(hash)
		if data == nil {
			return ErrKeyNotFound
		}
		return decodeGob(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Revoke marks the record with the given ID as revoked. Revocation is
// permanent; subsequent Authenticate calls fail with ErrKeyRevoked.
func (s *Store) Revoke(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		hash := tx.Bucket(bucketKeyIDs).Get([]byte(id))
		if hash == nil {
			return ErrKeyNotFound
		}
		kb := tx.Bucket(bucketKeys)
		data := kb.Get(hash)
		if data == nil {
			return ErrKeyNotFound
		}
		var rec Record
		if err := decodeGob(data, &rec); err != nil {
			return fmt.Errorf("keystore: decode record: %w", err)
		}
		rec.Revoked = true
		updated, err := encodeGob(&rec)
		if err != nil {
			return fmt.Errorf("keystore: encode record: %w", err)
		}
		return kb.Put(hash, updated)
	})
}

// List returns all records, including revoked ones.
func (s *Store) List() ([]*Record, error) {
	var records []*Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketKeys).ForEach(func(_, data []byte) error {
			var rec Record
			if err := decodeGob(data, &rec); err != nil {
				return fmt.Errorf("keystore: decode record: %w", err)
			}
			records = append(records, &rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
