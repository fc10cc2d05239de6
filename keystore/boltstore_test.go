package keystore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absnotary/libnotary-go/apikey"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "keys", "keystore.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func generateKey(t *testing.T) *apikey.Key {
	t.Helper()
	key, err := apikey.Generate("sk_test")
	require.NoError(t, err)
	return key
}

func TestAddAndAuthenticate(t *testing.T) {
	s := openTestStore(t)
	key := generateKey(t)

	rec, err := s.Add(key, "ci pipeline")
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, key.Hash, rec.Hash)
	assert.Equal(t, key.Prefix, rec.Prefix)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.True(t, rec.LastUsedAt.IsZero())

	authed, err := s.Authenticate(key.Secret)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, authed.ID)
	assert.False(t, authed.LastUsedAt.IsZero())
}

func TestAuthenticateUnknownSecret(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Authenticate("sk_test_deadbeef")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestAddDuplicate(t *testing.T) {
	s := openTestStore(t)
	key := generateKey(t)

	_, err := s.Add(key, "first")
	require.NoError(t, err)
	_, err = s.Add(key, "second")
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestAddNilKey(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Add(nil, "nothing")
	assert.ErrorIs(t, err, ErrNilKey)
}

func TestRevoke(t *testing.T) {
	s := openTestStore(t)
	key := generateKey(t)

	rec, err := s.Add(key, "to be revoked")
	require.NoError(t, err)
	require.NoError(t, s.Revoke(rec.ID))

	_, err = s.Authenticate(key.Secret)
	assert.ErrorIs(t, err, ErrKeyRevoked)

	got, err := s.Get(rec.ID)
	require.NoError(t, err)
	assert.True(t, got.Revoked)
}

func TestRevokeUnknownID(t *testing.T) {
	s := openTestStore(t)
	assert.ErrorIs(t, s.Revoke("no-such-id"), ErrKeyNotFound)
}

func TestList(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.Add(generateKey(t), "key")
		require.NoError(t, err)
	}

	records, err := s.List()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestSecretNeverTouchesDisk(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "keystore.db")
	s, err := Open(dbPath)
	require.NoError(t, err)

	key := generateKey(t)
	_, err = s.Add(key, "sensitive")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	raw, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), key.Secret)
	// The display prefix is stored, so only the random tail must be absent.
	randomTail := strings.TrimPrefix(key.Secret, key.Prefix)
	assert.NotContains(t, string(raw), randomTail)
}

func TestReopenPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "keystore.db")
	key := generateKey(t)

	s, err := Open(dbPath)
	require.NoError(t, err)
	rec, err := s.Add(key, "durable")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Hash, got.Hash)

	authed, err := s.Authenticate(key.Secret)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, authed.ID)
}
