package digest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known SHA-256 reference vectors.
const (
	helloDigest = "0x2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	emptyDigest = "0xe3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestHashStringReferenceVector(t *testing.T) {
	assert.Equal(t, Digest(helloDigest), HashString("hello"))
}

func TestHashBytesFormat(t *testing.T) {
	d := HashBytes([]byte("some data"))
	assert.Len(t, string(d), EncodedLen)
	assert.True(t, d.Valid())
}

func TestHashBytesDeterministic(t *testing.T) {
	data := bytes.Repeat([]byte{0x5A}, 10_000)
	assert.Equal(t, HashBytes(data), HashBytes(data))
	assert.NotEqual(t, HashBytes(data), HashBytes(append([]byte{0}, data...)))
}

func TestHashStringMatchesHashBytes(t *testing.T) {
	assert.Equal(t, HashBytes([]byte("hello")), HashString("hello"))
}

func TestHashFile(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"smaller than chunk", 100},
		{"exactly one chunk", DefaultChunkSize},
		{"chunk boundary plus one", DefaultChunkSize + 1},
		{"several chunks", 3*DefaultChunkSize + 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := bytes.Repeat([]byte{0xC3}, tt.size)
			path := writeTempFile(t, data)

			got, err := HashFile(path)
			require.NoError(t, err)
			assert.Equal(t, HashBytes(data), got)
		})
	}
}

func TestHashFileEmptyReferenceVector(t *testing.T) {
	path := writeTempFile(t, nil)
	got, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, Digest(emptyDigest), got)
}

func TestHashFileContextEqualsBlocking(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefgh"), 20_000)
	path := writeTempFile(t, data)

	blocking, err := HashFile(path)
	require.NoError(t, err)
	ctxed, err := HashFileContext(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, blocking, ctxed)
}

func TestHashFileChunkSizeIndependence(t *testing.T) {
	data := bytes.Repeat([]byte{0x77}, 10_000)
	path := writeTempFile(t, data)

	var digests []Digest
	for _, size := range []int{1, 512, 4096, DefaultChunkSize} {
		r, err := OpenSize(path, size)
		require.NoError(t, err)
		d, err := HashReader(context.Background(), r)
		require.NoError(t, r.Close())
		require.NoError(t, err)
		digests = append(digests, d)
	}
	for _, d := range digests[1:] {
		assert.Equal(t, digests[0], d)
	}
}

func TestHashFileNotFound(t *testing.T) {
	_, err := HashFile(filepath.Join(t.TempDir(), "missing.bin"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHashFileEmptyPath(t *testing.T) {
	_, err := HashFile("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHashFileContextCancelled(t *testing.T) {
	path := writeTempFile(t, bytes.Repeat([]byte{1}, 1024))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, err := HashFileContext(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, d)
}

func TestParse(t *testing.T) {
	raw := sha256.Sum256([]byte("hello"))
	hexStr := hex.EncodeToString(raw[:])

	tests := []struct {
		name    string
		in      string
		want    Digest
		wantErr bool
	}{
		{"canonical", "0x" + hexStr, Digest(helloDigest), false},
		{"no prefix", hexStr, Digest(helloDigest), false},
		{"upper case", "0X" + string(bytes.ToUpper([]byte(hexStr))), Digest(helloDigest), false},
		{"too short", "0xabc", "", true},
		{"not hex", "0x" + hexStr[:62] + "zz", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDigestValid(t *testing.T) {
	assert.True(t, Digest(helloDigest).Valid())
	assert.False(t, Digest("0x").Valid())
	assert.False(t, Digest("").Valid())
	// Upper-case hex is not canonical.
	up := "0x" + "2CF24DBA5FB0A30E26E83B2AC5B9E29E1B161E5C1FA7425E73043362938B9824"
	assert.False(t, Digest(up).Valid())
}

func TestDigestBytes(t *testing.T) {
	raw := sha256.Sum256([]byte("hello"))
	b, err := Digest(helloDigest).Bytes()
	require.NoError(t, err)
	assert.Equal(t, raw[:], b)

	_, err = Digest("not-a-digest").Bytes()
	assert.ErrorIs(t, err, ErrInvalidInput)
}
