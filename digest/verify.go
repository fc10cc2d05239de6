package digest

import "crypto/subtle"

// VerifyBytes reports whether data hashes to expected. A malformed expected
// digest is a verification failure, not an error. The comparison is constant
// time so the routine is safe for secret-adjacent values.
func VerifyBytes(data []byte, expected string) bool {
	want, err := Parse(expected)
	if err != nil {
		return false
	}
	return equal(HashBytes(data), want)
}

// VerifyString reports whether the UTF-8 bytes of s hash to expected.
func VerifyString(s string, expected string) bool {
	return VerifyBytes([]byte(s), expected)
}

// equal compares two canonical digests in constant time.
func equal(a, b Digest) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
