package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken generates a SHA-256 hash of a token. Used for refresh tokens and the
// single-use temporary tokens (email verification, password reset): the raw value goes
// to the client, only the hash is stored.
func HashToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return hex.EncodeToString(hasher.Sum(nil))
}

// CompareTokenHash compares a raw token with a stored SHA-256 hash. The `token`
// parameter must be the raw token string, not a hash.
func CompareTokenHash(token string, storedHash string) bool {
	return HashToken(token) == storedHash
}
