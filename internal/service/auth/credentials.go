package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

const saltBytes = 64

// scrypt cost parameters, fixed so that digests stay comparable across
// releases.
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 64
)

// NewSalt returns a fresh hex-encoded salt from a cryptographically strong
// random source. Every user gets their own.
func NewSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword derives a deterministic digest: the same (password, salt) pair
// always yields the same result.
func HashPassword(password, salt string) (string, error) {
	digest, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hex.EncodeToString(digest), nil
}

func VerifyPassword(password, salt, expectedDigest string) bool {
	digest, err := HashPassword(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(digest), []byte(expectedDigest)) == 1
}
