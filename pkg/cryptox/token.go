package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// SecretSize is the default length, in bytes, of generated HMAC secrets.
const SecretSize = 32

// fingerprintLen is the number of hex characters kept from the digest.
const fingerprintLen = 12

// RandomSecret returns n bytes from crypto/rand.
func RandomSecret(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("secret size must be positive, got %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("read random secret: %w", err)
	}
	return buf, nil
}

// MustRandomSecret is RandomSecret for package initialisation paths.
func MustRandomSecret(n int) []byte {
	b, err := RandomSecret(n)
	if err != nil {
		panic(err)
	}
	return b
}

// FingerprintToken identifies a bearer token in logs without revealing it.
// The same token always maps to the same fingerprint; "" maps to "".
func FingerprintToken(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
