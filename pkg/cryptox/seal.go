package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// MasterKeyEnv is consulted when no key file is configured.
const MasterKeyEnv = "SNAP_MASTER_KEY"

// ErrOpen reports a sealed value that cannot be decrypted with this key,
// either because it was tampered with or sealed under another key.
var ErrOpen = errors.New("cryptox: cannot open sealed value")

// Sealer encrypts small secrets (session tokens) for storage at rest using
// AES-256-GCM. Sealed values are base64url([nonce][ciphertext][tag]).
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 32-byte key from keyMaterial with SHA-256.
func NewSealer(keyMaterial []byte) (*Sealer, error) {
	if len(keyMaterial) == 0 {
		return nil, errors.New("cryptox: empty key material")
	}
	key := sha256.Sum256(keyMaterial)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Sealer{aead: gcm}, nil
}

// LoadSealer resolves key material in order:
//  1. the file at path, created with fresh random material if missing
//  2. the SNAP_MASTER_KEY environment variable
//  3. an ephemeral random key (sealed values do not survive restart)
func LoadSealer(path string) (*Sealer, error) {
	if path != "" {
		material, err := loadOrCreateKeyFile(path)
		if err != nil {
			return nil, err
		}
		return NewSealer(material)
	}

	if env := os.Getenv(MasterKeyEnv); env != "" {
		return NewSealer([]byte(env))
	}

	material, err := RandomSecret(SecretSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral master key: %w", err)
	}
	return NewSealer(material)
}

func loadOrCreateKeyFile(path string) ([]byte, error) {
	path = filepath.Clean(path)

	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read master key file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create master key dir: %w", err)
	}
	secret, err := RandomSecret(SecretSize)
	if err != nil {
		return nil, err
	}
	data = []byte(hex.EncodeToString(secret))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write master key file: %w", err)
	}
	return data, nil
}

// Seal encrypts plaintext with a random nonce.
func (s *Sealer) Seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

// Open reverses Seal. Any malformed or unauthenticated input yields ErrOpen.
func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrOpen
	}
	n := s.aead.NonceSize()
	if len(raw) < n {
		return "", ErrOpen
	}
	plain, err := s.aead.Open(nil, raw[:n], raw[n:], nil)
	if err != nil {
		return "", ErrOpen
	}
	return string(plain), nil
}
