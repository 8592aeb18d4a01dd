// Package cipher provides the field-level encryption used for entry
// contents. Each field is sealed independently so a single corrupted value
// cannot take down its siblings on decode.
package cipher

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
)

// ChaChaCipher seals values with ChaCha20-Poly1305. The key is derived from
// the configured secret and protocol id via HKDF, so rotating the protocol
// id yields a distinct key without changing the secret.
type ChaChaCipher struct {
	aeadKey []byte
}

// NewChaChaCipher derives the sealing key from secret and protocolID.
func NewChaChaCipher(secret, protocolID string) (*ChaChaCipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("cipher secret must not be empty")
	}

	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(protocolID))
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive cipher key: %w", err)
	}
	return &ChaChaCipher{aeadKey: key}, nil
}

var _ ports.Cipher = (*ChaChaCipher)(nil)

// Encrypt seals plaintext and returns base64(nonce || ciphertext).
func (c *ChaChaCipher) Encrypt(_ context.Context, plaintext string) (string, error) {
	aead, err := chacha20poly1305.New(c.aeadKey)
	if err != nil {
		return "", fmt.Errorf("failed to build AEAD: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt.
func (c *ChaChaCipher) Decrypt(_ context.Context, ciphertext string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("ciphertext is not valid base64: %w", err)
	}

	aead, err := chacha20poly1305.New(c.aeadKey)
	if err != nil {
		return "", fmt.Errorf("failed to build AEAD: %w", err)
	}
	if len(sealed) < aead.NonceSize() {
		return "", fmt.Errorf("ciphertext shorter than nonce")
	}

	nonce, body := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, body, nil)
	if err != nil {
		return "", fmt.Errorf("failed to open ciphertext: %w", err)
	}
	return string(plaintext), nil
}
