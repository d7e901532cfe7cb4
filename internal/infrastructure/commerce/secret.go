package commerce

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Per-channel credentials are stored as an opaque encrypted blob:
// base64(nonce || AES-256-GCM ciphertext) over a JSON object with flat
// string keys. The expected keys vary by platform (mallId/clientId/
// clientSecret/refreshToken vs. apiKey/baseUrl vs. partnerKey).

// Errors for secret blob handling
var (
	ErrSecretBlobMalformed = errors.New("commerce: secret blob is not valid base64")
	ErrSecretBlobTooShort  = errors.New("commerce: secret blob shorter than nonce")
	ErrSecretDecryptFailed = errors.New("commerce: secret blob decryption failed")
)

// SecretCipher encrypts and decrypts per-channel secret blobs with a
// process-wide key derived from configuration.
type SecretCipher struct {
	aead cipher.AEAD
}

// NewSecretCipher derives an AES-256-GCM cipher from the configured key
// material. Any non-empty key is accepted; it is stretched with SHA-256.
func NewSecretCipher(key string) (*SecretCipher, error) {
	if key == "" {
		return nil, errors.New("commerce: secret key is required")
	}
	sum := sha256.Sum256([]byte(key))
	block, err := aes.NewCipher(sum[:])
	if err != nil {
		return nil, fmt.Errorf("commerce: failed to build cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("commerce: failed to build GCM: %w", err)
	}
	return &SecretCipher{aead: aead}, nil
}

// Decrypt decodes and decrypts a secret blob into its flat string-keyed map.
func (c *SecretCipher) Decrypt(blob string) (map[string]string, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, ErrSecretBlobMalformed
	}
	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return nil, ErrSecretBlobTooShort
	}
	plain, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return nil, ErrSecretDecryptFailed
	}
	var fields map[string]string
	if err := json.Unmarshal(plain, &fields); err != nil {
		return nil, fmt.Errorf("commerce: secret blob is not a flat string map: %w", err)
	}
	return fields, nil
}

// Encrypt serializes and encrypts a flat string-keyed credential map. Used
// by provisioning tooling and tests; the sync path only decrypts.
func (c *SecretCipher) Encrypt(fields map[string]string) (string, error) {
	plain, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("commerce: failed to marshal secret fields: %w", err)
	}
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("commerce: failed to generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}
