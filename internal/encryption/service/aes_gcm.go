package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/stakwork/fieldcrypt/internal/encryption/domain"
)

// AESGCMCipher is AES-256-GCM configured with the 16-byte IV used by
// version "1" envelopes. The tag is returned separately from the ciphertext
// because the envelope stores them in different fields.
//
// The cipher holds no per-call state and is safe for concurrent use.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a cipher for a 32-byte key.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != domain.KeySize {
		return nil, fmt.Errorf("%w: must be %d bytes, got %d", domain.ErrInvalidKeySize, domain.KeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, domain.IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Seal encrypts plaintext under a fresh random IV.
func (a *AESGCMCipher) Seal(plaintext []byte) (iv, ciphertext, tag []byte, err error) {
	iv = make([]byte, domain.IVSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate iv: %w", err)
	}

	sealed := a.aead.Seal(nil, iv, plaintext, nil)
	split := len(sealed) - domain.TagSize

	return iv, sealed[:split], sealed[split:], nil
}

// Open verifies the tag and returns the plaintext. Any authentication
// failure is reported as ErrDecryptionFailed without further detail.
func (a *AESGCMCipher) Open(iv, ciphertext, tag []byte) ([]byte, error) {
	if len(iv) != domain.IVSize || len(tag) != domain.TagSize {
		return nil, domain.ErrDecryptionFailed
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := a.aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, domain.ErrDecryptionFailed
	}
	return plaintext, nil
}
