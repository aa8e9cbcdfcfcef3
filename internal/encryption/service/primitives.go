// Package service implements the encryption primitives and the
// EncryptionService that resolves keys through a domain.KeyRegistry.
package service

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stakwork/fieldcrypt/internal/encryption/domain"
)

// Encrypt seals plaintext with key and returns a version "1" envelope tagged
// with keyID. A fresh IV is generated for every call.
func Encrypt(plaintext string, key []byte, keyID string) (*domain.Envelope, error) {
	return encryptAt(plaintext, key, keyID, time.Now())
}

func encryptAt(plaintext string, key []byte, keyID string, at time.Time) (*domain.Envelope, error) {
	c, err := NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	iv, data, tag, err := c.Seal([]byte(plaintext))
	if err != nil {
		return nil, err
	}

	return &domain.Envelope{
		Version:     domain.EnvelopeVersion,
		KeyID:       keyID,
		IV:          BytesToHex(iv),
		Tag:         BytesToHex(tag),
		Data:        BytesToHex(data),
		EncryptedAt: at.UTC().Format(domain.EncryptedAtLayout),
	}, nil
}

// Decrypt verifies and opens env with key.
//
// Structural problems return ErrMalformedEnvelope, ErrUnsupportedEnvelopeVersion
// or ErrInvalidHex. A tag that does not verify, whether from tampering or a
// wrong key, returns ErrDecryptionFailed. No plaintext is returned on error.
func Decrypt(env *domain.Envelope, key []byte) (string, error) {
	if env == nil {
		return "", fmt.Errorf("%w: nil envelope", domain.ErrMalformedEnvelope)
	}
	if err := env.Validate(); err != nil {
		return "", err
	}

	iv, err := HexToBytes(env.IV)
	if err != nil {
		return "", fmt.Errorf("iv: %w", err)
	}
	if len(iv) != domain.IVSize {
		return "", fmt.Errorf("%w: iv must be %d bytes, got %d", domain.ErrMalformedEnvelope, domain.IVSize, len(iv))
	}

	tag, err := HexToBytes(env.Tag)
	if err != nil {
		return "", fmt.Errorf("tag: %w", err)
	}
	if len(tag) != domain.TagSize {
		return "", fmt.Errorf("%w: tag must be %d bytes, got %d", domain.ErrMalformedEnvelope, domain.TagSize, len(tag))
	}

	data, err := HexToBytes(env.Data)
	if err != nil {
		return "", fmt.Errorf("data: %w", err)
	}

	c, err := NewAESGCM(key)
	if err != nil {
		return "", err
	}

	plaintext, err := c.Open(iv, data, tag)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// IsEncrypted reports whether value has the envelope shape. It accepts
// domain.Envelope, *domain.Envelope, string and []byte; strings and bytes are
// parsed as JSON and must carry version, iv, tag and data as strings. An
// envelope struct always has that shape. Plain text, malformed JSON, JSON
// missing a required field and values of any other type report false.
func IsEncrypted(value any) bool {
	switch v := value.(type) {
	case domain.Envelope:
		return true
	case *domain.Envelope:
		return v != nil
	case string:
		_, ok := domain.ParseValue(v).(domain.Envelope)
		return ok
	case []byte:
		_, ok := domain.ParseValue(string(v)).(domain.Envelope)
		return ok
	case json.RawMessage:
		_, ok := domain.ParseValue(string(v)).(domain.Envelope)
		return ok
	default:
		return false
	}
}

// GenerateKey returns 32 random bytes from crypto/rand.
func GenerateKey() ([]byte, error) {
	key := make([]byte, domain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// HexToBytes decodes a hex string. Odd-length or non-hex input returns
// ErrInvalidHex.
func HexToBytes(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidHex, err)
	}
	return b, nil
}

// BytesToHex encodes b as lowercase hex.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}
