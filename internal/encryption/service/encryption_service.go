package service

import (
	"fmt"
	"time"

	"github.com/stakwork/fieldcrypt/internal/encryption/domain"
)

const (
	opEncrypt = "encrypt"
	opDecrypt = "decrypt"
)

// EncryptionService combines a KeyRegistry with the primitives. One instance
// is built per process and shared by every caller.
type EncryptionService struct {
	registry *domain.KeyRegistry
	now      func() time.Time
}

// NewEncryptionService creates an EncryptionService backed by registry.
func NewEncryptionService(registry *domain.KeyRegistry) *EncryptionService {
	return &EncryptionService{
		registry: registry,
		now:      time.Now,
	}
}

// EncryptField encrypts plaintext with the active key and tags the envelope
// with the active key id.
func (s *EncryptionService) EncryptField(fieldName, plaintext string) (*domain.Envelope, error) {
	return s.encrypt(fieldName, plaintext, "")
}

// EncryptFieldWithKeyID encrypts plaintext with keyID regardless of which key
// is active. An unregistered keyID returns ErrKeyNotFound.
func (s *EncryptionService) EncryptFieldWithKeyID(fieldName, plaintext, keyID string) (*domain.Envelope, error) {
	if keyID == "" {
		return nil, &domain.FieldError{Op: opEncrypt, Field: fieldName, Err: domain.ErrEmptyKeyID}
	}
	return s.encrypt(fieldName, plaintext, keyID)
}

func (s *EncryptionService) encrypt(fieldName, plaintext, keyID string) (*domain.Envelope, error) {
	// GetKey("") resolves the active key and its id under one lock.
	key, err := s.registry.GetKey(keyID)
	if err != nil {
		return nil, &domain.FieldError{Op: opEncrypt, Field: fieldName, KeyID: keyID, Err: err}
	}
	defer domain.Zero(key.Material)

	env, err := encryptAt(plaintext, key.Material, key.ID, s.now())
	if err != nil {
		return nil, &domain.FieldError{Op: opEncrypt, Field: fieldName, KeyID: key.ID, Err: err}
	}
	return env, nil
}

// DecryptField decrypts a value as stored in a database column.
//
// A string that does not strictly parse as an envelope is legacy plaintext
// written before encryption was introduced; it is returned unchanged. Use
// DecryptEnvelopeString when a value must be encrypted.
func (s *EncryptionService) DecryptField(fieldName, value string) (string, error) {
	return s.DecryptValue(fieldName, domain.ParseValue(value))
}

// DecryptValue dispatches on the Value variant.
func (s *EncryptionService) DecryptValue(fieldName string, value domain.Value) (string, error) {
	switch v := value.(type) {
	case domain.Envelope:
		return s.DecryptEnvelope(fieldName, &v)
	case *domain.Envelope:
		return s.DecryptEnvelope(fieldName, v)
	case domain.PlainText:
		return string(v), nil
	default:
		return "", &domain.FieldError{
			Op:    opDecrypt,
			Field: fieldName,
			Err:   fmt.Errorf("%w: unsupported value type %T", domain.ErrMalformedEnvelope, value),
		}
	}
}

// DecryptEnvelopeString strictly parses s and decrypts it. Plain strings fail
// with ErrMalformedEnvelope.
func (s *EncryptionService) DecryptEnvelopeString(fieldName, value string) (string, error) {
	env, err := domain.ParseEnvelope(value)
	if err != nil {
		return "", &domain.FieldError{Op: opDecrypt, Field: fieldName, Err: err}
	}
	return s.DecryptEnvelope(fieldName, env)
}

// DecryptEnvelope resolves env.KeyID in the registry and decrypts. An
// envelope without a key id uses the active key. An unknown key id fails with
// ErrKeyNotFound; other keys are never tried.
func (s *EncryptionService) DecryptEnvelope(fieldName string, env *domain.Envelope) (string, error) {
	if env == nil {
		return "", &domain.FieldError{
			Op:    opDecrypt,
			Field: fieldName,
			Err:   fmt.Errorf("%w: nil envelope", domain.ErrMalformedEnvelope),
		}
	}
	if err := env.Validate(); err != nil {
		return "", &domain.FieldError{Op: opDecrypt, Field: fieldName, KeyID: env.KeyID, Err: err}
	}

	key, err := s.registry.GetKey(env.KeyID)
	if err != nil {
		return "", &domain.FieldError{Op: opDecrypt, Field: fieldName, KeyID: env.KeyID, Err: err}
	}
	defer domain.Zero(key.Material)

	plaintext, err := Decrypt(env, key.Material)
	if err != nil {
		return "", &domain.FieldError{Op: opDecrypt, Field: fieldName, KeyID: key.ID, Err: err}
	}
	return plaintext, nil
}

// ActiveKeyID returns the registry's active key id.
func (s *EncryptionService) ActiveKeyID() string {
	return s.registry.ActiveKeyID()
}
