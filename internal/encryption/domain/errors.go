package domain

import (
	"fmt"

	"github.com/stakwork/fieldcrypt/internal/errors"
)

// Encryption error definitions.
//
// These sentinels wrap the generic kinds from internal/errors so handlers can
// map them to status codes. Messages never contain plaintext or key bytes.
var (
	// ErrEncryptionKeyNotSet indicates the primary key configuration is missing.
	ErrEncryptionKeyNotSet = errors.Wrap(errors.ErrInvalidInput, "TOKEN_ENCRYPTION_KEY not set")

	// ErrEncryptionKeyIDNotSet indicates the primary key id configuration is missing.
	ErrEncryptionKeyIDNotSet = errors.Wrap(errors.ErrInvalidInput, "TOKEN_ENCRYPTION_KEY_ID not set")

	// ErrInvalidKeysFormat indicates ENCRYPTION_KEYS is not a list of "id:hex" pairs.
	ErrInvalidKeysFormat = errors.Wrap(errors.ErrInvalidInput, "invalid ENCRYPTION_KEYS format")

	// ErrInvalidKeyHex indicates key material is not valid hex.
	ErrInvalidKeyHex = errors.Wrap(errors.ErrInvalidInput, "invalid key hex")

	// ErrInvalidKeySize indicates key material is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrEmptyKeyID indicates a key was registered without an id.
	ErrEmptyKeyID = errors.Wrap(errors.ErrInvalidInput, "empty key id")

	// ErrKeyNotFound indicates the requested key id is not registered.
	//
	// The registry never falls back to the active key for an unknown id, so
	// this error always means a configuration gap, not tampering.
	ErrKeyNotFound = errors.Wrap(errors.ErrInvalidInput, "encryption key not found")

	// ErrDecryptionFailed indicates authentication of the ciphertext failed.
	//
	// Wrong key and modified iv/tag/data are reported identically.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrMalformedEnvelope indicates a value is not a structurally valid envelope.
	ErrMalformedEnvelope = errors.Wrap(errors.ErrInvalidInput, "malformed envelope")

	// ErrUnsupportedEnvelopeVersion indicates an envelope version this build cannot read.
	ErrUnsupportedEnvelopeVersion = errors.Wrap(errors.ErrInvalidInput, "unsupported envelope version")

	// ErrInvalidHex indicates an odd-length or non-hex string was decoded.
	ErrInvalidHex = errors.Wrap(errors.ErrInvalidInput, "invalid hex")
)

// FieldError attributes an encryption failure to a field and key id.
type FieldError struct {
	Op    string // "encrypt" or "decrypt"
	Field string
	KeyID string
	Err   error
}

// Error implements error. Only the field name and key id are included.
func (e *FieldError) Error() string {
	if e.KeyID == "" {
		return fmt.Sprintf("%s field %q: %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("%s field %q with key %q: %v", e.Op, e.Field, e.KeyID, e.Err)
}

// Unwrap returns the underlying error.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// EnvVarError identifies which environment variable failed in a bulk operation.
type EnvVarError struct {
	Index int
	Name  string
	Err   error
}

// Error implements error.
func (e *EnvVarError) Error() string {
	return fmt.Sprintf("env var %q (index %d): %v", e.Name, e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *EnvVarError) Unwrap() error {
	return e.Err
}
