package service

import "github.com/stakwork/fieldcrypt/internal/encryption/domain"

// FieldEncryptor encrypts and decrypts named field values.
//
// The field name is used only to attribute errors; every field shares the
// registry's key namespace.
type FieldEncryptor interface {
	// EncryptField encrypts with the active key.
	EncryptField(fieldName, plaintext string) (*domain.Envelope, error)

	// EncryptFieldWithKeyID encrypts with a specific registered key.
	EncryptFieldWithKeyID(fieldName, plaintext, keyID string) (*domain.Envelope, error)

	// DecryptField decrypts a stored string. Strings that are not envelopes
	// are legacy plaintext and are returned unchanged.
	DecryptField(fieldName, value string) (string, error)

	// DecryptEnvelope decrypts an envelope. There is no plaintext passthrough.
	DecryptEnvelope(fieldName string, env *domain.Envelope) (string, error)

	// DecryptEnvelopeString strictly parses s as an envelope and decrypts it.
	DecryptEnvelopeString(fieldName, s string) (string, error)

	// DecryptValue decrypts an Envelope or returns PlainText unchanged.
	DecryptValue(fieldName string, value domain.Value) (string, error)

	// EncryptEnvVars encrypts each variable, preserving order.
	EncryptEnvVars(vars []domain.EnvVar) ([]domain.EncryptedEnvVar, error)

	// DecryptEnvVars decrypts each variable, preserving order.
	DecryptEnvVars(vars []domain.StoredEnvVar) ([]domain.EnvVar, error)

	// ActiveKeyID returns the id new envelopes are tagged with.
	ActiveKeyID() string
}
