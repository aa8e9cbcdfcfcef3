package domain

// Algorithm represents the authenticated cipher an envelope version is bound to.
type Algorithm string

const (
	// AES256GCM is AES with a 256-bit key in Galois/Counter Mode. It is the
	// only algorithm used by envelope version "1".
	AES256GCM Algorithm = "aes-256-gcm"
)

const (
	// EnvelopeVersion is the current envelope format version.
	EnvelopeVersion = "1"

	// KeySize is the required key length in bytes (256 bits).
	KeySize = 32

	// IVSize is the initialization vector length in bytes used by version "1".
	IVSize = 16

	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16

	// EncryptedAtLayout is the ISO-8601 layout (UTC, millisecond precision)
	// written to Envelope.EncryptedAt.
	EncryptedAtLayout = "2006-01-02T15:04:05.000Z"
)
