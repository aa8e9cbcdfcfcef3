// Package domain defines the encrypted field model: one secret value owned
// by an application record (a workspace's API key, a swarm's pool key, an
// account's OAuth token) and stored as an envelope.
package domain

import (
	"time"

	"github.com/google/uuid"

	encryptionDomain "github.com/stakwork/fieldcrypt/internal/encryption/domain"
)

// FieldRef addresses one field of one owner record.
type FieldRef struct {
	OwnerType string
	OwnerID   string
	FieldName string
}

// EncryptedField is a stored field value.
//
// Value holds the serialized envelope, or the original plaintext for rows
// written before encryption was introduced. KeyID mirrors the envelope key id
// so rotation can find stale rows without parsing values; it is empty for
// legacy rows.
type EncryptedField struct {
	ID        uuid.UUID
	OwnerType string
	OwnerID   string
	FieldName string
	Value     string
	KeyID     string
	// Plaintext is populated by reads only and never persisted.
	Plaintext string `json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref returns the field's address.
func (f *EncryptedField) Ref() FieldRef {
	return FieldRef{OwnerType: f.OwnerType, OwnerID: f.OwnerID, FieldName: f.FieldName}
}

// IsLegacy reports whether Value is plaintext rather than an envelope.
func (f *EncryptedField) IsLegacy() bool {
	_, ok := encryptionDomain.ParseValue(f.Value).(encryptionDomain.PlainText)
	return ok
}
