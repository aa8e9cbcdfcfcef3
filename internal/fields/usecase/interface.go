// Package usecase stores application field values encrypted at rest and
// re-encrypts them when the active key changes.
package usecase

import (
	"context"

	"github.com/google/uuid"

	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
)

// FieldRepository defines persistence for encrypted fields.
type FieldRepository interface {
	Upsert(ctx context.Context, field *fieldsDomain.EncryptedField) error
	Get(ctx context.Context, ref fieldsDomain.FieldRef) (*fieldsDomain.EncryptedField, error)
	ListByOwner(ctx context.Context, ownerType, ownerID string, offset, limit int) ([]*fieldsDomain.EncryptedField, error)
	Delete(ctx context.Context, ref fieldsDomain.FieldRef) error
	// ListForRotation returns fields not encrypted under activeKeyID,
	// locking them for the current transaction.
	ListForRotation(ctx context.Context, activeKeyID string, limit int) ([]*fieldsDomain.EncryptedField, error)
	UpdateValue(ctx context.Context, id uuid.UUID, value, keyID string) error
}

// FieldUseCase defines the field store operations.
type FieldUseCase interface {
	// Put encrypts plaintext with the active key and stores it under ref,
	// replacing any previous value.
	Put(ctx context.Context, ref fieldsDomain.FieldRef, plaintext string) (*fieldsDomain.EncryptedField, error)

	// Get loads and decrypts the field. Legacy plaintext values are returned
	// as stored. The result carries the plaintext in Plaintext.
	Get(ctx context.Context, ref fieldsDomain.FieldRef) (*fieldsDomain.EncryptedField, error)

	// List returns the stored fields of one owner without decrypting them.
	List(ctx context.Context, ownerType, ownerID string, offset, limit int) ([]*fieldsDomain.EncryptedField, error)

	Delete(ctx context.Context, ref fieldsDomain.FieldRef) error

	// Rotate re-encrypts up to batchSize fields that are not under the
	// active key, including legacy plaintext, in one transaction. It returns
	// the number of fields rewritten; zero means nothing is left to rotate.
	Rotate(ctx context.Context, batchSize int) (int, error)
}
