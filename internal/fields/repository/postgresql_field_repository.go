// Package repository persists encrypted fields in PostgreSQL or MySQL. Every
// method runs on the transaction carried by the context when there is one.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/stakwork/fieldcrypt/internal/database"
	apperrors "github.com/stakwork/fieldcrypt/internal/errors"
	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
)

const fieldColumns = `id, owner_type, owner_id, field_name, value, key_id, created_at, updated_at`

// PostgreSQLFieldRepository implements field persistence for PostgreSQL.
type PostgreSQLFieldRepository struct {
	db *sql.DB
}

// NewPostgreSQLFieldRepository creates a PostgreSQL field repository.
func NewPostgreSQLFieldRepository(db *sql.DB) *PostgreSQLFieldRepository {
	return &PostgreSQLFieldRepository{db: db}
}

// Upsert inserts the field or replaces the value of the existing row with
// the same reference. The stored id and creation time are written back into
// field.
func (p *PostgreSQLFieldRepository) Upsert(ctx context.Context, field *fieldsDomain.EncryptedField) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO encrypted_fields (` + fieldColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (owner_type, owner_id, field_name)
			  DO UPDATE SET value = EXCLUDED.value, key_id = EXCLUDED.key_id, updated_at = EXCLUDED.updated_at
			  RETURNING id, created_at`

	err := querier.QueryRowContext(
		ctx,
		query,
		field.ID,
		field.OwnerType,
		field.OwnerID,
		field.FieldName,
		field.Value,
		nullableKeyID(field.KeyID),
		field.CreatedAt,
		field.UpdatedAt,
	).Scan(&field.ID, &field.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert encrypted field")
	}
	return nil
}

// Get returns the field stored under ref.
func (p *PostgreSQLFieldRepository) Get(
	ctx context.Context,
	ref fieldsDomain.FieldRef,
) (*fieldsDomain.EncryptedField, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + fieldColumns + `
			  FROM encrypted_fields
			  WHERE owner_type = $1 AND owner_id = $2 AND field_name = $3`

	field, err := scanField(querier.QueryRowContext(ctx, query, ref.OwnerType, ref.OwnerID, ref.FieldName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fieldsDomain.ErrFieldNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get encrypted field")
	}
	return field, nil
}

// ListByOwner returns the fields of one owner ordered by field name.
func (p *PostgreSQLFieldRepository) ListByOwner(
	ctx context.Context,
	ownerType, ownerID string,
	offset, limit int,
) ([]*fieldsDomain.EncryptedField, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + fieldColumns + `
			  FROM encrypted_fields
			  WHERE owner_type = $1 AND owner_id = $2
			  ORDER BY field_name ASC
			  LIMIT $3 OFFSET $4`

	rows, err := querier.QueryContext(ctx, query, ownerType, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list encrypted fields")
	}
	return collectFields(rows)
}

// Delete removes the field stored under ref.
func (p *PostgreSQLFieldRepository) Delete(ctx context.Context, ref fieldsDomain.FieldRef) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM encrypted_fields
			  WHERE owner_type = $1 AND owner_id = $2 AND field_name = $3`

	result, err := querier.ExecContext(ctx, query, ref.OwnerType, ref.OwnerID, ref.FieldName)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete encrypted field")
	}
	return requireAffected(result)
}

// ListForRotation locks and returns up to limit fields whose key id differs
// from activeKeyID, including legacy rows without a key id. Locked rows are
// skipped so concurrent rotations do not block each other.
func (p *PostgreSQLFieldRepository) ListForRotation(
	ctx context.Context,
	activeKeyID string,
	limit int,
) ([]*fieldsDomain.EncryptedField, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + fieldColumns + `
			  FROM encrypted_fields
			  WHERE key_id IS NULL OR key_id <> $1
			  ORDER BY id
			  LIMIT $2
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, activeKeyID, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list encrypted fields for rotation")
	}
	return collectFields(rows)
}

// UpdateValue replaces the stored value and key id of one field.
func (p *PostgreSQLFieldRepository) UpdateValue(ctx context.Context, id uuid.UUID, value, keyID string) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE encrypted_fields
			  SET value = $1, key_id = $2, updated_at = NOW()
			  WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, value, nullableKeyID(keyID), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update encrypted field")
	}
	return requireAffected(result)
}
