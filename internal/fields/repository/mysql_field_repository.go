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

// MySQLFieldRepository implements field persistence for MySQL. Ids are
// stored as BINARY(16) and the DSN must enable parseTime.
type MySQLFieldRepository struct {
	db *sql.DB
}

// NewMySQLFieldRepository creates a MySQL field repository.
func NewMySQLFieldRepository(db *sql.DB) *MySQLFieldRepository {
	return &MySQLFieldRepository{db: db}
}

// Upsert inserts the field or replaces the value of the existing row with
// the same reference, then reads back the stored id and creation time.
func (m *MySQLFieldRepository) Upsert(ctx context.Context, field *fieldsDomain.EncryptedField) error {
	querier := database.GetTx(ctx, m.db)

	id, err := field.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal field id")
	}

	query := `INSERT INTO encrypted_fields (` + fieldColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE value = VALUES(value), key_id = VALUES(key_id), updated_at = VALUES(updated_at)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		field.OwnerType,
		field.OwnerID,
		field.FieldName,
		field.Value,
		nullableKeyID(field.KeyID),
		field.CreatedAt,
		field.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to upsert encrypted field")
	}

	query = `SELECT id, created_at FROM encrypted_fields
			 WHERE owner_type = ? AND owner_id = ? AND field_name = ?`

	err = querier.QueryRowContext(ctx, query, field.OwnerType, field.OwnerID, field.FieldName).
		Scan(&field.ID, &field.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to read upserted encrypted field")
	}
	return nil
}

// Get returns the field stored under ref.
func (m *MySQLFieldRepository) Get(
	ctx context.Context,
	ref fieldsDomain.FieldRef,
) (*fieldsDomain.EncryptedField, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + fieldColumns + `
			  FROM encrypted_fields
			  WHERE owner_type = ? AND owner_id = ? AND field_name = ?`

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
func (m *MySQLFieldRepository) ListByOwner(
	ctx context.Context,
	ownerType, ownerID string,
	offset, limit int,
) ([]*fieldsDomain.EncryptedField, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + fieldColumns + `
			  FROM encrypted_fields
			  WHERE owner_type = ? AND owner_id = ?
			  ORDER BY field_name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, ownerType, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list encrypted fields")
	}
	return collectFields(rows)
}

// Delete removes the field stored under ref.
func (m *MySQLFieldRepository) Delete(ctx context.Context, ref fieldsDomain.FieldRef) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM encrypted_fields
			  WHERE owner_type = ? AND owner_id = ? AND field_name = ?`

	result, err := querier.ExecContext(ctx, query, ref.OwnerType, ref.OwnerID, ref.FieldName)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete encrypted field")
	}
	return requireAffected(result)
}

// ListForRotation locks and returns up to limit fields whose key id differs
// from activeKeyID, including legacy rows without a key id.
func (m *MySQLFieldRepository) ListForRotation(
	ctx context.Context,
	activeKeyID string,
	limit int,
) ([]*fieldsDomain.EncryptedField, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + fieldColumns + `
			  FROM encrypted_fields
			  WHERE key_id IS NULL OR key_id <> ?
			  ORDER BY id
			  LIMIT ?
			  FOR UPDATE SKIP LOCKED`

	rows, err := querier.QueryContext(ctx, query, activeKeyID, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list encrypted fields for rotation")
	}
	return collectFields(rows)
}

// UpdateValue replaces the stored value and key id of one field.
func (m *MySQLFieldRepository) UpdateValue(ctx context.Context, id uuid.UUID, value, keyID string) error {
	querier := database.GetTx(ctx, m.db)

	binaryID, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal field id")
	}

	query := `UPDATE encrypted_fields
			  SET value = ?, key_id = ?, updated_at = NOW(6)
			  WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, value, nullableKeyID(keyID), binaryID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update encrypted field")
	}
	return requireAffected(result)
}
