package repository

import (
	"database/sql"

	apperrors "github.com/stakwork/fieldcrypt/internal/errors"
	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// scanField reads one row selected with fieldColumns. The id column is
// scanned through uuid.UUID's sql.Scanner, which accepts both the PostgreSQL
// text form and the 16-byte MySQL form.
func scanField(row rowScanner) (*fieldsDomain.EncryptedField, error) {
	var (
		field fieldsDomain.EncryptedField
		keyID sql.NullString
	)
	err := row.Scan(
		&field.ID,
		&field.OwnerType,
		&field.OwnerID,
		&field.FieldName,
		&field.Value,
		&keyID,
		&field.CreatedAt,
		&field.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	field.KeyID = keyID.String
	return &field, nil
}

func collectFields(rows *sql.Rows) (fields []*fieldsDomain.EncryptedField, err error) {
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = apperrors.Wrap(closeErr, "failed to close rows")
		}
	}()

	fields = make([]*fieldsDomain.EncryptedField, 0)
	for rows.Next() {
		field, err := scanField(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan encrypted field")
		}
		fields = append(fields, field)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate encrypted fields")
	}
	return fields, nil
}

func nullableKeyID(keyID string) sql.NullString {
	return sql.NullString{String: keyID, Valid: keyID != ""}
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return fieldsDomain.ErrFieldNotFound
	}
	return nil
}
