package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
	"github.com/stakwork/fieldcrypt/internal/testutil"
)

func TestMySQLFieldRepository_Upsert(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLFieldRepository(db)
	field := newField("stakworkApiKey", `{"version":"1"}`, "k-test")
	binaryID, err := field.ID.MarshalBinary()
	require.NoError(t, err)

	existingID := uuid.Must(uuid.NewV7())

	mock.ExpectExec(`INSERT INTO encrypted_fields .* ON DUPLICATE KEY UPDATE`).
		WithArgs(
			binaryID, "swarm", "swarm-1", "stakworkApiKey", `{"version":"1"}`, "k-test",
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`SELECT id, created_at FROM encrypted_fields`).
		WithArgs("swarm", "swarm-1", "stakworkApiKey").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(existingID[:], field.CreatedAt))

	require.NoError(t, repo.Upsert(context.Background(), field))
	assert.Equal(t, existingID, field.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLFieldRepository_Get(t *testing.T) {
	ref := fieldsDomain.FieldRef{OwnerType: "swarm", OwnerID: "swarm-1", FieldName: "poolApiKey"}

	t.Run("found with binary id", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLFieldRepository(db)
		want := newField("poolApiKey", `{"version":"1"}`, "k-test")

		mock.ExpectQuery(`WHERE owner_type = \? AND owner_id = \? AND field_name = \?`).
			WithArgs("swarm", "swarm-1", "poolApiKey").
			WillReturnRows(sqlmock.NewRows(fieldRowColumns).AddRow(
				want.ID[:], want.OwnerType, want.OwnerID, want.FieldName,
				want.Value, want.KeyID, want.CreatedAt, want.UpdatedAt,
			))

		got, err := repo.Get(context.Background(), ref)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := testutil.NewMockDB(t)
		repo := NewMySQLFieldRepository(db)

		mock.ExpectQuery(`SELECT .* FROM encrypted_fields`).WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), ref)
		assert.ErrorIs(t, err, fieldsDomain.ErrFieldNotFound)
	})
}

func TestMySQLFieldRepository_ListForRotation(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLFieldRepository(db)
	legacy := newField("accessToken", "plain", "")

	mock.ExpectQuery(`WHERE key_id IS NULL OR key_id <> \?\s+ORDER BY id\s+LIMIT \?`).
		WithArgs("k-new", 25).
		WillReturnRows(sqlmock.NewRows(fieldRowColumns).AddRow(
			legacy.ID[:], legacy.OwnerType, legacy.OwnerID, legacy.FieldName,
			legacy.Value, nil, legacy.CreatedAt, legacy.UpdatedAt,
		))

	fields, err := repo.ListForRotation(context.Background(), "k-new", 25)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, legacy.ID, fields[0].ID)
	assert.True(t, fields[0].IsLegacy())
}

func TestMySQLFieldRepository_UpdateValue(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLFieldRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec(`UPDATE encrypted_fields\s+SET value = \?, key_id = \?, updated_at = NOW\(6\)`).
		WithArgs("new-envelope", "k-new", id[:]).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateValue(context.Background(), id, "new-envelope", "k-new"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLFieldRepository_Delete(t *testing.T) {
	db, mock := testutil.NewMockDB(t)
	repo := NewMySQLFieldRepository(db)
	ref := fieldsDomain.FieldRef{OwnerType: "account", OwnerID: "acc-9", FieldName: "access_token"}

	mock.ExpectExec(`DELETE FROM encrypted_fields`).
		WithArgs("account", "acc-9", "access_token").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), ref), fieldsDomain.ErrFieldNotFound)
}

func TestMySQLFieldRepository_Integration(t *testing.T) {
	testutil.SkipIfNoMySQL(t)
	db := testutil.SetupMySQLDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupDB(t, db)

	repo := NewMySQLFieldRepository(db)
	ctx := context.Background()

	field := newField("poolApiKey", "legacy-plain", "")
	require.NoError(t, repo.Upsert(ctx, field))

	fields, err := repo.ListByOwner(ctx, "swarm", "swarm-1", 0, 10)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, field.ID, fields[0].ID)
	assert.True(t, fields[0].IsLegacy())

	require.NoError(t, repo.UpdateValue(ctx, field.ID, `{"version":"1"}`, "k-test"))
	got, err := repo.Get(ctx, field.Ref())
	require.NoError(t, err)
	assert.Equal(t, "k-test", got.KeyID)

	require.NoError(t, repo.Delete(ctx, field.Ref()))
}
