package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/stakwork/fieldcrypt/internal/database/mocks"
	encryptionDomain "github.com/stakwork/fieldcrypt/internal/encryption/domain"
	encryptionServiceMocks "github.com/stakwork/fieldcrypt/internal/encryption/service/mocks"
	apperrors "github.com/stakwork/fieldcrypt/internal/errors"
	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
	fieldsUsecaseMocks "github.com/stakwork/fieldcrypt/internal/fields/usecase/mocks"
	"github.com/stakwork/fieldcrypt/internal/testutil"
)

var poolKeyRef = fieldsDomain.FieldRef{OwnerType: "swarm", OwnerID: "swarm-1", FieldName: "poolApiKey"}

func storedField(value, keyID string) *fieldsDomain.EncryptedField {
	return &fieldsDomain.EncryptedField{
		ID:        uuid.Must(uuid.NewV7()),
		OwnerType: poolKeyRef.OwnerType,
		OwnerID:   poolKeyRef.OwnerID,
		FieldName: poolKeyRef.FieldName,
		Value:     value,
		KeyID:     keyID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestFieldUseCase_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_StoresEnvelopeUnderActiveKey", func(t *testing.T) {
		svc, _ := testutil.NewEncryptionService(t)
		repo := &fieldsUsecaseMocks.MockFieldRepository{}
		uc := NewFieldUseCase(&databaseMocks.MockTxManager{}, repo, svc)

		var stored *fieldsDomain.EncryptedField
		repo.On("Upsert", ctx, mock.AnythingOfType("*domain.EncryptedField")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*fieldsDomain.EncryptedField)
			}).
			Return(nil).
			Once()

		field, err := uc.Put(ctx, poolKeyRef, "pool-secret")
		require.NoError(t, err)
		assert.Same(t, stored, field)
		assert.Equal(t, poolKeyRef, field.Ref())
		assert.Equal(t, testutil.TestKeyID, field.KeyID)
		assert.NotEqual(t, uuid.Nil, field.ID)
		assert.False(t, field.IsLegacy())
		assert.NotContains(t, field.Value, "pool-secret")

		plaintext, err := svc.DecryptEnvelopeString(field.FieldName, field.Value)
		require.NoError(t, err)
		assert.Equal(t, "pool-secret", plaintext)
		repo.AssertExpectations(t)
	})

	t.Run("Error_EncryptionFails", func(t *testing.T) {
		encryptor := &encryptionServiceMocks.MockFieldEncryptor{}
		repo := &fieldsUsecaseMocks.MockFieldRepository{}
		uc := NewFieldUseCase(&databaseMocks.MockTxManager{}, repo, encryptor)

		encErr := &encryptionDomain.FieldError{
			Op: "encrypt", Field: "poolApiKey", Err: encryptionDomain.ErrKeyNotFound,
		}
		encryptor.On("EncryptField", "poolApiKey", "pool-secret").Return(nil, encErr).Once()

		field, err := uc.Put(ctx, poolKeyRef, "pool-secret")
		assert.Nil(t, field)
		assert.ErrorIs(t, err, encryptionDomain.ErrKeyNotFound)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Error_RepositoryFails", func(t *testing.T) {
		svc, _ := testutil.NewEncryptionService(t)
		repo := &fieldsUsecaseMocks.MockFieldRepository{}
		uc := NewFieldUseCase(&databaseMocks.MockTxManager{}, repo, svc)

		dbErr := errors.New("database down")
		repo.On("Upsert", ctx, mock.Anything).Return(dbErr).Once()

		_, err := uc.Put(ctx, poolKeyRef, "pool-secret")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestFieldUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DecryptsEnvelope", func(t *testing.T) {
		svc, _ := testutil.NewEncryptionService(t)
		env, err := svc.EncryptFieldWithKeyID("poolApiKey", "pool-secret", testutil.AltKeyID)
		require.NoError(t, err)

		repo := &fieldsUsecaseMocks.MockFieldRepository{}
		repo.On("Get", ctx, poolKeyRef).Return(storedField(env.String(), testutil.AltKeyID), nil).Once()

		field, err := NewFieldUseCase(&databaseMocks.MockTxManager{}, repo, svc).Get(ctx, poolKeyRef)
		require.NoError(t, err)
		assert.Equal(t, "pool-secret", field.Plaintext)
	})

	t.Run("Success_LegacyPlaintextPassesThrough", func(t *testing.T) {
		svc, _ := testutil.NewEncryptionService(t)
		repo := &fieldsUsecaseMocks.MockFieldRepository{}
		repo.On("Get", ctx, poolKeyRef).Return(storedField("legacy-token", ""), nil).Once()

		field, err := NewFieldUseCase(&databaseMocks.MockTxManager{}, repo, svc).Get(ctx, poolKeyRef)
		require.NoError(t, err)
		assert.Equal(t, "legacy-token", field.Plaintext)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		svc, _ := testutil.NewEncryptionService(t)
		repo := &fieldsUsecaseMocks.MockFieldRepository{}
		repo.On("Get", ctx, poolKeyRef).Return(nil, fieldsDomain.ErrFieldNotFound).Once()

		_, err := NewFieldUseCase(&databaseMocks.MockTxManager{}, repo, svc).Get(ctx, poolKeyRef)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("Error_TamperedEnvelope", func(t *testing.T) {
		svc, _ := testutil.NewEncryptionService(t)
		env, err := svc.EncryptField("poolApiKey", "pool-secret")
		require.NoError(t, err)
		env.Tag = env.IV

		repo := &fieldsUsecaseMocks.MockFieldRepository{}
		repo.On("Get", ctx, poolKeyRef).Return(storedField(env.String(), env.KeyID), nil).Once()

		_, err = NewFieldUseCase(&databaseMocks.MockTxManager{}, repo, svc).Get(ctx, poolKeyRef)
		assert.ErrorIs(t, err, encryptionDomain.ErrDecryptionFailed)
	})
}

func TestFieldUseCase_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := testutil.NewEncryptionService(t)
	repo := &fieldsUsecaseMocks.MockFieldRepository{}
	uc := NewFieldUseCase(&databaseMocks.MockTxManager{}, repo, svc)

	listed := []*fieldsDomain.EncryptedField{storedField("x", "k-test")}
	repo.On("ListByOwner", ctx, "swarm", "swarm-1", 0, 50).Return(listed, nil).Once()
	repo.On("Delete", ctx, poolKeyRef).Return(fieldsDomain.ErrFieldNotFound).Once()

	fields, err := uc.List(ctx, "swarm", "swarm-1", 0, 50)
	require.NoError(t, err)
	assert.Equal(t, listed, fields)
	assert.Empty(t, fields[0].Plaintext)

	assert.ErrorIs(t, uc.Delete(ctx, poolKeyRef), fieldsDomain.ErrFieldNotFound)
	repo.AssertExpectations(t)
}

func TestFieldUseCase_Rotate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ReencryptsStaleAndLegacyFields", func(t *testing.T) {
		svc, _ := testutil.NewEncryptionService(t)
		old, err := svc.EncryptFieldWithKeyID("poolApiKey", "pool-secret", testutil.AltKeyID)
		require.NoError(t, err)

		stale := storedField(old.String(), testutil.AltKeyID)
		legacy := storedField("legacy-token", "")
		legacy.FieldName = "stakworkApiKey"

		txManager := &databaseMocks.MockTxManager{}
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()

		repo := &fieldsUsecaseMocks.MockFieldRepository{}
		repo.On("ListForRotation", ctx, testutil.TestKeyID, 10).
			Return([]*fieldsDomain.EncryptedField{stale, legacy}, nil).
			Once()

		rewritten := map[uuid.UUID]string{}
		repo.On("UpdateValue", ctx, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string"), testutil.TestKeyID).
			Run(func(args mock.Arguments) {
				rewritten[args.Get(1).(uuid.UUID)] = args.String(2)
			}).
			Return(nil).
			Twice()

		count, err := NewFieldUseCase(txManager, repo, svc).Rotate(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		plaintext, err := svc.DecryptEnvelopeString("poolApiKey", rewritten[stale.ID])
		require.NoError(t, err)
		assert.Equal(t, "pool-secret", plaintext)

		plaintext, err = svc.DecryptEnvelopeString("stakworkApiKey", rewritten[legacy.ID])
		require.NoError(t, err)
		assert.Equal(t, "legacy-token", plaintext)

		txManager.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("Success_NothingToRotate", func(t *testing.T) {
		svc, _ := testutil.NewEncryptionService(t)
		txManager := &databaseMocks.MockTxManager{}
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()

		repo := &fieldsUsecaseMocks.MockFieldRepository{}
		repo.On("ListForRotation", ctx, testutil.TestKeyID, 10).
			Return([]*fieldsDomain.EncryptedField{}, nil).
			Once()

		count, err := NewFieldUseCase(txManager, repo, svc).Rotate(ctx, 10)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Error_UndecryptableFieldAbortsBatch", func(t *testing.T) {
		svc, _ := testutil.NewEncryptionService(t)
		env, err := svc.EncryptFieldWithKeyID("poolApiKey", "pool-secret", testutil.AltKeyID)
		require.NoError(t, err)
		env.KeyID = "k-retired"

		txManager := &databaseMocks.MockTxManager{}
		txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()

		repo := &fieldsUsecaseMocks.MockFieldRepository{}
		repo.On("ListForRotation", ctx, testutil.TestKeyID, 10).
			Return([]*fieldsDomain.EncryptedField{storedField(env.String(), "k-retired")}, nil).
			Once()

		count, err := NewFieldUseCase(txManager, repo, svc).Rotate(ctx, 10)
		assert.Zero(t, count)
		assert.ErrorIs(t, err, encryptionDomain.ErrKeyNotFound)
		repo.AssertNotCalled(t, "UpdateValue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_TransactionFails", func(t *testing.T) {
		svc, _ := testutil.NewEncryptionService(t)
		txErr := errors.New("begin failed")
		txManager := &databaseMocks.MockTxManager{}
		txManager.On("WithTx", ctx, mock.Anything).Return(txErr).Once()

		count, err := NewFieldUseCase(txManager, &fieldsUsecaseMocks.MockFieldRepository{}, svc).Rotate(ctx, 10)
		assert.Zero(t, count)
		assert.ErrorIs(t, err, txErr)
	})

	t.Run("Error_InvalidBatchSize", func(t *testing.T) {
		svc, _ := testutil.NewEncryptionService(t)
		uc := NewFieldUseCase(&databaseMocks.MockTxManager{}, &fieldsUsecaseMocks.MockFieldRepository{}, svc)

		_, err := uc.Rotate(ctx, 0)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}
