package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stakwork/fieldcrypt/internal/database"
	encryptionService "github.com/stakwork/fieldcrypt/internal/encryption/service"
	apperrors "github.com/stakwork/fieldcrypt/internal/errors"
	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
)

type fieldUseCase struct {
	txManager database.TxManager
	fieldRepo FieldRepository
	encryptor encryptionService.FieldEncryptor
}

// NewFieldUseCase creates a FieldUseCase.
func NewFieldUseCase(
	txManager database.TxManager,
	fieldRepo FieldRepository,
	encryptor encryptionService.FieldEncryptor,
) FieldUseCase {
	return &fieldUseCase{
		txManager: txManager,
		fieldRepo: fieldRepo,
		encryptor: encryptor,
	}
}

func (f *fieldUseCase) Put(
	ctx context.Context,
	ref fieldsDomain.FieldRef,
	plaintext string,
) (*fieldsDomain.EncryptedField, error) {
	env, err := f.encryptor.EncryptField(ref.FieldName, plaintext)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate field id")
	}

	now := time.Now().UTC()
	field := &fieldsDomain.EncryptedField{
		ID:        id,
		OwnerType: ref.OwnerType,
		OwnerID:   ref.OwnerID,
		FieldName: ref.FieldName,
		Value:     env.String(),
		KeyID:     env.KeyID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := f.fieldRepo.Upsert(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}

func (f *fieldUseCase) Get(ctx context.Context, ref fieldsDomain.FieldRef) (*fieldsDomain.EncryptedField, error) {
	field, err := f.fieldRepo.Get(ctx, ref)
	if err != nil {
		return nil, err
	}

	plaintext, err := f.encryptor.DecryptField(field.FieldName, field.Value)
	if err != nil {
		return nil, err
	}
	field.Plaintext = plaintext
	return field, nil
}

func (f *fieldUseCase) List(
	ctx context.Context,
	ownerType, ownerID string,
	offset, limit int,
) ([]*fieldsDomain.EncryptedField, error) {
	return f.fieldRepo.ListByOwner(ctx, ownerType, ownerID, offset, limit)
}

func (f *fieldUseCase) Delete(ctx context.Context, ref fieldsDomain.FieldRef) error {
	return f.fieldRepo.Delete(ctx, ref)
}

func (f *fieldUseCase) Rotate(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "batch size must be positive")
	}

	activeKeyID := f.encryptor.ActiveKeyID()
	rotated := 0

	err := f.txManager.WithTx(ctx, func(ctx context.Context) error {
		fields, err := f.fieldRepo.ListForRotation(ctx, activeKeyID, batchSize)
		if err != nil {
			return err
		}

		for _, field := range fields {
			plaintext, err := f.encryptor.DecryptField(field.FieldName, field.Value)
			if err != nil {
				return err
			}

			env, err := f.encryptor.EncryptField(field.FieldName, plaintext)
			if err != nil {
				return err
			}

			if err := f.fieldRepo.UpdateValue(ctx, field.ID, env.String(), env.KeyID); err != nil {
				return err
			}
		}

		rotated = len(fields)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rotated, nil
}
