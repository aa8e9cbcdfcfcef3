package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
)

// MockFieldUseCase is a mock implementation of FieldUseCase.
type MockFieldUseCase struct {
	mock.Mock
}

// Put mocks the Put method of FieldUseCase.
func (m *MockFieldUseCase) Put(
	ctx context.Context,
	ref fieldsDomain.FieldRef,
	plaintext string,
) (*fieldsDomain.EncryptedField, error) {
	args := m.Called(ctx, ref, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fieldsDomain.EncryptedField), args.Error(1)
}

// Get mocks the Get method of FieldUseCase.
func (m *MockFieldUseCase) Get(
	ctx context.Context,
	ref fieldsDomain.FieldRef,
) (*fieldsDomain.EncryptedField, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fieldsDomain.EncryptedField), args.Error(1)
}

// List mocks the List method of FieldUseCase.
func (m *MockFieldUseCase) List(
	ctx context.Context,
	ownerType, ownerID string,
	offset, limit int,
) ([]*fieldsDomain.EncryptedField, error) {
	args := m.Called(ctx, ownerType, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fieldsDomain.EncryptedField), args.Error(1)
}

// Delete mocks the Delete method of FieldUseCase.
func (m *MockFieldUseCase) Delete(ctx context.Context, ref fieldsDomain.FieldRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// Rotate mocks the Rotate method of FieldUseCase.
func (m *MockFieldUseCase) Rotate(ctx context.Context, batchSize int) (int, error) {
	args := m.Called(ctx, batchSize)
	return args.Int(0), args.Error(1)
}
