// Package mocks provides testify mocks for the field use case dependencies.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	fieldsDomain "github.com/stakwork/fieldcrypt/internal/fields/domain"
)

// MockFieldRepository is a mock implementation of FieldRepository.
type MockFieldRepository struct {
	mock.Mock
}

// Upsert mocks the Upsert method of FieldRepository.
func (m *MockFieldRepository) Upsert(ctx context.Context, field *fieldsDomain.EncryptedField) error {
	args := m.Called(ctx, field)
	return args.Error(0)
}

// Get mocks the Get method of FieldRepository.
func (m *MockFieldRepository) Get(
	ctx context.Context,
	ref fieldsDomain.FieldRef,
) (*fieldsDomain.EncryptedField, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fieldsDomain.EncryptedField), args.Error(1)
}

// ListByOwner mocks the ListByOwner method of FieldRepository.
func (m *MockFieldRepository) ListByOwner(
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

// Delete mocks the Delete method of FieldRepository.
func (m *MockFieldRepository) Delete(ctx context.Context, ref fieldsDomain.FieldRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// ListForRotation mocks the ListForRotation method of FieldRepository.
func (m *MockFieldRepository) ListForRotation(
	ctx context.Context,
	activeKeyID string,
	limit int,
) ([]*fieldsDomain.EncryptedField, error) {
	args := m.Called(ctx, activeKeyID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fieldsDomain.EncryptedField), args.Error(1)
}

// UpdateValue mocks the UpdateValue method of FieldRepository.
func (m *MockFieldRepository) UpdateValue(ctx context.Context, id uuid.UUID, value, keyID string) error {
	args := m.Called(ctx, id, value, keyID)
	return args.Error(0)
}
