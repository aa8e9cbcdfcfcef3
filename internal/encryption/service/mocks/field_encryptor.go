// Package mocks provides a testify mock for service.FieldEncryptor.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/stakwork/fieldcrypt/internal/encryption/domain"
)

// MockFieldEncryptor is a mock implementation of FieldEncryptor.
type MockFieldEncryptor struct {
	mock.Mock
}

// EncryptField mocks the EncryptField method of FieldEncryptor.
func (m *MockFieldEncryptor) EncryptField(fieldName, plaintext string) (*domain.Envelope, error) {
	args := m.Called(fieldName, plaintext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Envelope), args.Error(1)
}

// EncryptFieldWithKeyID mocks the EncryptFieldWithKeyID method of FieldEncryptor.
func (m *MockFieldEncryptor) EncryptFieldWithKeyID(fieldName, plaintext, keyID string) (*domain.Envelope, error) {
	args := m.Called(fieldName, plaintext, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Envelope), args.Error(1)
}

// DecryptField mocks the DecryptField method of FieldEncryptor.
func (m *MockFieldEncryptor) DecryptField(fieldName, value string) (string, error) {
	args := m.Called(fieldName, value)
	return args.String(0), args.Error(1)
}

// DecryptEnvelope mocks the DecryptEnvelope method of FieldEncryptor.
func (m *MockFieldEncryptor) DecryptEnvelope(fieldName string, env *domain.Envelope) (string, error) {
	args := m.Called(fieldName, env)
	return args.String(0), args.Error(1)
}

// DecryptEnvelopeString mocks the DecryptEnvelopeString method of FieldEncryptor.
func (m *MockFieldEncryptor) DecryptEnvelopeString(fieldName, s string) (string, error) {
	args := m.Called(fieldName, s)
	return args.String(0), args.Error(1)
}

// DecryptValue mocks the DecryptValue method of FieldEncryptor.
func (m *MockFieldEncryptor) DecryptValue(fieldName string, value domain.Value) (string, error) {
	args := m.Called(fieldName, value)
	return args.String(0), args.Error(1)
}

// EncryptEnvVars mocks the EncryptEnvVars method of FieldEncryptor.
func (m *MockFieldEncryptor) EncryptEnvVars(vars []domain.EnvVar) ([]domain.EncryptedEnvVar, error) {
	args := m.Called(vars)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EncryptedEnvVar), args.Error(1)
}

// DecryptEnvVars mocks the DecryptEnvVars method of FieldEncryptor.
func (m *MockFieldEncryptor) DecryptEnvVars(vars []domain.StoredEnvVar) ([]domain.EnvVar, error) {
	args := m.Called(vars)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EnvVar), args.Error(1)
}

// ActiveKeyID mocks the ActiveKeyID method of FieldEncryptor.
func (m *MockFieldEncryptor) ActiveKeyID() string {
	args := m.Called()
	return args.String(0)
}
