// Package mocks provides testify mocks for the auth services.
package mocks

import "github.com/stretchr/testify/mock"

// MockTokenVerifier is a mock implementation of TokenVerifier.
type MockTokenVerifier struct {
	mock.Mock
}

// Verify mocks the Verify method of TokenVerifier.
func (m *MockTokenVerifier) Verify(plainToken string) error {
	args := m.Called(plainToken)
	return args.Error(0)
}
