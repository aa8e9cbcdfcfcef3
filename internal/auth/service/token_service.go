package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/stakwork/fieldcrypt/internal/errors"
)

const tokenSize = 32

type tokenService struct {
	hasher *pwdhash.PasswordHasher
}

// NewTokenService creates a TokenService hashing with the Argon2id moderate
// policy.
func NewTokenService() (TokenService, error) {
	hasher, err := newHasher()
	if err != nil {
		return nil, err
	}
	return &tokenService{hasher: hasher}, nil
}

func newHasher() (*pwdhash.PasswordHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return hasher, nil
}

// GenerateToken creates a random 32-byte token, base64 URL encoded.
func (t *tokenService) GenerateToken() (plainToken string, tokenHash string, err error) {
	randomBytes := make([]byte, tokenSize)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken = base64.RawURLEncoding.EncodeToString(randomBytes)
	tokenHash, err = t.HashToken(plainToken)
	if err != nil {
		return "", "", err
	}
	return plainToken, tokenHash, nil
}

// HashToken hashes plainToken with Argon2id in PHC string format.
func (t *tokenService) HashToken(plainToken string) (string, error) {
	if plainToken == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "token cannot be empty")
	}

	tokenHash, err := t.hasher.Hash([]byte(plainToken))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash token")
	}
	return tokenHash, nil
}
