package service

import (
	"crypto/sha256"
	"sync"

	"github.com/allisson/go-pwdhash"

	authDomain "github.com/stakwork/fieldcrypt/internal/auth/domain"
)

// tokenVerifier compares tokens against one Argon2id hash. Argon2id is slow
// by construction, so tokens that verified once are remembered by their
// SHA-256 digest and later requests skip the hash.
type tokenVerifier struct {
	hasher   *pwdhash.PasswordHasher
	hash     string
	verified sync.Map // [sha256.Size]byte -> struct{}
}

// NewTokenVerifier creates a TokenVerifier for tokenHash, the PHC string
// produced by TokenService.
func NewTokenVerifier(tokenHash string) (TokenVerifier, error) {
	if tokenHash == "" {
		return nil, authDomain.ErrAuthTokenHashNotSet
	}

	hasher, err := newHasher()
	if err != nil {
		return nil, err
	}
	return &tokenVerifier{hasher: hasher, hash: tokenHash}, nil
}

// Verify checks plainToken. Failed verifications are never cached.
func (v *tokenVerifier) Verify(plainToken string) error {
	if plainToken == "" {
		return authDomain.ErrInvalidToken
	}

	digest := sha256.Sum256([]byte(plainToken))
	if _, ok := v.verified.Load(digest); ok {
		return nil
	}

	ok, err := v.hasher.Verify([]byte(plainToken), v.hash)
	if err != nil || !ok {
		return authDomain.ErrInvalidToken
	}

	v.verified.Store(digest, struct{}{})
	return nil
}
