// Package service verifies API bearer tokens against an Argon2id hash and
// issues new tokens for operators.
package service

// TokenService generates API tokens and their Argon2id hashes.
type TokenService interface {
	// GenerateToken creates a random token. The plain token is shown once;
	// the hash goes into AUTH_TOKEN_HASH.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes an operator supplied token.
	HashToken(plainToken string) (tokenHash string, err error)
}

// TokenVerifier checks bearer tokens presented to the API.
type TokenVerifier interface {
	// Verify returns nil when plainToken matches the configured hash and
	// domain.ErrInvalidToken otherwise.
	Verify(plainToken string) error
}
